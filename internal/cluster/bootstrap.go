// Package cluster brings the local single-node cluster online.
//
// The runtime and the cluster itself are external; bootstrap only verifies
// they answer, selects the kubectl context, and issues the join token.
package cluster

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bernhq/meshkube/internal/execx"
	"github.com/bernhq/meshkube/internal/kubectl"
	"github.com/bernhq/meshkube/internal/prompt"
)

// Bootstrapper verifies the container runtime and cluster, switches the
// kubectl context, and generates the join token.
type Bootstrapper struct {
	runner   execx.Runner
	prompter prompt.Prompter
	log      *logrus.Logger

	// recheckDelay is the pause before the single re-probe after the
	// operator confirms manual remediation.
	recheckDelay time.Duration
}

// NewBootstrapper wires a Bootstrapper.
func NewBootstrapper(runner execx.Runner, prompter prompt.Prompter, log *logrus.Logger) *Bootstrapper {
	return &Bootstrapper{
		runner:       runner,
		prompter:     prompter,
		log:          log,
		recheckDelay: 5 * time.Second,
	}
}

// Bootstrap runs the full sequence: runtime probe, cluster probe, context
// switch. The token is issued separately so worker setup can reuse the
// probes without minting a new token.
func (b *Bootstrapper) Bootstrap(ctx context.Context, contextName string) error {
	if err := b.EnsureRuntime(ctx); err != nil {
		return err
	}
	if err := b.EnsureCluster(ctx); err != nil {
		return err
	}
	if err := kubectl.UseContext(ctx, b.runner, contextName); err != nil {
		return err
	}
	b.log.Infof("active context switched to %s", contextName)
	return nil
}

// EnsureRuntime verifies the container runtime answers. On failure the
// operator is prompted to start it manually, then the probe runs once more.
func (b *Bootstrapper) EnsureRuntime(ctx context.Context) error {
	if _, err := b.runner.Run(ctx, "docker", "info"); err == nil {
		b.log.Info("container runtime is running")
		return nil
	}

	b.log.Warn("container runtime is not answering")
	ok, err := b.prompter.Confirm("Start the container runtime now, then continue?", false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("container runtime is not running; start it and re-run")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.recheckDelay):
	}

	if _, err := b.runner.Run(ctx, "docker", "info"); err != nil {
		return fmt.Errorf("container runtime still not answering: %w", err)
	}
	b.log.Info("container runtime is running")
	return nil
}

// EnsureCluster verifies the cluster API answers, with the same single
// prompt-and-recheck cycle as the runtime probe. The local cluster feature
// is enabled through the runtime's settings; there is no CLI toggle, so
// remediation is manual.
func (b *Bootstrapper) EnsureCluster(ctx context.Context) error {
	if err := kubectl.ClusterReachable(ctx, b.runner); err == nil {
		b.log.Info("cluster is reachable")
		return nil
	}

	b.log.Warn("cluster is not answering; enable Kubernetes in the runtime settings")
	ok, err := b.prompter.Confirm("Enable Kubernetes in the runtime settings, then continue?", false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cluster is not reachable; enable it and re-run")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(b.recheckDelay):
	}

	if err := kubectl.ClusterReachable(ctx, b.runner); err != nil {
		return fmt.Errorf("cluster still not reachable: %w", err)
	}
	b.log.Info("cluster is reachable")
	return nil
}
