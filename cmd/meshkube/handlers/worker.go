package handlers

import (
	"context"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/bernhq/meshkube/internal/cluster"
	"github.com/bernhq/meshkube/internal/deploy"
	"github.com/bernhq/meshkube/internal/kubectl"
	"github.com/bernhq/meshkube/internal/prereq"
	"github.com/bernhq/meshkube/internal/share"
)

// Worker prepares an additional host: prerequisite check, runtime and
// cluster probes, token pick-up, context switch, and namespace creation.
// Nodes on the local network join the master automatically once their
// runtime is up; the token records which bring-up they belong to.
func Worker(ctx context.Context, opts Options, tokenFlag, tokenFile string) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log := newLogger(opts.Verbose)
	runner := newRunner()
	prompter := newPrompter(cfg.Unattended)
	publisher := share.Publisher{Dir: cfg.SharedDir}

	if cfg.PrereqChecksEnabled() {
		checker := prereq.NewChecker(runner, log)
		if _, err := checker.EnsureInstalled(ctx, prereq.DefaultTools()); err != nil {
			return fmt.Errorf("prerequisites check failed: %w", err)
		}
	}

	token, err := resolveToken(tokenFlag, tokenFile, publisher)
	if err != nil {
		return fmt.Errorf("%w\nGenerate one on the master with 'meshkube token' and publish it to the share, or pass --token", err)
	}
	if !cluster.IsToken(token) {
		log.Warnf("token %q does not look like a meshkube token, using it anyway", token)
	}
	log.Infof("joining master %s with token %s", cfg.MasterIP, token)

	boot := cluster.NewBootstrapper(runner, prompter, log)
	if err := boot.Bootstrap(ctx, cfg.Context); err != nil {
		return err
	}

	if !kubectl.Exists(ctx, runner, "namespace", cfg.Namespace, "") {
		manifest, err := yaml.Marshal(deploy.Namespace(cfg.Namespace))
		if err != nil {
			return fmt.Errorf("failed to marshal namespace: %w", err)
		}
		if err := kubectl.Apply(ctx, runner, cfg.Namespace, manifest); err != nil {
			return err
		}
		log.Infof("namespace %s created", cfg.Namespace)
	}

	fmt.Printf("\nWorker configured for master %s.\n", cfg.MasterIP)
	fmt.Printf("Processing pods in namespace %s will pick up work from the shared storage.\n", cfg.Namespace)
	return nil
}

// resolveToken picks the join token: explicit flag, then local file, then
// the share.
func resolveToken(tokenFlag, tokenFile string, publisher share.Publisher) (string, error) {
	if tokenFlag != "" {
		return strings.TrimSpace(tokenFlag), nil
	}

	if tokenFile != "" {
		return cluster.ReadToken(tokenFile)
	}

	if publisher.Enabled() {
		data, err := publisher.Fetch(cluster.TokenFilename)
		if err != nil {
			return "", fmt.Errorf("no join token found: %w", err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", fmt.Errorf("published token file is empty")
		}
		return token, nil
	}

	return "", fmt.Errorf("no join token found")
}
