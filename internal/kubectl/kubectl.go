// Package kubectl wraps the cluster CLI invocations shared by bootstrap,
// storage, and deployment code. All calls go through an execx.Runner.
package kubectl

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bernhq/meshkube/internal/execx"
	"github.com/bernhq/meshkube/internal/retry"
)

// applyRetryDelay is the pause before re-running a failed apply. Shortened
// in tests.
var applyRetryDelay = 3 * time.Second

// Apply writes manifest bytes to a temporary file and runs kubectl apply.
// Transient connection failures are retried; other failures are returned
// immediately.
func Apply(ctx context.Context, runner execx.Runner, name string, manifest []byte) error {
	tmpfile, err := os.CreateTemp("", fmt.Sprintf("%s-*.yaml", name))
	if err != nil {
		return fmt.Errorf("failed to create temp manifest file: %w", err)
	}
	// Best-effort cleanup; a leftover temp file is non-critical
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write(manifest); err != nil {
		_ = tmpfile.Close()
		return fmt.Errorf("failed to write manifest to temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return fmt.Errorf("failed to close temp manifest file: %w", err)
	}

	return retry.Do(ctx, func() error {
		output, err := runner.Run(ctx, "kubectl", "apply", "-f", tmpfile.Name())
		if err == nil {
			return nil
		}
		if !isRetryable(string(output)) {
			return retry.Fatal(fmt.Errorf("kubectl apply failed for %s: %w", name, err))
		}
		return fmt.Errorf("kubectl apply failed for %s: %w", name, err)
	}, retry.WithMaxRetries(2), retry.WithInitialDelay(applyRetryDelay))
}

// Exists reports whether an object of the given kind and name exists.
// namespace may be empty for cluster-scoped kinds.
func Exists(ctx context.Context, runner execx.Runner, kind, name, namespace string) bool {
	args := []string{"get", kind, name}
	if namespace != "" {
		args = append(args, "-n", namespace)
	}
	_, err := runner.Run(ctx, "kubectl", args...)
	return err == nil
}

// Delete removes an object, ignoring a missing one.
func Delete(ctx context.Context, runner execx.Runner, kind, name, namespace string) error {
	args := []string{"delete", kind, name, "--ignore-not-found"}
	if namespace != "" {
		args = append(args, "-n", namespace)
	}
	if _, err := runner.Run(ctx, "kubectl", args...); err != nil {
		return fmt.Errorf("kubectl delete %s/%s failed: %w", kind, name, err)
	}
	return nil
}

// UseContext switches the active kubectl context.
func UseContext(ctx context.Context, runner execx.Runner, name string) error {
	if _, err := runner.Run(ctx, "kubectl", "config", "use-context", name); err != nil {
		return fmt.Errorf("failed to switch kubectl context to %s: %w", name, err)
	}
	return nil
}

// ClusterReachable probes the cluster API.
func ClusterReachable(ctx context.Context, runner execx.Runner) error {
	if _, err := runner.Run(ctx, "kubectl", "cluster-info"); err != nil {
		return fmt.Errorf("cluster is not answering: %w", err)
	}
	return nil
}

// isRetryable matches connection-level failures where the API server may be
// briefly unavailable.
func isRetryable(output string) bool {
	return strings.Contains(output, "EOF") ||
		strings.Contains(output, "connection refused") ||
		strings.Contains(output, "Unable to connect") ||
		strings.Contains(output, "connection reset")
}
