package handlers

import (
	"context"
	"fmt"

	"github.com/bernhq/meshkube/internal/deploy"
)

// Deploy runs the deployment applier alone and prints the per-object
// outcome. Objects that already exist are left untouched.
func Deploy(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log := newLogger(opts.Verbose)
	runner := newRunner()

	applier := deploy.NewApplier(runner, log)
	results, err := applier.ApplyAll(ctx, cfg)

	fmt.Println()
	for _, r := range results {
		line := fmt.Sprintf("  %-22s %-24s %s", r.Kind, r.Name, r.Outcome)
		if r.Err != nil {
			line += fmt.Sprintf(" (%v)", r.Err)
		}
		fmt.Println(line)
	}

	return err
}

// Down removes the deployed objects: the namespace (cascading) and the
// cluster-scoped storage objects.
func Down(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log := newLogger(opts.Verbose)
	prompter := newPrompter(cfg.Unattended)

	// Unattended runs asked for teardown explicitly; proceed without input.
	ok, err := prompter.Confirm(fmt.Sprintf("Delete namespace %s and its storage objects?", cfg.Namespace), cfg.Unattended)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	runner := newRunner()
	applier := deploy.NewApplier(runner, log)
	if err := applier.Teardown(ctx, cfg); err != nil {
		return err
	}

	fmt.Printf("Namespace %s and storage objects removed.\n", cfg.Namespace)
	return nil
}
