package handlers

import (
	"context"
	"fmt"

	"github.com/bernhq/meshkube/internal/image"
	"github.com/bernhq/meshkube/internal/prereq"
)

// Build runs the image builder alone. Existing images are skipped unless
// force is set; a summary is printed either way and the exit status is
// non-zero only when a required image failed. Unlike up, the prerequisite
// check here is read-only: a missing tool fails the command instead of
// triggering an install.
func Build(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log := newLogger(opts.Verbose)
	runner := newRunner()

	if cfg.PrereqChecksEnabled() {
		checker := prereq.NewChecker(runner, log)
		if results := checker.Check(ctx, prereq.DefaultTools()); results.HasErrors() {
			return results.Error()
		}
	}

	builder := image.NewBuilder(runner, log)
	summary := builder.BuildAll(ctx, image.DefaultImages(), cfg.Force)

	fmt.Printf("\nImage builds: %s\n", summary.String())
	for _, r := range summary.Results {
		line := fmt.Sprintf("  %-12s %s", r.Image.Name, r.Status)
		if r.Err != nil {
			line += fmt.Sprintf(" (%v)", r.Err)
		}
		fmt.Println(line)
	}

	return summary.Err()
}
