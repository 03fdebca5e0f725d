// Package image builds the cluster container images.
package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bernhq/meshkube/internal/execx"
)

// Image describes one buildable container image.
type Image struct {
	// Name identifies the image in logs and summaries.
	Name string

	// Tag is the full local tag the build produces.
	Tag string

	// ContextDir is the local build context.
	ContextDir string

	// Required marks images the deployed workloads cannot start without.
	Required bool
}

// DefaultImages returns the three cluster images in build order. The base
// image must build first; worker and coordinator extend it.
func DefaultImages() []Image {
	return []Image{
		{Name: "base", Tag: "meshroom-base:latest", ContextDir: "images/base", Required: true},
		{Name: "worker", Tag: "meshroom-worker:latest", ContextDir: "images/worker", Required: true},
		{Name: "coordinator", Tag: "meshroom-coordinator:latest", ContextDir: "images/coordinator", Required: true},
	}
}

// Status classifies a build outcome.
type Status string

const (
	// StatusBuilt means the image was (re)built this run.
	StatusBuilt Status = "built"
	// StatusSkipped means the image already existed and force was unset.
	StatusSkipped Status = "skipped"
	// StatusFailed means the build ran and failed.
	StatusFailed Status = "failed"
)

// Result is the per-image build outcome.
type Result struct {
	Image  Image
	Status Status
	Err    error
}

// Summary collects the results for one builder run.
type Summary struct {
	Results []Result
}

// Failed returns the results that failed.
func (s *Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err is non-nil only when a required image failed; optional build failures
// stay warnings.
func (s *Summary) Err() error {
	var names []string
	for _, r := range s.Results {
		if r.Status == StatusFailed && r.Image.Required {
			names = append(names, r.Image.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("required image builds failed: %s", strings.Join(names, ", "))
}

// String renders a one-line summary.
func (s *Summary) String() string {
	var built, skipped, failed int
	for _, r := range s.Results {
		switch r.Status {
		case StatusBuilt:
			built++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return fmt.Sprintf("%d built, %d skipped, %d failed", built, skipped, failed)
}

// Builder builds container images through the runtime CLI.
type Builder struct {
	runner execx.Runner
	log    *logrus.Logger
}

// NewBuilder wires a Builder.
func NewBuilder(runner execx.Runner, log *logrus.Logger) *Builder {
	return &Builder{runner: runner, log: log}
}

// BuildAll builds each image in order. Without force, images that already
// exist locally are skipped. A failed build is recorded and the run
// continues with the next image; the summary decides the exit status.
func (b *Builder) BuildAll(ctx context.Context, images []Image, force bool) *Summary {
	summary := &Summary{}

	for _, img := range images {
		result := b.buildOne(ctx, img, force)
		summary.Results = append(summary.Results, result)

		switch result.Status {
		case StatusSkipped:
			b.log.Infof("image %s already exists, skipping (use --force to rebuild)", img.Tag)
		case StatusBuilt:
			b.log.Infof("image %s built", img.Tag)
		case StatusFailed:
			b.log.Warnf("image %s build failed: %v", img.Tag, result.Err)
		}
	}

	return summary
}

func (b *Builder) buildOne(ctx context.Context, img Image, force bool) Result {
	if !force && b.exists(ctx, img.Tag) {
		return Result{Image: img, Status: StatusSkipped}
	}

	if _, err := b.runner.Run(ctx, "docker", "build", "-t", img.Tag, img.ContextDir); err != nil {
		return Result{Image: img, Status: StatusFailed, Err: err}
	}
	return Result{Image: img, Status: StatusBuilt}
}

// exists probes the local image store for the tag.
func (b *Builder) exists(ctx context.Context, tag string) bool {
	_, err := b.runner.Run(ctx, "docker", "image", "inspect", tag)
	return err == nil
}
