package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/bernhq/meshkube/internal/status"
)

// Status prints the cluster state once, as JSON when requested, or in a
// 5-second loop under watch.
func Status(ctx context.Context, opts Options, jsonOutput, watch bool) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	if !watch {
		if jsonOutput {
			return printStatusJSON(ctx, cfg.Namespace)
		}
		return printStatus(ctx, cfg.Namespace, isInteractiveTTY())
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	render := func() {
		if !jsonOutput {
			fmt.Print("\033[H\033[2J")
		}
		var err error
		if jsonOutput {
			err = printStatusJSON(ctx, cfg.Namespace)
		} else {
			err = printStatus(ctx, cfg.Namespace, isInteractiveTTY())
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			render()
		}
	}
}

// printStatus renders the current snapshot to stdout.
func printStatus(ctx context.Context, namespace string, styled bool) error {
	snap, err := snapshot(ctx, namespace)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(status.Render(snap, styled))
	return nil
}

func printStatusJSON(ctx context.Context, namespace string) error {
	snap, err := snapshot(ctx, namespace)
	if err != nil {
		return err
	}
	out, err := status.RenderJSON(snap)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func snapshot(ctx context.Context, namespace string) (*status.Snapshot, error) {
	client, err := newClientset("")
	if err != nil {
		return nil, err
	}
	return status.NewVerifier(client, namespace).Snapshot(ctx)
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
