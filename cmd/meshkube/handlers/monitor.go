package handlers

import (
	"context"

	"github.com/bernhq/meshkube/internal/status"
	"github.com/bernhq/meshkube/internal/tui"
)

// runDashboard is replaced in tests; the real dashboard takes over the
// terminal.
var runDashboard = tui.Run

// Monitor starts the terminal dashboard over the cluster.
func Monitor(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	client, err := newClientset("")
	if err != nil {
		return err
	}

	verifier := status.NewVerifier(client, cfg.Namespace)
	return runDashboard(ctx, verifier, cfg.ClusterName)
}
