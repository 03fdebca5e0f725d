package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/bernhq/meshkube/internal/share"
	"github.com/bernhq/meshkube/internal/storage"
)

// Storage runs the storage configurator alone: render the manifest, write
// it locally, publish it to the share when configured, and apply manifest
// plus credentials secret. An apply failure still leaves the manifest on
// disk and exits non-zero.
func Storage(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log := newLogger(opts.Verbose)
	runner := newRunner()
	prompter := newPrompter(cfg.Unattended)
	publisher := share.Publisher{Dir: cfg.SharedDir}

	configurator := storage.NewConfigurator(runner, prompter, log)
	path, err := configurator.Configure(ctx, cfg, publisher)
	if err != nil {
		if errors.Is(err, storage.ErrApplyFailed) && path != "" {
			fmt.Printf("Manifest written to %s; apply it later with 'kubectl apply -f %s'\n", path, path)
		}
		return err
	}

	fmt.Printf("Storage configured; manifest at %s\n", path)
	return nil
}
