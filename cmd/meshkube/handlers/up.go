package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/bernhq/meshkube/internal/cluster"
	"github.com/bernhq/meshkube/internal/deploy"
	"github.com/bernhq/meshkube/internal/image"
	"github.com/bernhq/meshkube/internal/prereq"
	"github.com/bernhq/meshkube/internal/share"
	"github.com/bernhq/meshkube/internal/storage"
)

// Up runs the master bring-up end to end:
//
//  1. prerequisite check (auto-install missing tools)
//  2. runtime and cluster probes, context switch, join token
//  3. image builds (best effort per image)
//  4. storage manifest + credentials secret
//  5. deployment apply in fixed order
//  6. status report
//
// Build and apply failures do not abort the sequence; the status report
// always runs. The exit status is non-zero when any required step failed.
func Up(ctx context.Context, opts Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	log := newLogger(opts.Verbose)
	runner := newRunner()
	prompter := newPrompter(cfg.Unattended)
	publisher := share.Publisher{Dir: cfg.SharedDir}

	log.Infof("bringing up cluster %s (master %s, NAS %s:%s)", cfg.ClusterName, cfg.MasterIP, cfg.NASIP, cfg.NASPath)

	if cfg.PrereqChecksEnabled() {
		checker := prereq.NewChecker(runner, log)
		results, err := checker.EnsureInstalled(ctx, prereq.DefaultTools())
		for _, r := range results.Results {
			if r.Found {
				version := r.Version
				if version == "" {
					version = "unknown version"
				}
				log.Infof("found %s (%s)", r.Tool.Name, version)
			}
		}
		if err != nil {
			return fmt.Errorf("prerequisites check failed: %w", err)
		}
	}

	boot := cluster.NewBootstrapper(runner, prompter, log)
	if err := boot.Bootstrap(ctx, cfg.Context); err != nil {
		return err
	}

	token := cluster.GenerateToken()
	tokenPath, err := cluster.SaveToken(".", token)
	if err != nil {
		return err
	}
	log.Infof("join token written to %s", tokenPath)
	if publisher.Enabled() {
		if !publisher.Reachable() {
			log.Warnf("share directory %s is not reachable, skipping token publish", publisher.Dir)
		} else if dst, err := publisher.Publish(tokenPath, cluster.TokenFilename); err != nil {
			log.Warnf("could not publish token to share: %v", err)
		} else {
			log.Infof("join token published to %s", dst)
		}
	}

	builder := image.NewBuilder(runner, log)
	summary := builder.BuildAll(ctx, image.DefaultImages(), cfg.Force)
	log.Infof("image builds: %s", summary.String())
	buildErr := summary.Err()

	configurator := storage.NewConfigurator(runner, prompter, log)
	_, storageErr := configurator.Configure(ctx, cfg, publisher)
	if storageErr != nil {
		if !errors.Is(storageErr, storage.ErrApplyFailed) {
			return storageErr
		}
		log.Warnf("storage apply failed, continuing: %v", storageErr)
	}

	applier := deploy.NewApplier(runner, log)
	_, deployErr := applier.ApplyAll(ctx, cfg)
	if deployErr != nil {
		log.Warnf("deployment apply incomplete, continuing: %v", deployErr)
	}

	verifyErr := printStatus(ctx, cfg.Namespace, false)
	if verifyErr != nil {
		log.Warnf("status verification failed: %v", verifyErr)
	}

	if err := softFailures(buildErr, storageErr, deployErr, verifyErr); err != nil {
		return fmt.Errorf("bring-up finished with failures: %w", err)
	}

	fmt.Printf("\nCluster %s is up.\n", cfg.ClusterName)
	fmt.Printf("Join token: %s (saved to %s)\n", token, tokenPath)
	fmt.Printf("Run 'meshkube monitor' to watch it, or 'meshkube worker' on additional hosts.\n")
	return nil
}
