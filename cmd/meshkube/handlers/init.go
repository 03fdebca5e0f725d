package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/bernhq/meshkube/internal/config"
)

// Factory variables for init, replaced in tests.
var (
	runWizard  = config.RunWizard
	saveConfig = config.Save
)

// Init creates meshkube.yaml. Interactive sessions run the wizard;
// unattended sessions build the config from flags alone. An existing file
// is only overwritten under force.
func Init(ctx context.Context, opts Options) error {
	if _, err := os.Stat(config.DefaultConfigFilename); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists; use --force to overwrite", config.DefaultConfigFilename)
	}

	var cfg *config.Config
	if opts.Unattended {
		cfg = &config.Config{
			MasterIP:       opts.MasterIP,
			NASIP:          opts.NASIP,
			NASPath:        opts.NASPath,
			NASUsername:    opts.NASUsername,
			Namespace:      opts.Namespace,
			Context:        opts.Context,
			SharedDir:      opts.SharedDir,
			WorkerReplicas: opts.WorkerReplicas,
			Unattended:     true,
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("flags do not form a valid config: %w", err)
		}
	} else {
		result, err := runWizard(ctx)
		if err != nil {
			return err
		}
		cfg = result.ToConfig()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	if err := saveConfig(cfg, config.DefaultConfigFilename); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", config.DefaultConfigFilename)
	fmt.Printf("Run 'meshkube up' to bring the cluster up.\n")
	return nil
}
