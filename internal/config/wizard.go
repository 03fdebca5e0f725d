package config

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the operator's choices from the init wizard.
type WizardResult struct {
	ClusterName string
	MasterIP    string
	NASIP       string
	NASPath     string
	NASUsername string
	SharedDir   string
	WorkerCount int
}

// RunWizard collects the initial configuration interactively.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		ClusterName: "meshroom",
		NASUsername: DefaultNASUser,
		WorkerCount: 2,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("Used for reports and artifacts published to the share").
				Placeholder("meshroom").
				Value(&result.ClusterName),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Master IP").
				Description("Address of the host running the control plane").
				Placeholder("10.0.0.226").
				Value(&result.MasterIP).
				Validate(validateIP),

			huh.NewInput().
				Title("NAS IP").
				Description("Address of the network share holding photos and models").
				Placeholder("10.0.0.80").
				Value(&result.NASIP).
				Validate(validateIP),

			huh.NewInput().
				Title("NAS export path").
				Description("Absolute export path on the share").
				Placeholder("/share/meshroom").
				Value(&result.NASPath).
				Validate(validateExportPath),

			huh.NewInput().
				Title("NAS username").
				Placeholder(DefaultNASUser).
				Value(&result.NASUsername),
		),

		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Worker pods").
				Description("Processing pods sharing the photogrammetry workload").
				Options(
					huh.NewOption("1 worker", 1),
					huh.NewOption("2 workers", 2),
					huh.NewOption("3 workers", 3),
					huh.NewOption("4 workers", 4),
				).
				Value(&result.WorkerCount),

			huh.NewInput().
				Title("Shared directory (optional)").
				Description("Locally mounted share directory for publishing the join token").
				Placeholder("/mnt/meshroom/gui").
				Value(&result.SharedDir),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result into a defaulted Config.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		ClusterName:    r.ClusterName,
		MasterIP:       r.MasterIP,
		NASIP:          r.NASIP,
		NASPath:        r.NASPath,
		NASUsername:    r.NASUsername,
		SharedDir:      r.SharedDir,
		WorkerReplicas: r.WorkerCount,
	}
	cfg.ApplyDefaults()
	return cfg
}

func validateIP(s string) error {
	if net.ParseIP(strings.TrimSpace(s)) == nil {
		return fmt.Errorf("enter a valid IP address")
	}
	return nil
}

func validateExportPath(s string) error {
	if !strings.HasPrefix(s, "/") {
		return fmt.Errorf("enter an absolute export path")
	}
	return nil
}
