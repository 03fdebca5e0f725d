// Package handlers implements the business logic behind the CLI commands.
//
// Handlers are framework-agnostic; command definitions in the commands
// package parse flags and delegate here. Package-level factory variables
// are swapped in tests to inject fakes.
package handlers

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"k8s.io/client-go/kubernetes"

	"github.com/bernhq/meshkube/internal/config"
	"github.com/bernhq/meshkube/internal/execx"
	"github.com/bernhq/meshkube/internal/logging"
	"github.com/bernhq/meshkube/internal/prompt"
	"github.com/bernhq/meshkube/internal/status"
)

// Options carries flag values common to most commands. Zero values mean
// "not set"; set values override the config file.
type Options struct {
	ConfigPath string

	MasterIP       string
	NASIP          string
	NASPath        string
	NASUsername    string
	Namespace      string
	Context        string
	SharedDir      string
	WorkerReplicas int

	Unattended bool
	Force      bool
	Verbose    bool
}

// Factory variables, replaced in tests for dependency injection.
var (
	newRunner = func() execx.Runner { return execx.NewRunner() }

	newLogger = func(verbose bool) *logrus.Logger { return logging.New(verbose) }

	newPrompter = func(unattended bool) prompt.Prompter { return prompt.New(unattended) }

	newClientset = func(kubeconfigPath string) (kubernetes.Interface, error) {
		return status.NewClientset(kubeconfigPath)
	}

	loadConfigFile = config.Load

	findConfigFile = config.FindConfigFile
)

// resolveConfig builds the effective configuration: file values first, flag
// overrides second, defaults last.
func resolveConfig(opts Options) (*config.Config, error) {
	cfg := &config.Config{}

	path := opts.ConfigPath
	if path == "" {
		if found, err := findConfigFile(); err == nil {
			path = found
		}
	}
	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyOverrides(cfg, opts)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		if path == "" {
			return nil, fmt.Errorf("%w\nRun 'meshkube init' or pass --master-ip/--nas-ip/--nas-path", err)
		}
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.MasterIP != "" {
		cfg.MasterIP = opts.MasterIP
	}
	if opts.NASIP != "" {
		cfg.NASIP = opts.NASIP
	}
	if opts.NASPath != "" {
		cfg.NASPath = opts.NASPath
	}
	if opts.NASUsername != "" {
		cfg.NASUsername = opts.NASUsername
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	if opts.Context != "" {
		cfg.Context = opts.Context
	}
	if opts.SharedDir != "" {
		cfg.SharedDir = opts.SharedDir
	}
	if opts.WorkerReplicas > 0 {
		cfg.WorkerReplicas = opts.WorkerReplicas
	}
	if opts.Unattended {
		cfg.Unattended = true
	}
	if opts.Force {
		cfg.Force = true
	}
}

// softFailures joins non-fatal step errors into one error, dropping nils.
func softFailures(errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	return errors.Join(kept...)
}
