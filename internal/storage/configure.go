package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/bernhq/meshkube/internal/config"
	"github.com/bernhq/meshkube/internal/execx"
	"github.com/bernhq/meshkube/internal/kubectl"
	"github.com/bernhq/meshkube/internal/prompt"
	"github.com/bernhq/meshkube/internal/share"
)

// ErrApplyFailed marks failures past the local manifest write. Callers may
// continue to later steps; the manifest on disk is complete.
var ErrApplyFailed = errors.New("storage apply failed")

// Configurator renders, persists, and applies the storage manifest and the
// credentials secret.
type Configurator struct {
	runner   execx.Runner
	prompter prompt.Prompter
	log      *logrus.Logger

	// OutputDir is where the local manifest is written. Defaults to the
	// working directory.
	OutputDir string
}

// NewConfigurator wires a Configurator.
func NewConfigurator(runner execx.Runner, prompter prompt.Prompter, log *logrus.Logger) *Configurator {
	return &Configurator{runner: runner, prompter: prompter, log: log, OutputDir: "."}
}

// Configure writes the storage manifest locally, publishes it to the share
// when configured, then applies the manifest and the credentials secret.
// The local write always happens before any apply; apply failures are
// returned wrapped in ErrApplyFailed so the caller can keep going.
func (c *Configurator) Configure(ctx context.Context, cfg *config.Config, pub share.Publisher) (string, error) {
	manifest, err := RenderManifest(cfg.NASIP, cfg.NASPath, cfg.Namespace)
	if err != nil {
		return "", err
	}

	path := filepath.Join(c.OutputDir, ManifestFilename)
	if err := os.WriteFile(path, manifest, 0o644); err != nil {
		return "", fmt.Errorf("failed to write storage manifest: %w", err)
	}
	c.log.Infof("storage manifest written to %s", path)

	if pub.Enabled() {
		if !pub.Reachable() {
			c.log.Warnf("share directory %s is not reachable, skipping manifest publish", pub.Dir)
		} else if dst, err := pub.Publish(path, ManifestFilename); err != nil {
			c.log.Warnf("could not publish manifest to share: %v", err)
		} else {
			c.log.Infof("storage manifest published to %s", dst)
		}
	}

	secret, err := c.collectSecret(cfg)
	if err != nil {
		return path, err
	}

	if err := kubectl.Apply(ctx, c.runner, "meshroom-storage", manifest); err != nil {
		return path, fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}
	if err := kubectl.Apply(ctx, c.runner, "nas-credentials", secret); err != nil {
		return path, fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}

	c.log.Info("storage configured")
	return path, nil
}

// collectSecret gathers share credentials through the prompter and renders
// the secret. Unattended sessions fall back to the placeholder password;
// the secret then needs manual correction before mounts work.
func (c *Configurator) collectSecret(cfg *config.Config) ([]byte, error) {
	username, err := c.prompter.Input("NAS username", cfg.NASUsername, cfg.NASUsername)
	if err != nil {
		return nil, err
	}

	password, err := c.prompter.Password("NAS password", config.PlaceholderPassword)
	if err != nil {
		return nil, err
	}
	if password == config.PlaceholderPassword {
		c.log.Warnf("using placeholder NAS password; update secret %s/%s before mounting the share", cfg.Namespace, SecretName)
	}

	return RenderSecret(cfg.Namespace, username, password)
}
