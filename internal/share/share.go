// Package share publishes bring-up artifacts to the mounted network share
// so worker hosts can pick them up.
package share

import (
	"fmt"
	"os"
	"path/filepath"
)

// Publisher copies artifacts into a locally mounted share directory.
// A zero Dir disables publishing.
type Publisher struct {
	Dir string
}

// Enabled reports whether a share directory is configured.
func (p Publisher) Enabled() bool {
	return p.Dir != ""
}

// Reachable reports whether the share directory exists and is a directory.
func (p Publisher) Reachable() bool {
	info, err := os.Stat(p.Dir)
	return err == nil && info.IsDir()
}

// Publish copies src into the share under name. Callers treat failures as
// warnings; the local copy is authoritative.
func (p Publisher) Publish(src, name string) (string, error) {
	if !p.Enabled() {
		return "", fmt.Errorf("no share directory configured")
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", src, err)
	}

	dst := filepath.Join(p.Dir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to publish %s to share: %w", name, err)
	}
	return dst, nil
}

// Fetch reads a published artifact from the share.
func (p Publisher) Fetch(name string) ([]byte, error) {
	if !p.Enabled() {
		return nil, fmt.Errorf("no share directory configured")
	}
	data, err := os.ReadFile(filepath.Join(p.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from share: %w", name, err)
	}
	return data, nil
}
