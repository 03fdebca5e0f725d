// Package config defines the cluster configuration schema.
//
// Configuration lives in meshkube.yaml and parameterizes the whole bring-up:
// master and NAS addresses, the namespace, and the session mode. Flags
// override file values, file values override defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Default values used when the file or wizard leaves a field empty.
const (
	DefaultNamespace = "meshroom"
	DefaultContext   = "docker-desktop"
	DefaultNASUser   = "meshroom"

	// PlaceholderPassword is used under unattended mode when no password
	// was supplied. The resulting secret is non-functional until the
	// operator replaces it.
	PlaceholderPassword = "changeme"
)

// Config is the operator-supplied cluster configuration.
type Config struct {
	// ClusterName names the cluster in reports and share artifacts.
	ClusterName string `yaml:"clusterName"`

	// MasterIP is the address of the control-plane host.
	MasterIP string `yaml:"masterIP"`

	// NASIP is the address of the network share holding photos and models.
	NASIP string `yaml:"nasIP"`

	// NASPath is the exported path on the share.
	NASPath string `yaml:"nasPath"`

	// NASUsername authenticates against the share.
	NASUsername string `yaml:"nasUsername,omitempty"`

	// Namespace is the Kubernetes namespace holding all workloads.
	Namespace string `yaml:"namespace,omitempty"`

	// Context is the kubectl context selected during bootstrap.
	Context string `yaml:"context,omitempty"`

	// SharedDir is a locally mounted directory on the share where the join
	// token and manifests are published for worker hosts. Empty disables
	// publishing.
	SharedDir string `yaml:"sharedDir,omitempty"`

	// WorkerReplicas is the number of processing pods to deploy.
	WorkerReplicas int `yaml:"workerReplicas,omitempty"`

	// Unattended disables all interactive prompts; every question resolves
	// to its default.
	Unattended bool `yaml:"unattended,omitempty"`

	// Force rebuilds container images even when they already exist.
	Force bool `yaml:"force,omitempty"`

	// PrereqCheckEnabled toggles the tool check before bring-up.
	// Defaults to enabled when unset.
	PrereqCheckEnabled *bool `yaml:"prereqCheckEnabled,omitempty"`
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.ClusterName == "" {
		c.ClusterName = "meshroom"
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Context == "" {
		c.Context = DefaultContext
	}
	if c.NASUsername == "" {
		c.NASUsername = DefaultNASUser
	}
	if c.WorkerReplicas == 0 {
		c.WorkerReplicas = 2
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.MasterIP == "" {
		errs = append(errs, errors.New("masterIP is required"))
	} else if net.ParseIP(c.MasterIP) == nil {
		errs = append(errs, fmt.Errorf("masterIP %q is not a valid IP address", c.MasterIP))
	}

	if c.NASIP == "" {
		errs = append(errs, errors.New("nasIP is required"))
	} else if net.ParseIP(c.NASIP) == nil {
		errs = append(errs, fmt.Errorf("nasIP %q is not a valid IP address", c.NASIP))
	}

	if c.NASPath == "" {
		errs = append(errs, errors.New("nasPath is required"))
	} else if !strings.HasPrefix(c.NASPath, "/") {
		errs = append(errs, fmt.Errorf("nasPath %q must be an absolute export path", c.NASPath))
	}

	if c.Namespace != "" && !isDNSLabel(c.Namespace) {
		errs = append(errs, fmt.Errorf("namespace %q must be a DNS label (lowercase alphanumeric and hyphens)", c.Namespace))
	}

	if c.WorkerReplicas < 0 {
		errs = append(errs, errors.New("workerReplicas must not be negative"))
	}

	return errors.Join(errs...)
}

// PrereqChecksEnabled reports whether the tool check should run.
func (c *Config) PrereqChecksEnabled() bool {
	return c.PrereqCheckEnabled == nil || *c.PrereqCheckEnabled
}

// isDNSLabel checks RFC 1123 labels: lowercase alphanumeric plus hyphens,
// starting and ending alphanumeric, at most 63 characters.
func isDNSLabel(s string) bool {
	if len(s) == 0 || len(s) > 63 {
		return false
	}
	first := s[0]
	if (first < 'a' || first > 'z') && (first < '0' || first > '9') {
		return false
	}
	last := s[len(s)-1]
	if (last < 'a' || last > 'z') && (last < '0' || last > '9') {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
