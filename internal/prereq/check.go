// Package prereq verifies and installs the client tools the bring-up needs.
package prereq

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bernhq/meshkube/internal/execx"
)

// Tool is a client tool that may be required on the host.
type Tool struct {
	// Name is the binary name looked up in PATH.
	Name string

	// Required marks a tool whose absence fails the check when it cannot
	// be installed.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL points at manual installation instructions.
	InstallURL string

	// Package is the package-manager package that provides the tool.
	// Empty disables auto-install.
	Package string

	// VersionArgs probe the installed version (best effort).
	VersionArgs []string
}

// DefaultTools returns the tools every host needs.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Container runtime used to build and run cluster images",
			InstallURL:  "https://docs.docker.com/get-docker/",
			Package:     "docker",
			VersionArgs: []string{"--version"},
		},
		{
			Name:        "kubectl",
			Required:    true,
			Description: "Cluster CLI used for applying manifests and inspecting state",
			InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
			Package:     "kubectl",
			VersionArgs: []string{"version", "--client"},
		},
	}
}

// CheckResult is the outcome for a single tool.
type CheckResult struct {
	Tool      Tool
	Found     bool
	Path      string
	Version   string
	Installed bool  // true when the tool was auto-installed this run
	Err       error // install failure, if any
}

// CheckResults aggregates the outcome for a tool set.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors reports whether any required tool is still missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error aggregates the missing required tools, or nil.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Checker probes tools and installs missing ones through the package manager.
type Checker struct {
	runner execx.Runner
	pkgMgr PackageManager
	log    *logrus.Logger
}

// NewChecker returns a Checker using the platform package manager.
func NewChecker(runner execx.Runner, log *logrus.Logger) *Checker {
	return &Checker{runner: runner, pkgMgr: DefaultPackageManager(), log: log}
}

// NewCheckerWithPackageManager pins the package manager. Used in tests.
func NewCheckerWithPackageManager(runner execx.Runner, pm PackageManager, log *logrus.Logger) *Checker {
	return &Checker{runner: runner, pkgMgr: pm, log: log}
}

// Check probes each tool without installing anything.
func (c *Checker) Check(ctx context.Context, tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := c.runner.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = c.toolVersion(ctx, tool)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// EnsureInstalled probes each tool and installs missing ones via the
// package manager. The package manager itself is bootstrapped first when
// absent. Tools that still cannot be found end up in Missing.
func (c *Checker) EnsureInstalled(ctx context.Context, tools []Tool) (*CheckResults, error) {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := c.runner.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = c.toolVersion(ctx, tool)
			results.Results = append(results.Results, result)
			continue
		}

		if tool.Package == "" {
			results.Missing = append(results.Missing, tool)
			results.Results = append(results.Results, result)
			continue
		}

		c.log.Infof("%s not found, installing via %s", tool.Name, c.pkgMgr.Name)
		if err := c.installTool(ctx, tool); err != nil {
			result.Err = err
			results.Missing = append(results.Missing, tool)
			results.Results = append(results.Results, result)
			c.log.Warnf("failed to install %s: %v", tool.Name, err)
			continue
		}

		result.Installed = true
		if path, err := c.runner.LookPath(tool.Name); err == nil {
			result.Found = true
			result.Path = path
		} else {
			// Installed but not on PATH yet; a shell restart may be needed
			results.Missing = append(results.Missing, tool)
		}
		results.Results = append(results.Results, result)
	}

	return results, results.Error()
}

// installTool installs a single tool, bootstrapping the package manager
// first when it is missing.
func (c *Checker) installTool(ctx context.Context, tool Tool) error {
	if _, err := c.runner.LookPath(c.pkgMgr.Name); err != nil {
		c.log.Infof("package manager %s not found, bootstrapping", c.pkgMgr.Name)
		if err := c.pkgMgr.Bootstrap(ctx, c.runner); err != nil {
			return fmt.Errorf("failed to bootstrap package manager %s: %w", c.pkgMgr.Name, err)
		}
	}

	args := c.pkgMgr.InstallArgs(tool.Package)
	if _, err := c.runner.Run(ctx, c.pkgMgr.Name, args...); err != nil {
		return fmt.Errorf("%s install %s failed: %w", c.pkgMgr.Name, tool.Package, err)
	}
	return nil
}

// toolVersion probes the tool version, best effort.
func (c *Checker) toolVersion(ctx context.Context, tool Tool) string {
	args := tool.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}

	output, err := c.runner.Run(ctx, tool.Name, args...)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(output), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[0])
}
