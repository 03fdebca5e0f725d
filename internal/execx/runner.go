// Package execx provides the command-execution boundary.
//
// Every external tool invocation (docker, kubectl, package managers) goes
// through the Runner interface so command-driven logic can be tested
// without the tools installed.
package execx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its combined output.
type Runner interface {
	// Run executes name with args and returns combined stdout/stderr.
	// A non-zero exit status is returned as an error wrapping the output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports the filesystem path of a binary, or an error if it
	// is not installed.
	LookPath(name string) (string, error)
}

// CommandError carries the output of a failed command alongside the exit error.
type CommandError struct {
	Command string
	Output  []byte
	Err     error
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(string(e.Output))
	if out == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, out)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type realRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return &realRunner{}
}

func (r *realRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - command names and args come from internal call sites, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, &CommandError{
			Command: name + " " + strings.Join(args, " "),
			Output:  output,
			Err:     err,
		}
	}
	return output, nil
}

func (r *realRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
