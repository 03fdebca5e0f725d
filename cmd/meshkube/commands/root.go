// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/bernhq/meshkube/cmd/meshkube/handlers"
)

// Root returns the root command for the meshkube CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meshkube",
		Short: "Bring up and run a distributed Meshroom processing cluster",
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Up())
	cmd.AddCommand(Worker())
	cmd.AddCommand(Status())
	cmd.AddCommand(Monitor())
	cmd.AddCommand(Down())

	// Step commands
	cmd.AddCommand(Build())
	cmd.AddCommand(Storage())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Token())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// bindCommonFlags attaches the flags shared by most commands.
func bindCommonFlags(cmd *cobra.Command, opts *handlers.Options) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: meshkube.yaml)")
	flags.StringVar(&opts.MasterIP, "master-ip", "", "Address of the control-plane host")
	flags.StringVar(&opts.NASIP, "nas-ip", "", "Address of the network share")
	flags.StringVar(&opts.NASPath, "nas-path", "", "Export path on the network share")
	flags.StringVar(&opts.Namespace, "namespace", "", "Kubernetes namespace for workloads")
	flags.StringVar(&opts.Context, "context", "", "kubectl context to select")
	flags.StringVar(&opts.SharedDir, "shared-dir", "", "Mounted share directory for publishing artifacts")
	flags.BoolVarP(&opts.Unattended, "yes", "y", false, "Unattended mode: never prompt, resolve everything to defaults")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
}
