package commands

import (
	"github.com/spf13/cobra"

	"github.com/bernhq/meshkube/cmd/meshkube/handlers"
)

// Status returns the read-only status command.
func Status() *cobra.Command {
	var opts handlers.Options
	var jsonOutput bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print node, pod, service, and volume state",
		Long: `Print the current cluster state.

The report is read-only: nodes, pods in the workload namespace, services,
and volume claims. Use --json for machine-readable output or --watch for a
refreshing view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), opts, jsonOutput, watch)
		},
	}

	bindCommonFlags(cmd, &opts)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh the report every 5 seconds")

	return cmd
}

// Monitor returns the terminal dashboard command.
func Monitor() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Open the terminal monitoring dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Monitor(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	return cmd
}
