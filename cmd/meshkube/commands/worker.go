package commands

import (
	"github.com/spf13/cobra"

	"github.com/bernhq/meshkube/cmd/meshkube/handlers"
)

// Worker returns the command that prepares an additional processing host.
func Worker() *cobra.Command {
	var opts handlers.Options
	var token string
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Prepare this host as a worker for an existing master",
		Long: `Prepare this host to contribute processing capacity.

Verifies the container runtime and cluster, picks up the join token (from
--token, --token-file, or the shared directory), and ensures the workload
namespace exists.

Examples:
  # Join using the token published on the share
  meshkube worker --shared-dir /mnt/meshroom/gui

  # Join with an explicit token
  meshkube worker --token meshkube-1a2b3c4d5e6f --master-ip 10.0.0.226`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Worker(cmd.Context(), opts, token, tokenFile)
		},
	}

	bindCommonFlags(cmd, &opts)
	cmd.Flags().StringVar(&token, "token", "", "Join token issued by the master")
	cmd.Flags().StringVar(&tokenFile, "token-file", "", "Path to a token file")

	return cmd
}
