package commands

import (
	"github.com/spf13/cobra"

	"github.com/bernhq/meshkube/cmd/meshkube/handlers"
)

// Up returns the command for the full master bring-up.
//
// The sequence runs top to bottom: prerequisite check, cluster bootstrap,
// image builds, storage configuration, deployment, status report. Build and
// apply steps are best effort; a crash mid-sequence is recovered by simply
// re-running, relying on the applier's existence checks.
func Up() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Bring up the master: prereqs, bootstrap, images, storage, deploy, verify",
		Long: `Bring up the whole cluster on this host.

Runs the full sequence: checks (and installs) required tools, verifies the
container runtime and the local cluster, switches the kubectl context,
generates a join token, builds the processing images, binds the NAS share
into the cluster, applies the workloads, and prints a status report.

Examples:
  # Bring up using meshkube.yaml in the current directory
  meshkube up

  # Fully unattended with explicit addresses
  meshkube up -y --master-ip 10.0.0.226 --nas-ip 10.0.0.80 --nas-path /share/meshroom

  # Rebuild all images even if they exist
  meshkube up --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Rebuild images even when they already exist")
	cmd.Flags().IntVar(&opts.WorkerReplicas, "workers", 0, "Number of processing pods (default 2)")

	return cmd
}
