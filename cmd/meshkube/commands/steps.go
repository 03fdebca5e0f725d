package commands

import (
	"github.com/spf13/cobra"

	"github.com/bernhq/meshkube/cmd/meshkube/handlers"
)

// Build returns the standalone image-build command.
func Build() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the base, worker, and coordinator images",
		Long: `Build the three processing images from their local contexts.

Images that already exist are skipped unless --force is set. A failed build
does not stop the remaining builds; the exit status is non-zero only when a
required image failed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Build(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Rebuild images even when they already exist")

	return cmd
}

// Storage returns the standalone storage-configuration command.
func Storage() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Bind the NAS share into the cluster",
		Long: `Render and apply the storage objects for the NAS share.

The manifest (storage class, persistent volume, claim) is always written
locally before the apply, so a failed apply can be retried by hand. The
share credentials secret is collected interactively, or filled with a
placeholder under --yes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Storage(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	return cmd
}

// Deploy returns the standalone deployment-apply command.
func Deploy() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Apply namespace, storage, workloads, and service",
		Long: `Apply the cluster objects in dependency order.

Each object is guarded by an existence check, so repeated invocations
create nothing twice. Changed manifests are not reconciled field by field;
delete the object first to force an update.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	cmd.Flags().IntVar(&opts.WorkerReplicas, "workers", 0, "Number of processing pods (default 2)")

	return cmd
}

// Token returns the join-token command.
func Token() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate and publish a fresh join token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Token(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	return cmd
}

// Down returns the teardown command.
func Down() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Remove the deployed namespace and storage objects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Down(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	return cmd
}
