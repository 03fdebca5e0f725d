package commands

import (
	"github.com/spf13/cobra"

	"github.com/bernhq/meshkube/cmd/meshkube/handlers"
)

// Init returns the configuration-creation command.
func Init() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create meshkube.yaml",
		Long: `Create the configuration file.

Interactive sessions walk through a short wizard. With --yes the file is
built from flags alone, suitable for scripted setups.

Examples:
  meshkube init
  meshkube init -y --master-ip 10.0.0.226 --nas-ip 10.0.0.80 --nas-path /share/meshroom`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), opts)
		},
	}

	bindCommonFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().IntVar(&opts.WorkerReplicas, "workers", 0, "Number of processing pods (default 2)")

	return cmd
}
