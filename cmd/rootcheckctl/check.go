package main

import (
	"fmt"

	"github.com/mittwald/rootcheck/pkg/cli"
	"github.com/spf13/cobra"
)

func init() {
	ctlCommand.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <paths...>",
	Args:  cobra.MinimumNArgs(1),
	Short: "Check paths on the server",
	Long:  "This command asks the server whether the given paths can be opened. Results are printed as 1 (present) or 0 (absent).",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := make([]*string, len(args))
		for i := range args {
			paths[i] = &args[i]
		}

		resp := cli.NewAPIClient(apiAddress).CheckPaths(paths)
		if resp.Err() != nil {
			return fmt.Errorf("failed to check paths: %w", resp.Err())
		}

		return resp.Fprint(cmd.OutOrStdout())
	},
}
