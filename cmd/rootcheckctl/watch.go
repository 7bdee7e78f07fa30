package main

import (
	"fmt"
	"time"

	"github.com/mittwald/rootcheck/pkg/cli"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
	watchCount    int
)

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 10*time.Second, "time between two reports")
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "stop after this many reports (0 watches forever)")
	ctlCommand.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream detection reports",
	Long:  "This command keeps a connection to the server open and prints a new report in every interval.",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).Watch(watchInterval, watchCount)
		if err := resp.Fprint(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to print output: %w", err)
		}

		return nil
	},
}
