package main

import (
	"fmt"

	"github.com/mittwald/rootcheck/pkg/cli"
	"github.com/spf13/cobra"
)

func init() {
	ctlCommand.AddCommand(debugCmd)
}

var debugCmd = &cobra.Command{
	Use:       "debug [on|off]",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	Short:     "Show or toggle probe debug messages",
	Long:      "This command shows whether the server logs one line per probed path, or turns it on or off.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := cli.NewAPIClient(apiAddress)

		resp := client.Debug()
		if len(args) == 1 {
			resp = client.SetDebug(args[0] == "on")
		}
		if resp.Err() != nil {
			return fmt.Errorf("failed to access debug setting: %w", resp.Err())
		}

		state := styleRooted.Render("off")
		if resp.Body.Enabled {
			state = styleClean.Render("on")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "debug messages are "+state)
		return nil
	},
}
