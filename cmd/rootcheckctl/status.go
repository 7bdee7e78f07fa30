package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mittwald/rootcheck/pkg/cli"
	"github.com/spf13/cobra"
)

func init() {
	statusCmd.Flags().BoolP("json", "j", false, "Print report as JSON")
	statusCmd.Flags().Bool("exit-with-status", false, "Exit with status code 1 if root indicators were found")

	ctlCommand.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show detection report",
	Long:  "This command runs all checks on the server and shows the resulting report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).Status()
		if resp.Err() != nil {
			return fmt.Errorf("failed to get status: %w", resp.Err())
		}

		if printJSON, _ := cmd.Flags().GetBool("json"); printJSON {
			if err := resp.Fprint(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to print output: %w", err)
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), reportSummary(&resp.Body))
		}

		if exitWithStatus, _ := cmd.Flags().GetBool("exit-with-status"); exitWithStatus && resp.StatusCode == http.StatusServiceUnavailable {
			os.Exit(1)
		}

		return nil
	},
}
