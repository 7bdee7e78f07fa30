package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/mittwald/rootcheck/pkg/report"
	"github.com/spf13/cobra"
)

func init() {
	scanCmd.Flags().BoolP("json", "j", false, "print the report as JSON")
	scanCmd.Flags().StringP("template", "t", "", "render the report using this text/template file")
	scanCmd.Flags().Bool("plain", false, "print the report as unstyled text")
	scanCmd.Flags().Bool("exit-with-status", false, "exit with status code 1 if root indicators were found")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run all root detection checks",
	Long:  "This sub-command runs the binary, search path and mount checks and prints a report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ignitionConfig, err := loadIgnition()
		if err != nil {
			return err
		}

		r, err := detect.NewDetector(ignitionConfig, newPathProbe(cmd, ignitionConfig)).Run()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printJSON, _ := cmd.Flags().GetBool("json")
		tpl, _ := cmd.Flags().GetString("template")
		plain, _ := cmd.Flags().GetBool("plain")

		switch {
		case printJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "    ")
			if err := enc.Encode(r); err != nil {
				return err
			}
		case tpl != "" || plain:
			if err := report.RenderFile(out, tpl, r); err != nil {
				return err
			}
		default:
			fmt.Fprintln(out, reportView(r))
		}

		if exitWithStatus, _ := cmd.Flags().GetBool("exit-with-status"); exitWithStatus && r.Rooted {
			osExit(1)
		}

		return nil
	},
}
