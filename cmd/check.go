package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/mittwald/rootcheck/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	checkCmd.Flags().BoolP("json", "j", false, "print results as a JSON array of 1 (present) and 0 (absent)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check whether paths exist",
	Long:  "This sub-command reports for every given path whether it can be opened for reading. Without arguments the well-known su locations are checked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ignitionConfig, err := loadIgnition()
		if err != nil {
			return err
		}

		paths := args
		if len(paths) == 0 {
			paths = config.SuPaths("su")
		}

		pathProbe := newPathProbe(cmd, ignitionConfig)
		out := cmd.OutOrStdout()

		if printJSON, _ := cmd.Flags().GetBool("json"); printJSON {
			entries := make([]*string, len(paths))
			for i := range paths {
				entries[i] = &paths[i]
			}

			results, err := pathProbe.CheckForRootNative(entries)
			if err != nil {
				return err
			}
			return json.NewEncoder(out).Encode(results)
		}

		for _, result := range pathProbe.CheckPathResults(paths) {
			fmt.Fprintln(out, pathLine(result))
		}
		return nil
	},
}
