package main

import (
	"fmt"
	"os"

	"github.com/mittwald/rootcheck/cmd"
	"github.com/mittwald/rootcheck/pkg/cli"
	"github.com/spf13/cobra"
)

const defaultAPIAddress = "http://localhost:9102"

var (
	apiAddress string
	noColor    bool
)

func init() {
	ctlCommand.PersistentFlags().StringVarP(&apiAddress, "api-address", "", defaultAPIAddress, "address of a running 'rootcheck serve', http://host:port or unix:///path/to.sock")
	ctlCommand.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored JSON output")
	ctlCommand.AddCommand(cmd.VersionCmd)
}

var ctlCommand = &cobra.Command{
	Use:           "rootcheckctl",
	Short:         "query a running rootcheck server from cli",
	Long:          "This command can be used to query and control 'rootcheck serve' by command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.Colors = !noColor
	},
}

func Execute() {
	if err := ctlCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
