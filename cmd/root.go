package cmd

import (
	"os"

	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/pkg/probe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigDir = "/etc/rootcheck.d"

var (
	configDir string
	logLevel  string
	debug     bool

	osExit = os.Exit
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", defaultConfigDir, "set directory to where your .hcl-configs are located")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "set the log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", true, "log one line per probed path (overrides the debug setting of the config)")
}

var rootCmd = &cobra.Command{
	Use:           "rootcheck",
	Short:         "rootcheck - detect root tooling on a device",
	Long:          "rootcheck probes the filesystem for well-known root binaries and other signs of a rooted system",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadIgnition() (*config.Ignition, error) {
	ignitionConfig := &config.Ignition{}
	if err := ignitionConfig.GenerateFromConfigDir(configDir); err != nil {
		return nil, err
	}
	return ignitionConfig, nil
}

// newPathProbe honours --debug when it was given explicitly and falls back
// to the config file otherwise.
func newPathProbe(cmd *cobra.Command, ignitionConfig *config.Ignition) *probe.PathProbe {
	cfg := probe.Config{LogDebugMessages: ignitionConfig.DebugEnabled()}
	if cmd.Flags().Changed("debug") {
		cfg.LogDebugMessages = debug
	}
	return probe.NewPathProbe(cfg, log.StandardLogger())
}
