package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/mittwald/rootcheck/pkg/pidfile"
	"github.com/mittwald/rootcheck/pkg/publish"
	"github.com/mittwald/rootcheck/pkg/server"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	listenAddress   string
	pidFile         string
	publishInterval time.Duration
)

func init() {
	serveCmd.Flags().StringVarP(&listenAddress, "listen", "l", server.DefaultListenAddress, "address to listen on, either host:port or unix:///path/to.sock")
	serveCmd.Flags().StringVar(&pidFile, "pidfile", "", "write rootchecks process id to this file")
	serveCmd.Flags().DurationVar(&publishInterval, "interval", time.Minute, "interval in which reports are sent to the configured publishers")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve detection results over HTTP",
	Long:  "This sub-command starts the status server and periodically publishes reports to the configured publishers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		ignitionConfig, err := loadIgnition()
		if err != nil {
			return err
		}

		return serve(ctx, detect.NewDetector(ignitionConfig, newPathProbe(cmd, ignitionConfig)), ignitionConfig)
	},
}

func serve(ctx context.Context, detector *detect.Detector, ignitionConfig *config.Ignition) error {
	if publishInterval <= 0 {
		return errors.Errorf("publish interval must be positive, got %s", publishInterval)
	}

	pidFileHandle := pidfile.New(pidFile)
	if err := pidFileHandle.Acquire(); err != nil {
		return errors.Wrapf(err, "failed to write pid file to %q", pidFile)
	}

	defer func() {
		if err := pidFileHandle.Release(); err != nil {
			log.Errorf("error while cleaning up the pid file: %s", err)
		}
	}()

	publishers, err := publish.FromConfig(ignitionConfig.Publishers)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	loopDone := make(chan struct{})

	defer func() {
		cancel()
		<-loopDone
		publish.CloseAll(publishers)
	}()

	go func() {
		defer close(loopDone)
		if len(publishers) > 0 {
			runPublishLoop(ctx, detector, publishers, publishInterval)
		}
	}()

	return server.New(listenAddress, detector).Run(ctx)
}

func runPublishLoop(ctx context.Context, detector *detect.Detector, publishers []publish.Publisher, interval time.Duration) {
	log.Infof("publishing reports to %d publishers every %s", len(publishers), interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r, err := detector.Run()
		if err != nil {
			log.WithError(err).Error("detection failed")
		} else {
			_ = publish.PublishAll(ctx, publishers, r)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
