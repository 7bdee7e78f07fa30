package server

import (
	"errors"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/mittwald/rootcheck/pkg/probe"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestWatchGivesUpWhenWriteDeadlinePasses(t *testing.T) {
	dir := t.TempDir()
	mounts := filepath.Join(dir, "mounts")
	require.NoError(t, os.WriteFile(mounts, []byte("rootfs / rootfs ro 0 0\n"), 0o644))

	searchPath := false
	cfg := &config.Ignition{
		SearchPath: &searchPath,
		Probes:     []config.Probe{{Name: "su", Binary: "su", Directories: []string{dir + "/"}}},
		Mounts:     &config.Mounts{File: mounts},
	}
	cfg.ApplyDefaults()

	logger, _ := test.NewNullLogger()
	d := detect.NewDetector(cfg, probe.NewPathProbe(probe.Config{}, logger), detect.WithLogger(logger))

	s := New(DefaultListenAddress, d)
	s.writeTimeout = -time.Second

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/watch?interval=100ms"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)

	var netErr net.Error
	if errors.As(err, &netErr) {
		require.False(t, netErr.Timeout(), "connection should be closed by the server, not time out")
	}
}
