package cli_test

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/pkg/cli"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/mittwald/rootcheck/pkg/probe"
	"github.com/mittwald/rootcheck/pkg/server"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cli.Colors = false
}

func newHandler(t *testing.T) (http.Handler, string) {
	t.Helper()
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
	d := detect.NewDetector(cfg, probe.NewPathProbe(probe.DefaultConfig(), logger), detect.WithLogger(logger))
	return server.New(server.DefaultListenAddress, d).Handler(), dir
}

func strPtr(s string) *string {
	return &s
}

func TestStatus(t *testing.T) {
	handler, dir := newHandler(t)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	client := cli.NewAPIClient(ts.URL)

	resp := client.Status()
	require.NoError(t, resp.Err())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, resp.Body.Rooted)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "su"), []byte{}, 0o755))

	resp = client.Status()
	require.NoError(t, resp.Err())
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.True(t, resp.Body.Rooted)
}

func TestCheckPaths(t *testing.T) {
	handler, dir := newHandler(t)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	client := cli.NewAPIClient(ts.URL)

	resp := client.CheckPaths([]*string{strPtr(dir), strPtr(filepath.Join(dir, "su"))})
	require.NoError(t, resp.Err())
	assert.Equal(t, []int{1, 0}, resp.Body.Results)

	resp = client.CheckPaths([]*string{nil})
	require.Error(t, resp.Err())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Err().Error(), "index 0")
}

func TestDebugToggle(t *testing.T) {
	handler, _ := newHandler(t)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	client := cli.NewAPIClient(ts.URL)

	state := client.Debug()
	require.NoError(t, state.Err())
	assert.True(t, state.Body.Enabled)

	state = client.SetDebug(false)
	require.NoError(t, state.Err())
	assert.False(t, state.Body.Enabled)

	state = client.Debug()
	require.NoError(t, state.Err())
	assert.False(t, state.Body.Enabled)
}

func TestTypedResponsePrint(t *testing.T) {
	handler, dir := newHandler(t)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	var buf bytes.Buffer
	resp := cli.NewAPIClient(ts.URL).CheckPaths([]*string{strPtr(dir)})
	require.NoError(t, resp.Fprint(&buf))

	assert.JSONEq(t, `{"results":[1]}`, buf.String())
	assert.Contains(t, buf.String(), "\n    ")
}

func TestWatchWithLimit(t *testing.T) {
	handler, _ := newHandler(t)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	var buf bytes.Buffer
	err := cli.NewAPIClient(ts.URL).Watch(100*time.Millisecond, 2).Fprint(&buf)
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(buf.String()))
	count := 0
	for dec.More() {
		var report detect.Report
		require.NoError(t, dec.Decode(&report))
		assert.False(t, report.Rooted)
		count++
	}
	assert.Equal(t, 2, count)
}

func TestUnixSocketAddress(t *testing.T) {
	handler, _ := newHandler(t)
	socket := filepath.Join(t.TempDir(), "rootcheck.sock")

	listener, err := net.Listen("unix", socket)
	require.NoError(t, err)
	srv := &http.Server{Handler: handler}
	go func() { _ = srv.Serve(listener) }()
	defer srv.Close()

	resp := cli.NewAPIClient("unix://" + socket).Status()
	require.NoError(t, resp.Err())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConnectionError(t *testing.T) {
	resp := cli.NewAPIClient("http://127.0.0.1:1").Status()
	assert.Error(t, resp.Err())

	var buf bytes.Buffer
	require.NoError(t, resp.Fprint(&buf))
	assert.NotEmpty(t, buf.String())
}
