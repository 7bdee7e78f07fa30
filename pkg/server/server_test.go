package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
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
	"github.com/mittwald/rootcheck/pkg/server"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir    string
	probe  *probe.PathProbe
	server *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
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
	p := probe.NewPathProbe(probe.DefaultConfig(), logger)
	d := detect.NewDetector(cfg, p, detect.WithLogger(logger))

	ts := httptest.NewServer(server.New(server.DefaultListenAddress, d).Handler())
	t.Cleanup(ts.Close)

	return &testEnv{dir: dir, probe: p, server: ts}
}

func (e *testEnv) installSu(t *testing.T) string {
	t.Helper()
	su := filepath.Join(e.dir, "su")
	require.NoError(t, os.WriteFile(su, []byte{}, 0o755))
	return su
}

func TestStatusCleanSystem(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var report detect.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.False(t, report.Rooted)
}

func TestStatusRootedSystem(t *testing.T) {
	env := newTestEnv(t)
	su := env.installSu(t)

	resp, err := http.Get(env.server.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var report detect.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Rooted)
	assert.Contains(t, report.Reasons, su+" binary detected")
}

func TestCheckPaths(t *testing.T) {
	env := newTestEnv(t)
	su := env.installSu(t)

	body, _ := json.Marshal([]string{su, "/does/not/exist/xyz123", su})
	resp, err := http.Post(env.server.URL+"/v1/paths", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out server.PathsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []int{1, 0, 1}, out.Results)
}

func TestCheckPathsEmptyArray(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.server.URL+"/v1/paths", "application/json", strings.NewReader(`[]`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out server.PathsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []int{}, out.Results)
}

func TestCheckPathsRejectsNullEntry(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.server.URL+"/v1/paths", "application/json", strings.NewReader(`["/system/xbin/su", null]`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), "index 1")
}

func TestCheckPathsRejectsInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.server.URL+"/v1/paths", "application/json", strings.NewReader(`{"paths": 1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToggleDebug(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPut, env.server.URL+"/v1/debug", strings.NewReader(`{"enabled": false}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, env.probe.LogDebugMessages())

	resp, err = http.Get(env.server.URL + "/v1/debug")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state server.DebugState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.False(t, state.Enabled)
}

func TestWatchStreamsReports(t *testing.T) {
	env := newTestEnv(t)

	u := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/v1/watch?interval=100ms"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first detect.Report
	require.NoError(t, conn.ReadJSON(&first))
	assert.False(t, first.Rooted)

	env.installSu(t)

	var next detect.Report
	for i := 0; i < 20 && !next.Rooted; i++ {
		require.NoError(t, conn.ReadJSON(&next))
		assert.NotEqual(t, first.ID, next.ID)
	}
	assert.True(t, next.Rooted)
}

func TestWatchRejectsInvalidInterval(t *testing.T) {
	env := newTestEnv(t)

	for _, interval := range []string{"soon", "1ms"} {
		resp, err := http.Get(env.server.URL + "/v1/watch?interval=" + interval)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, interval)
	}
}

func TestCheckPathsRejectsOversizedBody(t *testing.T) {
	env := newTestEnv(t)

	entry := `"` + strings.Repeat("a", 1024) + `",`
	body := "[" + strings.Repeat(entry, server.MaxPathsBodySize/len(entry)+1) + `"/tmp"]`

	resp, err := http.Post(env.server.URL+"/v1/paths", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
