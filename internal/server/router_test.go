package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"fishadm/internal/daemon"
	"fishadm/internal/launcher"
	"fishadm/internal/remote"
)

type stubRunner struct {
	probeOut []byte
	probeErr error
	starts   *[]string
}

func (s *stubRunner) Output(context.Context, string) ([]byte, error) {
	if s.probeErr != nil {
		return nil, s.probeErr
	}
	return s.probeOut, nil
}

func (s *stubRunner) Start(_ context.Context, command string) error {
	*s.starts = append(*s.starts, command)
	return nil
}

func (s *stubRunner) Describe() string { return "stub" }

// absentPIDFile yields the non-zero-exit error a probe reads as "not running".
func absentPIDFile(t *testing.T) error {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires Unix-like environment")
	}
	_, err := remote.Local{}.Output(context.Background(), "cat "+filepath.Join(t.TempDir(), "missing.pid"))
	require.Error(t, err)
	return err
}

func testRouter(t *testing.T) (*Router, *[]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	daemons := []daemon.Daemon{
		{Kind: daemon.KindMDS, ID: 0, Host: "mds0",
			PIDFile: "/var/run/fishd/fishmds.0.pid", BinaryPath: "/opt/fishd/usr/bin/fishmds", ConfFile: "/etc/fishd/fishd.conf"},
		{Kind: daemon.KindOSD, ID: 0, Host: "osd0",
			PIDFile: "/var/run/fishd/fishosd.0.pid", BinaryPath: "/opt/fishd/usr/bin/fishosd", ConfFile: "/etc/fishd/fishd.conf"},
	}

	starts := []string{}
	runners := map[string]*stubRunner{
		"mds0": {probeOut: []byte("55\n"), starts: &starts},
		"osd0": {probeErr: absentPIDFile(t), starts: &starts},
	}

	l := launcher.New()
	l.SetRunnerFactory(func(d daemon.Daemon) remote.Runner { return runners[d.Host] })

	return NewRouter(l, daemons, "/api"), &starts
}

func doRequest(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, resultsResp) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	h.ServeHTTP(w, req)
	var body resultsResp
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestRouterDaemons(t *testing.T) {
	r, _ := testRouter(t)
	h := r.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/daemons", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Daemons []daemon.Daemon `json:"daemons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Daemons, 2)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/daemons?kind=osd", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Daemons, 1)
	require.Equal(t, daemon.KindOSD, body.Daemons[0].Kind)
}

func TestRouterStatus(t *testing.T) {
	r, _ := testRouter(t)
	w, body := doRequest(t, r.Handler(), http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Results, 2)
	require.Equal(t, launcher.StateRunning, body.Results[0].State)
	require.Equal(t, 55, body.Results[0].PID)
	require.Equal(t, launcher.StateNotRunning, body.Results[1].State)
}

func TestRouterStartLaunchesNotRunning(t *testing.T) {
	r, starts := testRouter(t)
	w, body := doRequest(t, r.Handler(), http.MethodPost, "/api/start")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Results, 2)
	require.Equal(t, launcher.StateAlreadyRunning, body.Results[0].State)
	require.Equal(t, launcher.StateLaunched, body.Results[1].State)
	require.Equal(t, []string{"/opt/fishd/usr/bin/fishosd -c /etc/fishd/fishd.conf"}, *starts)
}

func TestRouterStopSelected(t *testing.T) {
	r, _ := testRouter(t)
	w, body := doRequest(t, r.Handler(), http.MethodPost, "/api/stop?kind=mds&id=0")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Results, 1)
	require.Equal(t, launcher.StateStopped, body.Results[0].State)
}

func TestRouterBadSelector(t *testing.T) {
	r, _ := testRouter(t)
	h := r.Handler()

	for _, target := range []string{"/api/status?kind=mon", "/api/status?id=-3", "/api/status?id=x"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestSanitizeBase(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"  ":    "",
		"api":   "/api",
		"/api":  "/api",
		"/api/": "/api",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeBase(in), "input %q", in)
	}
}
