package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-admin/internal/config"
	"mini-admin/internal/fixture"
	"mini-admin/internal/i18n"
	"mini-admin/internal/settings"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, fixture.Write(f, fixture.Generate(7, fixture.Options{Employees: 12})))
	require.NoError(t, f.Close())
	return path
}

func testConfig(dbPath, apiURL string) *config.Config {
	return &config.Config{
		Env: "development",
		API: config.APIConfig{BaseURL: apiURL, Timeout: 2 * time.Second},
		Cache: config.CacheConfig{
			TTL:           time.Minute,
			SweepSchedule: "@every 1m",
		},
		Settings: config.SettingsConfig{DefaultTheme: "dark", DefaultLanguage: "tr"},
		Mock:     config.MockConfig{DBPath: dbPath},
	}
}

func TestConsole_EndToEndAgainstMockServer(t *testing.T) {
	logger := discardLogger()
	cfg := testConfig(writeFixture(t), "")

	store, mockHandler, err := NewMockServer(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"assignments", "employees", "trainings"}, store.Collections())

	api := httptest.NewServer(mockHandler)
	defer api.Close()
	cfg.API.BaseURL = api.URL

	a, err := New(Deps{Cfg: cfg, Logger: logger})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, settings.Settings{Theme: settings.ThemeDark, Language: i18n.TR}, a.Settings.Get())

	console := httptest.NewServer(a.Router(logger))
	defer console.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Get(console.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/ui", resp.Header.Get("Location"))

	resp, err = http.Get(console.URL + "/ui/employees")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Contains(t, string(body), "Çalışanlar")
	assert.Contains(t, string(body), "12")

	summary, err := a.Services.Dashboard.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Trainings)
}

func TestRouter_Healthz(t *testing.T) {
	a, err := New(Deps{Cfg: testConfig("", "http://127.0.0.1:1"), Logger: discardLogger()})
	require.NoError(t, err)
	defer a.Close()

	rr := httptest.NewRecorder()
	a.Router(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestNew_RejectsBadSweepSchedule(t *testing.T) {
	cfg := testConfig("", "http://127.0.0.1:1")
	cfg.Cache.SweepSchedule = "not a schedule"
	_, err := New(Deps{Cfg: cfg, Logger: discardLogger()})
	require.Error(t, err)
}

func TestNewMockServer_MissingFile(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing.json"), "")
	_, _, err := NewMockServer(cfg, discardLogger())
	require.Error(t, err)
}

func TestServeListener_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveListener(ctx, ln, http.NotFoundHandler(), discardLogger())
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
