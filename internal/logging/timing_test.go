package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initDebugLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timing.log")
	require.NoError(t, Init(Config{FilePath: path, Level: slog.LevelDebug}))
	t.Cleanup(func() { _ = Shutdown() })
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, Shutdown())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestTime(t *testing.T) {
	path := initDebugLog(t)

	called := false
	Time("load graph", func() { called = true })

	assert.True(t, called)
	out := readLog(t, path)
	assert.Contains(t, out, "load graph")
	assert.Contains(t, out, "duration=")
}

func TestTimeWithResult(t *testing.T) {
	path := initDebugLog(t)

	got := TimeWithResult("build details", func() int { return 7 })

	assert.Equal(t, 7, got)
	assert.Contains(t, readLog(t, path), "build details")
}

func TestTimeWithResultDisabled(t *testing.T) {
	require.NoError(t, Shutdown())
	assert.Equal(t, "ok", TimeWithResult("noop", func() string { return "ok" }))
}

func TestStartEndWithCount(t *testing.T) {
	path := initDebugLog(t)

	timer := Start("fetch topology")
	EndWithCount(timer, 12)
	End(Start("select node"))

	out := readLog(t, path)
	assert.Contains(t, out, "fetch topology")
	assert.Contains(t, out, "count=12")
	assert.Contains(t, out, "select node")
}

func TestLoggerTime(t *testing.T) {
	path := initDebugLog(t)

	ran := 0
	Component("k8s").Time("list subscriptions", func() { ran++ })

	assert.Equal(t, 1, ran)
	out := readLog(t, path)
	assert.Contains(t, out, "component=k8s")
	assert.Contains(t, out, "list subscriptions")
}
