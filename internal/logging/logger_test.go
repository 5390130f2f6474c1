package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantEnabled bool
	}{
		{
			name: "text file",
			config: Config{
				FilePath:   filepath.Join(t.TempDir(), "apptopo.log"),
				Level:      slog.LevelInfo,
				Format:     FormatText,
				MaxSizeMB:  10,
				MaxBackups: 2,
			},
			wantEnabled: true,
		},
		{
			name: "json file in missing directory",
			config: Config{
				FilePath: filepath.Join(t.TempDir(), "nested", "dir", "apptopo.log"),
				Level:    slog.LevelDebug,
				Format:   FormatJSON,
			},
			wantEnabled: true,
		},
		{
			name:        "no file disables logging",
			config:      Config{Level: slog.LevelInfo},
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Init(tt.config))
			t.Cleanup(func() { _ = Shutdown() })

			assert.Equal(t, tt.wantEnabled, IsEnabled())
			assert.NotPanics(t, func() {
				Info("info line")
				Debug("debug line")
				Warn("warn line")
				Error("error line")
			})
		})
	}
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apptopo.log")
	require.NoError(t, Init(Config{FilePath: path, Level: slog.LevelDebug, Format: FormatJSON}))

	Component("viewstate").Info("fetch done", "nodes", 4)
	require.NoError(t, Shutdown())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"viewstate"`)
	assert.Contains(t, string(data), `"nodes":4`)
	assert.False(t, IsEnabled())
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apptopo.log")
	require.NoError(t, Init(Config{FilePath: path, Level: slog.LevelWarn}))

	Info("hidden")
	Warn("shown")
	require.NoError(t, Shutdown())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestGetBeforeInit(t *testing.T) {
	require.NoError(t, Shutdown())
	assert.False(t, Get().IsEnabled())
	assert.False(t, Component("screens").IsEnabled())
}
