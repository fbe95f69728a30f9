package app

import (
	"bytes"
	"flag"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindParsesSharedFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-scale", "8", "-size", "20", "-terrain", "rough", "-maps", "/tmp/m", "-sound"}))

	require.Equal(t, 8, cfg.Scale)
	require.Equal(t, 20, cfg.World.Map.Size)
	require.Equal(t, "rough", cfg.World.Map.Terrain.Kind)
	require.Equal(t, "/tmp/m", cfg.MapDir)
	require.True(t, cfg.Sound)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	require.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn")
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown k=1")
}

func TestOpenLog(t *testing.T) {
	var fallback bytes.Buffer
	cfg := NewConfig()
	w, closeLog, err := OpenLog(cfg, &fallback)
	require.NoError(t, err)
	require.Same(t, &fallback, w)
	require.NoError(t, closeLog())

	cfg.LogFile = filepath.Join(t.TempDir(), "terrashift.log")
	w, closeLog, err = OpenLog(cfg, &fallback)
	require.NoError(t, err)
	require.NotSame(t, &fallback, w)
	require.NoError(t, closeLog())

	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "x.log")
	_, _, err = OpenLog(cfg, &fallback)
	require.Error(t, err)
}

func TestStartServicesWithNothingConfigured(t *testing.T) {
	stop, err := StartServices(NewConfig(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NotPanics(t, stop)
}
