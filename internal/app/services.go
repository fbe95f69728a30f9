package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// ParseLevel maps a level name to a slog level. Unknown names select info.
func ParseLevel(name string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewLogger builds the text logger used by the binaries.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// OpenLog returns the log destination selected by c: the log file when set,
// otherwise fallback. The returned closer is never nil.
func OpenLog(c *Config, fallback io.Writer) (io.Writer, func() error, error) {
	if c.LogFile == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

// StartServices brings up crash reporting and the stats dashboard when
// configured. The returned stop function flushes and shuts them down.
func StartServices(c *Config, log *slog.Logger) (func(), error) {
	var stops []func()
	if c.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			AttachStacktrace: true,
		})
		if err != nil {
			return nil, fmt.Errorf("sentry init: %w", err)
		}
		stops = append(stops, func() { sentry.Flush(2 * time.Second) })
		log.Info("crash reporting enabled")
	}
	if c.StatsView != "" {
		// Configuration must be set before statsview.New.
		viewer.SetConfiguration(viewer.WithAddr(c.StatsView))
		mgr := statsview.New()
		go mgr.Start()
		stops = append(stops, mgr.Stop)
		log.Info("stats dashboard listening", "addr", c.StatsView)
	}
	return func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}, nil
}
