package app

import (
	"flag"

	"terrashift/internal/world"
)

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	World world.Config

	Scale     int
	MapDir    string
	LogLevel  string
	LogFile   string
	SentryDSN string
	StatsView string
	Sound     bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		World:    world.DefaultConfig(),
		Scale:    32,
		MapDir:   "maps",
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.World.Bind(fs)
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.StringVar(&c.MapDir, "maps", c.MapDir, "directory for save-map and load-map")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "append logs to this file instead of stderr")
	fs.StringVar(&c.SentryDSN, "sentry-dsn", c.SentryDSN, "report crashes to this Sentry DSN")
	fs.StringVar(&c.StatsView, "statsview", c.StatsView, "serve the runtime stats dashboard on this address, e.g. localhost:18066")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play a tone when water appears (terminal front end)")
}
