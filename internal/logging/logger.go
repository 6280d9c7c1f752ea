package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/edvin/regionfailover/internal/config"
)

// NewLogger creates a structured zerolog.Logger carrying the service and app
// fields from the config. region is the region the process serves and
// main_region is added when that differs. Empty fields are left out.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()

	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.AppName != "" {
		ctx = ctx.Str("app", cfg.AppName)
	}
	region := cfg.ServeRegion
	if region == "" {
		region = cfg.Region
	}
	if region != "" {
		ctx = ctx.Str("region", region)
	}
	if cfg.Region != "" && cfg.Region != region {
		ctx = ctx.Str("main_region", cfg.Region)
	}
	if cfg.Stage != "" {
		ctx = ctx.Str("stage", cfg.Stage)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	return ctx.Logger().Level(level)
}
