package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the process logger from cfg. Console output is the default;
// when LogFile is set, entries are also written as JSON to a rotated file.
func newLogger(cfg *Config) zerolog.Logger {
	var console io.Writer = os.Stderr
	if cfg.LogFormat != "json" {
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	output := console
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err == nil {
			output = io.MultiWriter(console, &lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    10,
				MaxBackups: 5,
				MaxAge:     30,
				Compress:   true,
				LocalTime:  true,
			})
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.LogLevel)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a configured level name to a zerolog level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// SetLogger replaces the process logger. Used by the CLI to honour --log-level.
func SetLogger(l zerolog.Logger) {
	logger = l
}
