// Package logging provides the shared structured logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger instance. Init must be called once
// at startup before any component logs.
var Log = logrus.New()

// Init configures the global logger from the environment:
//   - LOG_LEVEL: debug, info, warn, error (default info)
//   - LOG_FORMAT: "json" for machine-readable output, anything else for text
//   - LOG_FILE: path to append logs to; required in practice, because
//     stdout belongs to the terminal game screen
//
// Returns a closer for the log file, or nil if logging goes to stderr.
func Init() (io.Closer, error) {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		Log.SetOutput(f)
		return f, nil
	}

	Log.SetOutput(os.Stderr)
	return nil, nil
}

// Component returns an entry scoped to one subsystem. All component logs
// share the "component" field so they can be filtered downstream.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
