// Package logging builds the logrus logger shared by the CLI, the MCP
// server and the corpus watcher. Logs go to stderr so stdout stays free
// for command output and the stdio protocol.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures a logger.
type Options struct {
	Level  string // panic, fatal, error, warn, info, debug, trace
	Format string // text or json
	Output io.Writer
}

// New returns a component-tagged entry for the given options.
func New(opts Options) (*logrus.Entry, error) {
	logger := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	return logrus.NewEntry(logger).WithField("app", "knnchat"), nil
}

// Discard returns an entry that drops everything. Tests and quiet
// commands use it.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
