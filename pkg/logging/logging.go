// Package logging builds the logrus logger shared by the CLI and the HTTP
// service.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ssargent/lgeparse/pkg/config"
)

// Level names accepted in configuration
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Format names accepted in configuration
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to out (stderr when nil) at the configured
// level and format.
func New(cfg config.Logging, out io.Writer) (*logrus.Logger, error) {
	if out == nil {
		out = os.Stderr
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	formatter, err := newFormatter(cfg.Format)
	if err != nil {
		return nil, err
	}
	logger.SetFormatter(formatter)

	return logger, nil
}

func parseLevel(name string) (logrus.Level, error) {
	switch strings.ToLower(name) {
	case "":
		return logrus.InfoLevel, nil
	case LevelDebug, LevelInfo, LevelWarn, "warning", LevelError:
		return logrus.ParseLevel(name)
	default:
		return 0, fmt.Errorf("unsupported log level: %s", name)
	}
}

func newFormatter(format string) (logrus.Formatter, error) {
	caller := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch format {
	case FormatJSON:
		return &logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: caller,
		}, nil
	case FormatText, "":
		return &logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339,
			DisableColors:    true,
			CallerPrettyfier: caller,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}
