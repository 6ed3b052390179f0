package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/killallgit/scribe/pkg/config"
)

var (
	base        = zerolog.New(io.Discard)
	logFile     *os.File
	initialized bool
)

// Init initializes the logger with configuration from global config
func Init() error {
	if initialized {
		return nil
	}

	settings := config.Get()
	level := parseLevel(settings.Logging.Level)

	logPath := settings.Logging.LogFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(filepath.Dir(settings.ConfigFile), filepath.Base(logPath))
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if settings.Logging.Persist {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(logPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logFile = file
	base = zerolog.New(file).Level(level).With().Timestamp().Logger()
	initialized = true
	return nil
}

// WithComponent returns a logger tagged with the given component name
func WithComponent(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

// SetOutput redirects log output (useful for testing)
func SetOutput(w io.Writer) {
	base = base.Output(w)
}

// Close closes the log file
func Close() error {
	initialized = false
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

func parseLevel(levelStr string) zerolog.Level {
	switch levelStr {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
