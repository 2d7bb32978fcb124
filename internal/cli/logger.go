package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aidahq/aida/internal/config"
	"github.com/aidahq/aida/internal/paths"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// initLogger builds the CLI logger from verbosity flags and config.
//
// Console output goes to stderr: human-readable on a TTY, JSON otherwise, so
// stdout stays clean for the response envelope. When a log file is configured
// it also receives JSON entries with rotation.
func initLogger(verbose, quiet bool, lc config.LogConfig) zerolog.Logger {
	writer := consoleWriter()
	if fileWriter := logFileWriter(lc); fileWriter != nil {
		writer = zerolog.MultiLevelWriter(writer, fileWriter)
	}
	return zerolog.New(writer).Level(selectLevel(verbose, quiet, lc.Level)).With().Timestamp().Logger()
}

// selectLevel resolves the log level: flags win over config.
func selectLevel(verbose, quiet bool, configured string) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	}
	if configured != "" {
		if level, err := zerolog.ParseLevel(configured); err == nil {
			return level
		}
	}
	return zerolog.InfoLevel
}

func consoleWriter() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// logFileWriter returns a rotating file writer, or nil when no file is
// configured or its directory cannot be created.
func logFileWriter(lc config.LogConfig) io.Writer {
	if lc.File == "" {
		return nil
	}
	file := paths.ExpandUser(lc.File)
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return nil
	}

	maxSize := lc.MaxSizeMB
	if maxSize <= 0 {
		maxSize = logMaxSizeMB
	}
	maxBackups := lc.MaxBackups
	if maxBackups <= 0 {
		maxBackups = logMaxBackups
	}
	maxAge := lc.MaxAgeDays
	if maxAge <= 0 {
		maxAge = logMaxAgeDays
	}

	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
}
