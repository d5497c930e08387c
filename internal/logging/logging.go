// Package logging owns the process-wide zerolog logger. The terminal belongs to
// the TUI, so nothing is written unless debugging or a log file is requested.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvDebug   = "HOURSLENS_DEBUG"
	EnvLogFile = "HOURSLENS_LOG_FILE"
)

type Options struct {
	// Debug writes human-readable debug output to Stderr.
	Debug bool
	// File appends JSON lines to the named file.
	File   string
	Stderr io.Writer
}

var global = zerolog.Nop()

// OptionsFromEnv reads HOURSLENS_DEBUG and HOURSLENS_LOG_FILE.
func OptionsFromEnv() Options {
	debug := strings.TrimSpace(os.Getenv(EnvDebug))
	return Options{
		Debug:  debug != "" && debug != "0" && !strings.EqualFold(debug, "false"),
		File:   strings.TrimSpace(os.Getenv(EnvLogFile)),
		Stderr: os.Stderr,
	}
}

// Init replaces the global logger. The returned closer releases the log file,
// if one was opened.
func Init(opts Options) (io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Debug {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return closer, fmt.Errorf("opening log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}

	if len(writers) == 0 {
		global = zerolog.Nop()
		return closer, nil
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	global = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("app", "hourslens").
		Logger()
	return closer, nil
}

// Global returns the process logger.
func Global() *zerolog.Logger {
	return &global
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
