// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects where logs go.
type Options struct {
	Level  string // zerolog level name, "info" when empty
	Debug  bool   // forces debug level
	File   string // optional log file, appended to
	Pretty bool   // console formatting for the file
	Quiet  bool   // no stderr output, used while the TUI owns the terminal
	Stderr io.Writer
}

// Setup builds a logger from opts, installs it as the global zerolog logger
// and returns it with a function that closes the log file, if any.
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = l
	}
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	var writers []io.Writer
	closer := func() error { return nil }

	if !opts.Quiet {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        stderr,
			TimeFormat: "15:04:05",
			NoColor:    !isTerminal(stderr),
		})
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
		}
		closer = file.Close
		if opts.Pretty {
			writers = append(writers, zerolog.ConsoleWriter{Out: file, NoColor: true})
		} else {
			writers = append(writers, file)
		}
	}

	if len(writers) == 0 {
		logger := zerolog.Nop()
		log.Logger = logger
		return logger, closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	log.Logger = logger
	return logger, closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
