package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const timeFormat = "2006-01-02_15:04:05"

// DebugEnabled returns true if debug mode is enabled via TW_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TW_DEBUG") != ""
}

// New builds a console logger writing to w. Debug level is used when verbose is
// set or TW_DEBUG is present, warn level otherwise.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose || DebugEnabled() {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Setup installs a console logger writing to w as the process-wide zerolog
// logger and returns it. A nil w means stderr.
func Setup(w io.Writer, verbose bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := New(w, verbose)
	log.Logger = logger
	return logger
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		log.Debug().Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
}

