package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// setupLog configures the package-level logger. Logs go to stderr unless
// logFile is set. Output that is not a terminal gets logfmt so it can be
// collected next to the generated clips.
func setupLog(debug bool, logFile string) (func() error, error) {
	var (
		w      io.Writer = os.Stderr
		closer           = func() error { return nil }
		isTTY            = term.IsTerminal(int(os.Stderr.Fd()))
	)

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil { //nolint:gosec
			return nil, fmt.Errorf("unable to create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		w, closer, isTTY = f, f.Close, false
	}

	log.SetOutput(w)
	log.SetReportTimestamp(!isTTY)
	if !isTTY {
		log.SetFormatter(log.LogfmtFormatter)
	}
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return closer, nil
}
