package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/millennium-run/internal/config"
)

// newLogger creates the run logger. Every line carries the run id.
func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "millennium",
		Level:           cfg.Level(),
	}).With("run", uuid.NewString())
}

// openLogFile opens the log file used while the terminal UI owns stdout.
func openLogFile(cfg config.Config) (*os.File, error) {
	p := cfg.Log.File
	if p == "" {
		dir := config.Dir()
		if dir == "" {
			dir = os.TempDir()
		}
		p = filepath.Join(dir, "millennium.log")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// cliLogger logs to stderr for the subcommands.
func cliLogger() *log.Logger {
	cfg, _, err := loadConfig()
	if err != nil {
		cfg = config.Default()
	}
	return newLogger(os.Stderr, cfg)
}
