package logging

import (
	"io"
	"os"
	"path/filepath"

	"shop-ledger/internal/config"

	"github.com/sirupsen/logrus"
)

// New builds the application logger from config: level, text/json format,
// and an optional log file the output is tee'd into alongside stdout.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var output io.Writer = os.Stdout
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				output = io.MultiWriter(os.Stdout, file)
			}
		}
	}
	logger.SetOutput(output)

	return logger
}
