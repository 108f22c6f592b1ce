package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-daily/internal/config"
	"github.com/vancomm/minesweeper-daily/internal/mines"
)

// newLogger builds the process logger and points the engine logger at the
// same output.
func newLogger(cfg *config.Config, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(out)
	if cfg.Development {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
		level = logrus.DebugLevel
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.SetLevel(level)

	if cfg.Log.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, err
		}
		log.AddHook(hook)
	}

	mines.Log.SetOutput(log.Out)
	mines.Log.SetFormatter(log.Formatter)
	mines.Log.SetLevel(level)
	mines.Log.ReplaceHooks(log.Hooks)

	return log, nil
}
