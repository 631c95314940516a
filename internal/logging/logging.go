// Package logging builds the zap loggers used by the CLI, the HTTP service
// and, when a log file is configured, the terminal UI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
type Config struct {
	// Debug enables debug level and development encoding.
	Debug bool

	// File, when set, receives log output instead of stderr.
	File string
}

// New builds a sugared console logger.
func New(cfg Config) (*zap.SugaredLogger, error) {
	var zc zap.Config
	if cfg.Debug {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		zc.Sampling = nil
	}
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// NewForTUI returns a file logger when file is set and a no-op logger
// otherwise, since stderr output would corrupt the alternate screen.
func NewForTUI(debug bool, file string) (*zap.SugaredLogger, error) {
	if file == "" {
		return Nop(), nil
	}
	return New(Config{Debug: debug, File: file})
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
