// Package logging builds the zap loggers used by the binaries.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger flavor and destination
type Options struct {
	// Level is a zap level name; empty means info
	Level string
	// File receives log output instead of stderr when set
	File string
	// Development switches to the human readable console encoder
	Development bool
}

// New builds a logger from opts
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		cfg.Level = level
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewOrNop is New for callers that must keep running without logs
func NewOrNop(opts Options) *zap.Logger {
	logger, err := New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}
