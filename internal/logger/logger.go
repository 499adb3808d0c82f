/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logger builds the zap loggers of the command line tools.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatConsole is the human readable log format.
	FormatConsole = "console"
	// FormatJSON is the structured log format.
	FormatJSON = "json"
)

// Config holds the configuration for the logger.
type Config struct {
	Component string
	Level     string
	Format    string
}

// Logger wraps zap.Logger with the level it was configured with.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
}

// New creates a logger writing to stderr.
func New(cfg Config) (*Logger, error) {
	level := zap.NewAtomicLevel()

	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	var zapConfig zap.Config

	switch cfg.Format {
	case "", FormatConsole:
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.DisableStacktrace = true
	case FormatJSON:
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	zapConfig.Level = level
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	if cfg.Component != "" {
		zapLogger = zapLogger.With(zap.String("component", cfg.Component))
	}

	return &Logger{
		Logger: zapLogger,
		level:  level,
	}, nil
}

// Level returns the current log level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// Named returns a child logger for a sub component. The name is appended to the logger name.
func (l *Logger) Named(component string) *zap.Logger {
	return l.Logger.Named(component)
}
