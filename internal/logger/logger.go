// Package logger provides a logging capability for gogen-api.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

// Initialize creates and configures the application logger. When debug is
// true, logs use a human-readable console encoding at debug level; otherwise
// structured JSON at info level. Logs are written to stderr so stdout stays
// clean for commands that output data.
func Initialize(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log = l.Sugar()
}

// ensure lets the package-level helpers work even if Initialize was never
// called, e.g. in tests.
func ensure() *zap.SugaredLogger {
	if log == nil {
		Initialize(false)
	}
	return log
}

// Debug logs a message at debug level.
func Debug(args ...any) { ensure().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) { ensure().Debugf(format, args...) }

// Info logs a message at info level.
func Info(args ...any) { ensure().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) { ensure().Infof(format, args...) }

// Warn logs a message at warn level.
func Warn(args ...any) { ensure().Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) { ensure().Warnf(format, args...) }

// Error logs a message at error level.
func Error(args ...any) { ensure().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) { ensure().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...any) { ensure().Fatalf(format, args...) }

// Infow logs a message at info level with structured key-value pairs.
func Infow(msg string, keysAndValues ...any) { ensure().Infow(msg, keysAndValues...) }

// Errorw logs a message at error level with structured key-value pairs.
func Errorw(msg string, keysAndValues ...any) { ensure().Errorw(msg, keysAndValues...) }
