package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "CAMCTL_LOG_LEVEL"

// LogFileEnvVar redirects log output to a file. The TUI owns stdout, so
// interactive sessions should always log to a file.
const LogFileEnvVar = "CAMCTL_LOG_FILE"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks CAMCTL_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	output := "stderr"
	if path := os.Getenv(LogFileEnvVar); path != "" {
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	// Colour codes only make sense on a terminal
	if output == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built

	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogRequest logs an outgoing directory API request
func LogRequest(op, method, url, requestID string) {
	Debug("Directory request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", url),
		zap.String("request_id", requestID),
	)
}

// LogResponse logs the outcome of a directory API request
func LogResponse(op string, statusCode int, requestID string, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status_code", statusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", elapsed),
	}
	if statusCode >= 200 && statusCode < 300 {
		Info("Directory response", fields...)
		return
	}
	Warn("Directory response", fields...)
}

// LogTransition logs a view state transition (fetch started, edit opened, ...)
func LogTransition(event string, fields ...zap.Field) {
	Debug("View transition", append([]zap.Field{zap.String("event", event)}, fields...)...)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
