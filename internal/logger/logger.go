package logger

import (
	"os"

	"go.uber.org/zap"
)

var globalLogger *zap.Logger

// Init initializes the global logger. logLevel may be nil, in which case
// "info" is used.
func Init(logLevel *string) error {
	var err error

	// Create config based on GO_ENV for formatting
	env := os.Getenv("GO_ENV")
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	appliedLogLevel := "info"
	if logLevel != nil && *logLevel != "" {
		appliedLogLevel = *logLevel
	}

	switch appliedLogLevel {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	globalLogger, err = config.Build()
	if err != nil {
		return err
	}

	return nil
}

// Get returns the global logger
func Get() *zap.Logger {
	if globalLogger == nil {
		// Fallback to development logger if not initialized
		globalLogger, _ = zap.NewDevelopment()
	}
	return globalLogger
}

// Sync flushes the logger
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Shutdown properly closes the logger
func Shutdown() error {
	return Sync()
}

// WithContext returns a logger with additional context fields
func WithContext(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

// WithRoomContext returns a logger with room/player context
func WithRoomContext(roomCode, playerID string) *zap.Logger {
	fields := make([]zap.Field, 0, 2)

	if roomCode != "" {
		fields = append(fields, zap.String("room_code", roomCode))
	}

	if playerID != "" {
		fields = append(fields, zap.String("player_id", playerID))
	}

	return Get().With(fields...)
}

// WithConnectionContext returns a logger with connection/player/room context
func WithConnectionContext(connectionID, playerID, roomCode string) *zap.Logger {
	fields := make([]zap.Field, 0, 3)

	if connectionID != "" {
		fields = append(fields, zap.String("connection_id", connectionID))
	}

	if playerID != "" {
		fields = append(fields, zap.String("player_id", playerID))
	}

	if roomCode != "" {
		fields = append(fields, zap.String("room_code", roomCode))
	}

	return Get().With(fields...)
}
