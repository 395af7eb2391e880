package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootLogger is the base logger of the process. Handlers derive per-request
// loggers from it.
var RootLogger = newRootLogger()

func newRootLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(logLevelFromEnv())
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		// a production config with defaults cannot fail to build, but the
		// process must not start without a logger either way
		panic(err)
	}
	return logger
}

func logLevelFromEnv() zapcore.Level {
	switch os.Getenv(SD_LOG_LEVEL) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
