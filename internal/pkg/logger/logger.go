package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pereval-service/internal/config"
)

const serviceName = "pereval-api"

// New создает zap логгер по LOG_LEVEL и LOG_FORMAT.
// Неизвестный уровень трактуется как info, уровень debug включает режим разработки.
func New(cfg *config.LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Format == "console" || level == zapcore.DebugLevel {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Development = level == zapcore.DebugLevel

	return zc.Build(zap.Fields(zap.String("service", serviceName)))
}
