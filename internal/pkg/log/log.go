package log

import (
	"context"
	"fmt"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

type logger struct {
	zap *otelzap.Logger
}

var instance Logger

// SetupLogger builds the base zap logger, JSON in production and console otherwise.
func SetupLogger() *zap.Logger {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func Init(l *zap.Logger) {
	instance = &logger{zap: otelzap.New(l, otelzap.WithMinLevel(zapcore.InfoLevel))}
}

func GetLogger() Logger {
	if instance == nil {
		Init(SetupLogger())
	}
	return instance
}

// Setup returns the otelzap logger used directly by handlers and middleware.
func Setup() *otelzap.Logger {
	return otelzap.New(SetupLogger(), otelzap.WithMinLevel(zapcore.InfoLevel))
}

func (l *logger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.zap.Ctx(ctx).Info(msg, fields(args)...)
}

func (l *logger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.zap.Ctx(ctx).Warn(msg, fields(args)...)
}

func (l *logger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.zap.Ctx(ctx).Error(msg, fields(args)...)
}

func fields(args []interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case zap.Field:
			out = append(out, v)
		case error:
			out = append(out, zap.Error(v))
		default:
			out = append(out, zap.Any(fmt.Sprintf("arg%d", i), v))
		}
	}
	return out
}
