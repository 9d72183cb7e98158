package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger supports structured logging
type Logger interface {
	Debug(msg string, keyValues ...any)
	Info(msg string, keyValues ...any)
	Warn(msg string, keyValues ...any)
	Error(msg string, keyValues ...any)
	With(keyValues ...any) Logger
	Sync() error
}

type zapLogger struct {
	logger *zap.SugaredLogger
}

var _ Logger = (*zapLogger)(nil)

func (zl *zapLogger) Debug(msg string, keyValues ...any) { zl.logger.Debugw(msg, keyValues...) }
func (zl *zapLogger) Info(msg string, keyValues ...any)  { zl.logger.Infow(msg, keyValues...) }
func (zl *zapLogger) Warn(msg string, keyValues ...any)  { zl.logger.Warnw(msg, keyValues...) }
func (zl *zapLogger) Error(msg string, keyValues ...any) { zl.logger.Errorw(msg, keyValues...) }
func (zl *zapLogger) Sync() error                        { return zl.logger.Sync() }

func (zl *zapLogger) With(keyValues ...any) Logger {
	return &zapLogger{zl.logger.With(keyValues...)}
}

// Config for Logger
type Config struct {
	Debug bool
	Level zapcore.Level
}

// New returns a development logger in debug mode and a production (JSON)
// logger otherwise.
func New(cfg Config) (Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction(zap.IncreaseLevel(cfg.Level))
	}
	if err != nil {
		return nil, err
	}
	return &zapLogger{logger.Sugar()}, nil
}

// Wrap adapts an existing zap logger, mostly for tests.
func Wrap(l *zap.Logger) Logger {
	return &zapLogger{l.Sugar()}
}

// Nop discards everything.
func Nop() Logger {
	return Wrap(zap.NewNop())
}
