package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap implements Logger on top of a zap sugared logger.
type Zap struct {
	level Level
	sugar *zap.SugaredLogger
}

var _ Logger = (*Zap)(nil)

// New creates a zap-backed logger writing to the given sinks. With no sinks
// it is silent.
func New(level Level, writers ...io.Writer) *Zap {
	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		toZapLevel(level),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &Zap{level: level, sugar: logger.Sugar()}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (z *Zap) Debug(args ...any)                 { z.sugar.Debug(args...) }
func (z *Zap) Debugf(format string, args ...any) { z.sugar.Debugf(format, args...) }
func (z *Zap) Info(args ...any)                  { z.sugar.Info(args...) }
func (z *Zap) Infof(format string, args ...any)  { z.sugar.Infof(format, args...) }
func (z *Zap) Warn(args ...any)                  { z.sugar.Warn(args...) }
func (z *Zap) Warnf(format string, args ...any)  { z.sugar.Warnf(format, args...) }
func (z *Zap) Error(args ...any)                 { z.sugar.Error(args...) }
func (z *Zap) Errorf(format string, args ...any) { z.sugar.Errorf(format, args...) }
func (z *Zap) Fatal(args ...any)                 { z.sugar.Fatal(args...) }
func (z *Zap) Fatalf(format string, args ...any) { z.sugar.Fatalf(format, args...) }

func (z *Zap) With(args ...any) Logger {
	return &Zap{level: z.level, sugar: z.sugar.With(args...)}
}
