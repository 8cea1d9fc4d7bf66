// Package logging contains the zap backed logger used by the motion pipeline and its tools.
package logging

import (
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the structured logger passed to the pipeline and the encoder. Key value pairs follow
// the zap sugared convention.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// With returns a logger adding the given fields to every entry, e.g. the sequence label.
	With(keysAndValues ...interface{}) Logger
	// Sublogger returns a logger named "<name>.<subname>".
	Sublogger(subname string) Logger
	Sync() error
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newZapLogger(name string, core zapcore.Core) Logger {
	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	if name != "" {
		base = base.Named(name)
	}
	return &zapLogger{sugar: base.Sugar()}
}

func (l *zapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *zapLogger) With(keysAndValues ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(keysAndValues...)}
}

func (l *zapLogger) Sublogger(subname string) Logger {
	return &zapLogger{sugar: l.sugar.Named(subname)}
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

// consoleEncoder writes `time LEVEL name file:line message {fields}` separated by tabs.
func consoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z0700"),
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
}

// NewLogger returns a logger writing entries at level and above to w.
func NewLogger(name string, w io.Writer, level Level) Logger {
	return newZapLogger(name, zapcore.NewCore(consoleEncoder(), zapcore.AddSync(w), level))
}

// NewNopLogger returns a logger that drops every entry.
func NewNopLogger() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

// NewTestLogger returns a logger that writes Debug+ entries to the test object.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also records entries in memory.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	testCore := zaptest.NewLogger(tb, zaptest.Level(DEBUG)).Core()
	observerCore, observedLogs := observer.New(DEBUG)
	return newZapLogger("", zapcore.NewTee(testCore, observerCore)), observedLogs
}
