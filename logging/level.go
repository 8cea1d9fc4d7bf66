package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a logger writes.
type Level = zapcore.Level

// Levels accepted on the command line.
const (
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
)

// LevelFromString parses one of `debug`, `info`, `warn` or `error`, ignoring case.
func LevelFromString(inp string) (Level, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(inp))
	if err != nil || level < DEBUG || level > ERROR {
		return INFO, errors.Errorf("unknown log level: %q", inp)
	}
	return level, nil
}
