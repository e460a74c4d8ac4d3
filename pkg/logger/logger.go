package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled process-wide logger backed by zap.
// - Debugf/Infof/Warnf/Errorf/Fatalf printf-style helpers
// - Init(level) adjusts the level at runtime, Configure also picks the encoder
// - L() exposes the structured logger for request logging

var (
	mu   sync.RWMutex
	atom = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base = build("console")
)

func build(format string) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(format, "json") {
		encoder = zapcore.NewJSONEncoder(enc)
	} else {
		encoder = zapcore.NewConsoleEncoder(enc)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), atom)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values fall back to info.
func Init(l string) {
	atom.SetLevel(parseLevel(l))
}

// Configure sets the level and the output format ("console" or "json").
func Configure(l, format string) {
	Init(l)
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	base = build(format)
}

func parseLevel(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sugar()
}

// L returns the structured logger. Callers log directly, so the wrapper's
// caller skip is removed.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithOptions(zap.AddCallerSkip(-1))
}

func Debugf(format string, v ...interface{}) { sugar().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { sugar().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { sugar().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { sugar().Errorf(format, v...) }

// Fatalf logs and exits the process with status 1.
func Fatalf(format string, v ...interface{}) { sugar().Fatalf(format, v...) }

// Sync flushes buffered entries; call before exit.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// LevelString returns the current level as text.
func LevelString() string {
	return atom.Level().String()
}
