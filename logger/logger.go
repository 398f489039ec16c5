package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide sugared logger. It discards output until Init runs.
var Log = zap.NewNop().Sugar()

// Init builds a production logger at the given level ("debug", "info", ...).
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}

// Named returns a structured child logger for a component.
func Named(name string) *zap.Logger {
	return Log.Desugar().Named(name)
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}
