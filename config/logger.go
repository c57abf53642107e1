package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggingConfig struct {
	Level string `yaml:"level" validate:"required,oneof=none debug normal"`
}

// Prepare returns the logger described by the configuration: warnings and
// errors go to stderr, lower levels to stdout.
func (conf *LoggingConfig) Prepare() *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.WarnLevel
	})

	var coreLP, coreHP zapcore.Core
	switch conf.Level {
	case "normal":
		coreLP = zapcore.NewCore(encoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.InfoLevel <= lvl && lvl < zapcore.WarnLevel
			}))
		coreHP = zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority)
	case "debug":
		coreLP = zapcore.NewCore(encoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.DebugLevel <= lvl && lvl < zapcore.WarnLevel
			}))
		coreHP = zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority)
	default:
		coreLP = zapcore.NewNopCore()
		coreHP = zapcore.NewNopCore()
	}
	return zap.New(zapcore.NewTee(coreHP, coreLP))
}
