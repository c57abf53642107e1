// Package logger exposes the loggers shared by the layout packages.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProgressLogger logs the main steps of the layout pipeline.
var ProgressLogger *zap.SugaredLogger

// WarningLogger emits a warning for each non fatal error, like unsupported CSS
// properties or unknown running elements.
var WarningLogger *zap.SugaredLogger

func init() {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stdout), zapcore.InfoLevel)
	SetLogger(zap.New(core))
}

// SetLogger routes both loggers to [l], which is typically built
// from the configuration.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	ProgressLogger = l.Named("progress").Sugar()
	WarningLogger = l.Named("warning").Sugar()
}
