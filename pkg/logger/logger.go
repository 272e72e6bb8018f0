package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  = zap.NewNop()
	sugar = base.Sugar()
)

// Init replaces the process logger. Development gets a colored console logger with debug level,
// "test" silences output, anything else logs JSON at info level.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)

	switch environment {
	case "development":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1))
	case "test":
		l = zap.NewNop()
	default:
		l, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return err
	}

	base = l
	sugar = l.Sugar()
	return nil
}

// L returns the structured logger for callers that log with fields.
func L() *zap.Logger {
	return base.WithOptions(zap.AddCallerSkip(-1))
}

func Sync() {
	_ = base.Sync()
}

func Info(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	sugar.Warnf(format, v...)
}

// Fatal logs and exits the process.
func Fatal(format string, v ...interface{}) {
	sugar.Fatalf(format, v...)
}
