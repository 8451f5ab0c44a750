package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 各包共用的日志接口。
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	WithContext(ctx context.Context) Logger
}

func Nop() Logger {
	return NewZapLogger(nil)
}
