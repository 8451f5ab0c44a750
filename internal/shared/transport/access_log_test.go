package transport

import (
	"context"
	"testing"

	"TileArmy/modules/kit/logx"
	"TileArmy/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewContext_沿用连接trace(t *testing.T) {
	parent := tracex.WithTraceID(context.Background(), "conn-1")
	ctx := NewContext(parent, "WS spawnVehicle")
	if got, _ := tracex.TraceIDFrom(ctx); got != "conn-1" {
		t.Fatalf("期望沿用父 trace, got=%q", got)
	}
	if _, ok := tracex.SpanIDFrom(ctx); !ok {
		t.Fatalf("期望生成 span_id")
	}
	if FromContext(ctx).BizCode != SystemError {
		t.Fatalf("默认业务码应为 SystemError")
	}
}

func TestWriteAccessLog_失败带原因(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := NewContext(context.Background(), "WS upgradeBase")
	SetBizCode(ctx, Rejected)
	SetErrorReason(ctx, "NOT_ENOUGH_MATERIALS")
	SetPlayer(ctx, "alice")

	WriteAccessLog(ctx, logx.NewZapLogger(zap.New(core)))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条日志, got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["result"] != "failure" || fields["error_reason"] != "NOT_ENOUGH_MATERIALS" || fields["player"] != "alice" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("业务拒绝应为 INFO, got=%v", entries[0].Level)
	}
}
