package tracex

import (
	"context"

	"github.com/lithammer/shortuuid/v4"
)

type ctxKey int

const (
	traceIDKey ctxKey = iota
	spanIDKey
	playerKey
)

// WithTraceID 一条 WebSocket 连接或一次 HTTP 请求对应一个 trace。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, traceIDKey)
}

// WithSpanID 一条客户端指令对应一个 span。
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, spanIDKey)
}

// WithPlayer 标记连接所属玩家名，日志自动带上 player 字段。
func WithPlayer(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, playerKey, name)
}

func PlayerFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, playerKey)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(key).(string)
	return s, ok && s != ""
}

func NewID() string {
	return shortuuid.New()
}

// Ensure 在 ctx 没有 trace_id 时生成一个。
func Ensure(ctx context.Context) context.Context {
	if _, ok := TraceIDFrom(ctx); ok {
		return ctx
	}
	return WithTraceID(ctx, NewID())
}

// ForConn 为新连接生成带 trace 和玩家名的根 context。
func ForConn(name string) context.Context {
	ctx := WithTraceID(context.Background(), NewID())
	if name != "" {
		ctx = WithPlayer(ctx, name)
	}
	return ctx
}
