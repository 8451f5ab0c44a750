package transport

import (
	"context"
	"time"

	"TileArmy/modules/kit/logx"
	"TileArmy/modules/kit/tracex"

	"go.uber.org/zap"
)

// AccessLog 是请求级日志上下文，覆盖 WS 指令与 HTTP 请求。
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	Player      string
	startTime   time.Time
	action      string
}

type accessLogKey struct{}

// NewContext 以 parent 为父 context 创建带 AccessLog 的新 context。
// parent 已有 trace_id（例如连接级 trace）时沿用，span_id 每次请求新生成。
func NewContext(parent context.Context, action string) context.Context {
	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	ctx = tracex.Ensure(ctx)
	ctx = tracex.WithSpanID(ctx, tracex.NewID())

	al := &AccessLog{
		BizCode:   BizCode(SystemError),
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.ErrorReason = reason
	}
}

func SetPlayer(ctx context.Context, player string) {
	if al := FromContext(ctx); al != nil {
		al.Player = player
	}
}

// WriteAccessLog 输出访问日志，在 dispatch/中间件结束时调用。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	fields := []zap.Field{
		zap.Duration("latency", time.Since(al.startTime)),
	}
	// 连接级 ctx 已带 player 时由 logger 输出
	if _, ok := tracex.PlayerFrom(ctx); !ok && al.Player != "" {
		fields = append(fields, zap.String("player", al.Player))
	}
	if al.BizCode == BizCode(OK) {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.ErrorReason != "" {
			fields = append(fields, zap.String("error_reason", al.ErrorReason))
		}
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, int(al.BizCode), fields...)
}
