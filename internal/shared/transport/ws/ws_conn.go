package ws

import (
	"context"
)

// WsMsgReq 是一条入站 JSON 帧：{type, ...字段}。
type WsMsgReq struct {
	Type    string
	Payload map[string]any
	Conn    WSConn
}

// WsMsgResp 由 handler 填写：Code 进访问日志；Reply 非 nil 时回推给本连接。
type WsMsgResp struct {
	Code   int
	Reason string
	Reply  any
}

// WSConn 是对单条 WebSocket 连接的抽象，session 层与 world actor 只依赖这个接口。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	Addr() string
	// Push 非阻塞入队；连接已关闭或发送队列已满时返回 false。
	Push(msg any) bool
	Close()
	// Done 在连接关闭时被关闭
	Done() <-chan struct{}
	// Context 携带连接级 trace_id
	Context() context.Context
}

// ErrorMsg 是握手阶段的致命错误，发送后立即关闭连接。
type ErrorMsg struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

type Heartbeat struct {
	Type  string `json:"type" mapstructure:"type"`
	CTime int64  `json:"ctime" mapstructure:"ctime"`
	STime int64  `json:"stime" mapstructure:"stime"`
}

const (
	ErrorType     = "error"
	HeartbeatType = "heartbeat"
	ConnKeyName   = "name"
)
