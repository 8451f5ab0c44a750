package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"TileArmy/modules/kit/errx"
	"TileArmy/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AcceptFunc 在连接开始收发前决定是否接纳该名字；返回错误则发送 error 帧并关闭。
type AcceptFunc func(ctx context.Context, name string, conn WSConn) error

type Options struct {
	SendBuffer     int
	MaxMessageSize int64
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
}

func (o Options) withDefaults() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 1000
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = 64 << 10
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.PingPeriod <= 0 || o.PingPeriod >= o.PongWait {
		o.PingPeriod = o.PongWait * 9 / 10
	}
	return o
}

type Server struct {
	router   *Router
	accept   AcceptFunc
	upgrader websocket.Upgrader
	opts     Options
	log      logx.Logger
}

func NewServer(r *Router, accept AcceptFunc, l logx.Logger, opts Options) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		accept: accept,
		upgrader: websocket.Upgrader{
			// 允许所有跨域请求
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		opts: opts.withDefaults(),
		log:  l,
	}
}

const msgNameRequired = "Name required"

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	name := strings.TrimSpace(req.URL.Query().Get(ConnKeyName))

	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Warn("websocket upgrade error", zap.Error(err))
		return
	}
	conn := NewWsServer(wsConn, name, s.log, s.opts)
	log := conn.log.With(zap.String("addr", conn.Addr()))

	if name == "" {
		log.Info("websocket rejected: empty name")
		conn.Reject(msgNameRequired)
		return
	}
	if s.accept != nil {
		if err := s.accept(conn.Context(), name, conn); err != nil {
			log.Info("websocket rejected", zap.String("reason", errx.MsgOf(err)))
			conn.Reject(errx.MsgOf(err))
			return
		}
	}
	log.Info("websocket accepted")
	conn.Router(s.router)
	conn.Run()
}
