package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"TileArmy/modules/kit/logx"
	"TileArmy/modules/kit/tracex"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WsServer 是一条已升级的连接：readMsgLoop 读帧分发，writeMsgLoop 独占写。
type WsServer struct {
	conn     *websocket.Conn
	router   *Router
	outChan  chan any
	property map[string]any
	sync.RWMutex
	ctx       context.Context
	done      chan struct{}
	closeOnce sync.Once
	opts      Options
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, name string, l logx.Logger, opts Options) *WsServer {
	opts = opts.withDefaults()
	ctx := tracex.ForConn(name)
	if l == nil {
		l = logx.Nop()
	}
	return &WsServer{
		conn:     wsConn,
		outChan:  make(chan any, opts.SendBuffer),
		property: map[string]any{ConnKeyName: name},
		ctx:      ctx,
		done:     make(chan struct{}),
		opts:     opts,
		log:      l.WithContext(ctx),
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsServer) Context() context.Context {
	return s.ctx
}

func (s *WsServer) Push(msg any) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.outChan <- msg:
		return true
	case <-s.done:
		return false
	default:
		// 发送队列满说明对端消费不过来，直接断开
		s.log.Warn("ws send buffer full, closing", zap.String("addr", s.Addr()))
		s.Close()
		return false
	}
}

// Reject 同步写出错误帧后关闭连接，只能在 Run 之前调用。
func (s *WsServer) Reject(msg string) {
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
	if err := s.conn.WriteJSON(ErrorMsg{Type: ErrorType, Msg: msg}); err != nil {
		s.log.Debug("ws reject write failed", zap.Error(err))
	}
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, msg))
	s.Close()
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()

	s.conn.SetReadLimit(s.opts.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Info("ws read closed", zap.Error(err))
			}
			return
		}

		payload := map[string]any{}
		if err := json.Unmarshal(data, &payload); err != nil {
			s.log.Debug("ws malformed frame", zap.Error(err), zap.Int("size", len(data)))
			continue
		}
		msgType, _ := payload["type"].(string)
		if msgType == HeartbeatType {
			s.heartbeat(payload)
			continue
		}
		if s.router == nil {
			continue
		}

		req := WsMsgReq{Type: msgType, Payload: payload, Conn: s}
		resp := WsMsgResp{}
		s.router.Dispatch(&req, &resp)
		if resp.Reply != nil {
			s.Push(resp.Reply)
		}
	}
}

func (s *WsServer) heartbeat(payload map[string]any) {
	h := &Heartbeat{}
	_ = mapstructure.WeakDecode(payload, h)
	h.Type = HeartbeatType
	h.STime = time.Now().UnixMilli()
	s.Push(h)
}

func (s *WsServer) writeMsgLoop() {
	ticker := time.NewTicker(s.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()
	for {
		select {
		case msg := <-s.outChan:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.log.Debug("ws write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}
