package session

import (
	"sync"

	"TileArmy/internal/shared/transport/ws"
)

// Manager 维护 玩家名 -> 连接 的一对一绑定。
type Manager interface {
	// Bind 名字已被其他连接占用时返回 false，不会踢掉旧连接。
	Bind(name string, conn ws.WSConn) bool
	// Unbind 只有 conn 仍是该名字的当前连接时才解绑，过期连接的断开被忽略。
	Unbind(name string, conn ws.WSConn) bool
	Get(name string) (ws.WSConn, bool)
	// Kick 解绑并关闭该名字的连接。
	Kick(name string) bool
	Broadcast(msg any) int
	Len() int
}

type SessMgr struct {
	sync.RWMutex
	name2conn map[string]ws.WSConn
	order     []string
}

func NewSessMgr() *SessMgr {
	return &SessMgr{
		name2conn: make(map[string]ws.WSConn),
	}
}

func (s *SessMgr) Bind(name string, conn ws.WSConn) bool {
	if conn == nil || name == "" {
		return false
	}
	s.Lock()
	defer s.Unlock()
	if old, ok := s.name2conn[name]; ok && old != conn {
		return false
	}
	if _, ok := s.name2conn[name]; !ok {
		s.order = append(s.order, name)
	}
	s.name2conn[name] = conn
	return true
}

func (s *SessMgr) Unbind(name string, conn ws.WSConn) bool {
	s.Lock()
	defer s.Unlock()
	cur, ok := s.name2conn[name]
	if !ok || cur != conn {
		return false
	}
	s.removeLocked(name)
	return true
}

func (s *SessMgr) Kick(name string) bool {
	s.Lock()
	conn, ok := s.name2conn[name]
	if ok {
		s.removeLocked(name)
	}
	s.Unlock()
	if ok {
		conn.Close()
	}
	return ok
}

func (s *SessMgr) removeLocked(name string) {
	delete(s.name2conn, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *SessMgr) Get(name string) (ws.WSConn, bool) {
	s.RLock()
	defer s.RUnlock()
	conn, ok := s.name2conn[name]
	return conn, ok
}

// Broadcast 按绑定顺序推送给所有连接，返回成功入队的连接数。
func (s *SessMgr) Broadcast(msg any) int {
	s.RLock()
	conns := make([]ws.WSConn, 0, len(s.order))
	for _, n := range s.order {
		conns = append(conns, s.name2conn[n])
	}
	s.RUnlock()

	sent := 0
	for _, c := range conns {
		if c.Push(msg) {
			sent++
		}
	}
	return sent
}

func (s *SessMgr) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.name2conn)
}
