package actors

import (
	"TileArmy/internal/shared/transport/ws"
	"TileArmy/internal/world/delta"
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/service"
)

// WorldMessage 是发往世界 actor 的请求。HW* 为请求，WH* 为应答。
type WorldMessage interface {
	PlayerName() string
}

type WorldBaseMessage struct {
	Name string
}

func (m WorldBaseMessage) PlayerName() string { return m.Name }

// HWJoin 绑定连接并创建或恢复玩家，init 消息在应答前已推入连接。
type HWJoin struct {
	WorldBaseMessage
	Conn ws.WSConn
}

type WHJoin struct {
	Created bool
}

// HWLeave 只有 Conn 仍是该名字的当前连接时才生效。
type HWLeave struct {
	WorldBaseMessage
	Conn ws.WSConn
}

type WHLeave struct {
	Disconnected bool
}

type HWCommand struct {
	WorldBaseMessage
	Cmd service.Command
}

type WHCommand struct {
	Msg string
}

type HWRemovePlayer struct {
	WorldBaseMessage
}

type WHRemovePlayer struct {
	Kicked bool
}

type HWPlayerView struct {
	WorldBaseMessage
}

type WHPlayerView struct {
	View dto.PlayerView
}

// HWStep 手动推进一个 tick，自动 tick 关闭时使用。
type HWStep struct {
	WorldBaseMessage
}

type WHStep struct {
	Records []delta.Record
}

// WHFail 携带业务或系统错误。
type WHFail struct {
	Err error
}
