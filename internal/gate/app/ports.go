package app

import (
	"context"

	"TileArmy/internal/shared/transport/ws"
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/service"
)

// WorldRuntime 是世界 actor 对外的同步接口。
type WorldRuntime interface {
	// Join 接纳连接；成功时 init 已推入 conn
	Join(ctx context.Context, name string, conn ws.WSConn) (bool, error)
	// Leave 处理连接关闭，过期连接返回 false
	Leave(ctx context.Context, name string, conn ws.WSConn) (bool, error)
	Command(ctx context.Context, name string, cmd service.Command) (string, error)
	RemovePlayer(ctx context.Context, name string) error
	PlayerView(ctx context.Context, name string) (dto.PlayerView, error)
}
