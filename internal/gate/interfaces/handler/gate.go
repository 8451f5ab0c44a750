package handler

import (
	"TileArmy/internal/gate/app"
	"TileArmy/internal/shared/gameconfig"
	"TileArmy/modules/kit/logx"
)

// Gate 是 ws 与 http handler 共享的依赖。
type Gate struct {
	GateService *app.GateService
	Config      *gameconfig.Config
	View        gameconfig.ViewConfig
	Log         logx.Logger
}

func NewGate(world app.WorldRuntime, cfg *gameconfig.Config, view gameconfig.ViewConfig, l logx.Logger) *Gate {
	if l == nil {
		l = logx.Nop()
	}
	return &Gate{
		GateService: app.NewGateService(world, l),
		Config:      cfg,
		View:        view,
		Log:         l,
	}
}
