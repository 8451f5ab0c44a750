package actors

import (
	"github.com/asynkron/protoactor-go/actor"
)

// ManagerActor 是世界 actor 的父 actor：懒创建并转发请求，
// 世界 actor 崩溃后由默认监督策略重启，Simulation 在重启间保留。
type ManagerActor struct {
	newWorld func() actor.Actor
	world    *actor.PID
}

func NewManagerActor(newWorld func() actor.Actor) *ManagerActor {
	return &ManagerActor{newWorld: newWorld}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch ctx.Message().(type) {
	case *actor.Started:
		m.getOrSpawn(ctx)
	case WorldMessage:
		ctx.Forward(m.getOrSpawn(ctx))
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context) *actor.PID {
	if m.world != nil {
		return m.world
	}
	props := actor.PropsFromProducer(m.newWorld)
	m.world = ctx.Spawn(props)
	return m.world
}
