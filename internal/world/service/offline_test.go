package service

import (
	"testing"

	"TileArmy/internal/world/entity"
)

func TestOffline_载具回港卸货后停靠(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	v := h.addVehicle(t, "alice", "basic", b.X+100, b.Y)
	v.Speed = 1000
	v.Carrying, v.CarryType = 50, entity.Ore
	startOre := p.Ore

	h.sim.Disconnect("alice")
	h.clock.Advance(h.cfg.OfflineTimeout())
	h.tick(1)
	if !p.Offline || v.State != entity.Returning {
		t.Fatalf("offline=%v state=%v", p.Offline, v.State)
	}

	for i := 0; i < 40 && !(v.State == entity.Idle && v.Carrying == 0); i++ {
		h.tick(1)
	}
	if v.State != entity.Idle || v.Carrying != 0 {
		t.Fatalf("vehicle not docked: %+v", v)
	}
	if entity.Dist(v.X, v.Y, b.X, b.Y) >= h.cfg.DockRadius {
		t.Fatalf("vehicle not at base: (%v,%v)", v.X, v.Y)
	}
	if p.Ore != startOre+50 {
		t.Fatalf("ore = %v, want %v", p.Ore, startOre+50)
	}

	// 离线期间不自动采集
	r := h.addResource(entity.Ore, v.X, v.Y, 500)
	h.tick(10)
	if v.State != entity.Idle || v.TargetRes != "" || r.Amount != 500 {
		t.Fatalf("offline vehicle harvested: %+v amount=%v", v, r.Amount)
	}
}

func TestOffline_采集中的载具被召回(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	x, y := b.X+600, b.Y
	r := h.addResource(entity.Lumber, x, y, 1000)
	v := h.addVehicle(t, "alice", "scout", x, y)
	h.tick(1)
	if v.State != entity.Harvesting {
		t.Fatalf("state = %v", v.State)
	}

	h.sim.Disconnect("alice")
	h.clock.Advance(h.cfg.OfflineTimeout())
	h.tick(1)
	if !p.Offline || v.State != entity.Returning || v.TargetRes != "" {
		t.Fatalf("harvester not recalled: %+v", v)
	}
	if r.Amount != 1000-v.Carrying {
		t.Fatalf("amount = %v carrying = %v", r.Amount, v.Carrying)
	}
}

func TestOffline_返航中的载具也清除目标(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	x, y := b.X+300, b.Y
	r := h.addResource(entity.Ore, x, y, 1000)
	v := h.addVehicle(t, "alice", "scout", x, y)
	v.Carrying, v.CarryType = v.Capacity, entity.Ore
	v.State = entity.Returning
	v.TargetRes = r.ID
	v.PreferType = entity.Ore

	h.sim.Disconnect("alice")
	h.clock.Advance(h.cfg.OfflineTimeout())
	h.tick(1)
	if !p.Offline || v.State != entity.Returning || v.TargetRes != "" || v.PreferType != "" {
		t.Fatalf("returning vehicle kept its target: %+v", v)
	}

	for i := 0; i < 200 && !(v.State == entity.Idle && v.Carrying == 0); i++ {
		h.tick(1)
	}
	if v.State != entity.Idle || v.Carrying != 0 {
		t.Fatalf("vehicle not unloaded: %+v", v)
	}
	// 卸完后停在基地，不再驶回资源点
	h.tick(5)
	if d := entity.Dist(v.X, v.Y, b.X, b.Y); d >= h.cfg.DockRadius {
		t.Fatalf("vehicle left base after unloading: dist=%v", d)
	}
	if r.Amount != 1000 {
		t.Fatalf("resource touched: %v", r.Amount)
	}
}
