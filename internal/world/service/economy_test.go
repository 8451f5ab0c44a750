package service

import (
	"errors"
	"testing"
	"time"

	"TileArmy/internal/world/entity"
)

func TestSpawnVehicle_校验顺序(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	_, other := h.join(t, "bob")

	cases := []struct {
		name   string
		player string
		base   string
		vType  string
		want   error
	}{
		{"玩家不存在", "carol", b.ID, "scout", ErrPlayerNotFound},
		{"基地不存在", "alice", "nope", "scout", ErrBaseNotFound},
		{"不是自己的基地", "alice", other.ID, "scout", ErrNotBaseOwner},
		{"未知类型", "alice", b.ID, "ufo", ErrUnknownVehicleType},
		{"未解锁", "alice", b.ID, "hauler", ErrVehicleLocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.sim.SpawnVehicle(tc.player, tc.base, tc.vType); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if p.Ore != h.cfg.StartOre {
		t.Fatalf("rejected spawns must not charge: ore=%v", p.Ore)
	}

	p.Ore = 100
	if _, err := h.sim.SpawnVehicle("alice", b.ID, "scout"); !errors.Is(err, ErrNotEnoughOre) {
		t.Fatalf("expected ErrNotEnoughOre, got %v", err)
	}
}

func TestSpawnVehicle_排队并按时出厂(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")

	msg, err := h.sim.SpawnVehicle("alice", b.ID, "scout")
	if err != nil {
		t.Fatalf("SpawnVehicle: %v", err)
	}
	if msg != "scout queued (-500 ore)" {
		t.Fatalf("msg = %q", msg)
	}
	if p.Ore != h.cfg.StartOre-500 || len(b.Queue) != 1 {
		t.Fatalf("ore=%v queue=%v", p.Ore, b.Queue)
	}
	want := h.clock.Now().Add(3 * time.Second).UnixMilli()
	if b.Queue[0].ReadyAt != want {
		t.Fatalf("readyAt = %d, want %d", b.Queue[0].ReadyAt, want)
	}

	h.sim.ProcessManufacturing(h.clock.Now().Add(2 * time.Second))
	if len(p.Vehicles) != 0 {
		t.Fatalf("built too early")
	}
	h.sim.ProcessManufacturing(h.clock.Now().Add(3 * time.Second))
	if len(p.Vehicles) != 1 || len(b.Queue) != 0 {
		t.Fatalf("vehicles=%v queue=%v", p.Vehicles, b.Queue)
	}
	v, _ := h.sim.World().Vehicle(p.Vehicles[0])
	if v.X != b.X+h.cfg.TileSize || v.Y != b.Y || v.State != entity.Idle || v.Type != "scout" {
		t.Fatalf("vehicle = %+v", v)
	}
	if v.UnloadTime != 500 {
		t.Fatalf("scout unload time = %d", v.UnloadTime)
	}
}

func TestProcessManufacturing_只取到期订单(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	now := h.clock.Now().UnixMilli()
	b.Queue = []entity.BuildOrder{
		{VType: "scout", ReadyAt: now + 5000},
		{VType: "scout", ReadyAt: now},
		{VType: "basic", ReadyAt: now - 10},
	}
	h.sim.ProcessManufacturing(h.clock.Now())
	if len(p.Vehicles) != 2 {
		t.Fatalf("vehicles = %d, want 2", len(p.Vehicles))
	}
	if len(b.Queue) != 1 || b.Queue[0].ReadyAt != now+5000 {
		t.Fatalf("queue = %+v", b.Queue)
	}
}

func TestUnlock_等级累积(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	p.Ore = 1_000_000

	if _, err := h.sim.SpawnVehicle("alice", b.ID, "heavyTank"); !errors.Is(err, ErrVehicleLocked) {
		t.Fatalf("heavyTank at level 1: %v", err)
	}
	b.Level = 4
	for _, vt := range []string{"scout", "hauler", "basic", "transport", "heavyTank"} {
		if _, err := h.sim.SpawnVehicle("alice", b.ID, vt); err != nil {
			t.Fatalf("%s at level 4: %v", vt, err)
		}
	}
}

func TestUpgradeBase(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")

	if _, err := h.sim.UpgradeBase("alice", b.ID); !errors.Is(err, ErrNotEnoughMaterials) {
		t.Fatalf("expected ErrNotEnoughMaterials, got %v", err)
	}

	p.Lumber, p.Stone = 200, 150
	msg, err := h.sim.UpgradeBase("alice", b.ID)
	if err != nil {
		t.Fatalf("UpgradeBase: %v", err)
	}
	if msg != "Base upgraded to level 2" {
		t.Fatalf("msg = %q", msg)
	}
	if b.Level != 2 || b.HP != h.cfg.BaseHP+100 || b.Damage != h.cfg.BaseDamage+5 {
		t.Fatalf("base = %+v", b)
	}
	if p.Lumber != 0 || p.Stone != 0 {
		t.Fatalf("materials not spent: lumber=%v stone=%v", p.Lumber, p.Stone)
	}

	// 2 级升 3 级花费翻倍
	p.Lumber, p.Stone = 399, 300
	if _, err := h.sim.UpgradeBase("alice", b.ID); !errors.Is(err, ErrNotEnoughMaterials) {
		t.Fatalf("expected ErrNotEnoughMaterials, got %v", err)
	}
}
