package service

import (
	"errors"
	"math"
	"testing"

	"TileArmy/internal/world/entity"
)

func TestUnload_按卸货时长计时(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	v := h.addVehicle(t, "alice", "basic", b.X, b.Y)
	v.Carrying, v.CarryType, v.State = 50, entity.Ore, entity.Returning
	startOre := p.Ore

	// 到站的 tick 设定计时，下一 tick 才开始递减
	ticks := int(math.Ceil(float64(h.cfg.UnloadTimeMS)/float64(h.cfg.TickMS))) + 1
	h.tick(ticks - 1)
	if v.Carrying != 50 || v.State != entity.Unloading {
		t.Fatalf("unloaded too early: carrying=%v state=%v", v.Carrying, v.State)
	}
	h.tick(1)
	if v.Carrying != 0 || v.CarryType != "" || v.State != entity.Idle {
		t.Fatalf("after unload: %+v", v)
	}
	if p.Ore != startOre+50 {
		t.Fatalf("ore = %v, want %v", p.Ore, startOre+50)
	}
}

func TestUnload_零时长到站即卸(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	v := h.addVehicle(t, "alice", "transport", b.X, b.Y)
	v.Carrying, v.CarryType, v.State = 80, entity.Stone, entity.Returning

	h.tick(1)
	if v.Carrying != 0 || v.State != entity.Idle || p.Stone != 80 {
		t.Fatalf("transport should flush on arrival: %+v stone=%v", v, p.Stone)
	}
}

func TestReturning_无基地原地待命(t *testing.T) {
	h := newHarness(t)
	p, b := h.join(t, "alice")
	h.sim.World().TransferBase(b, "")
	v := h.addVehicle(t, "alice", "scout", 100, 100)
	v.Carrying, v.CarryType, v.State = 10, entity.Ore, entity.Returning

	h.tick(3)
	if v.State != entity.Returning || v.X != 100 || v.Y != 100 || v.Carrying != 10 {
		t.Fatalf("vehicle should hold: %+v", v)
	}
	if len(p.Bases) != 0 {
		t.Fatalf("bases = %v", p.Bases)
	}
}

func TestHarvest_装满后返航(t *testing.T) {
	h := newHarness(t)
	_, b := h.join(t, "alice")
	// 远离基地射程
	x, y := b.X+600, b.Y
	r := h.addResource(entity.Lumber, x, y, 1000)
	v := h.addVehicle(t, "alice", "scout", x, y)

	h.tick(1)
	if v.State != entity.Harvesting || v.TargetRes != r.ID {
		t.Fatalf("expected auto target and harvest: %+v", v)
	}
	perTick := v.HarvestRate * h.cfg.DT()
	if v.Carrying != perTick || v.CarryType != entity.Lumber || r.Amount != 1000-perTick {
		t.Fatalf("carrying=%v type=%v amount=%v", v.Carrying, v.CarryType, r.Amount)
	}

	for i := 0; i < 40 && v.State == entity.Harvesting; i++ {
		h.tick(1)
		if v.Carrying > v.Capacity {
			t.Fatalf("carrying %v exceeds capacity %v", v.Carrying, v.Capacity)
		}
	}
	if v.State != entity.Returning || v.Carrying != v.Capacity {
		t.Fatalf("expected full and returning: %+v", v)
	}
	if v.TargetRes != r.ID {
		t.Fatalf("target should be kept for the next trip")
	}
}

func TestHarvest_采空后放弃目标(t *testing.T) {
	h := newHarness(t)
	_, b := h.join(t, "alice")
	x, y := b.X+600, b.Y
	r := h.addResource(entity.Ore, x, y, 1)
	v := h.addVehicle(t, "alice", "scout", x, y)

	h.tick(1)
	if !r.Depleted() || v.Carrying != 1 {
		t.Fatalf("amount=%v carrying=%v", r.Amount, v.Carrying)
	}
	if v.State != entity.Returning || v.TargetRes != "" {
		t.Fatalf("expected returning without target: %+v", v)
	}
}

func TestAutoTarget_带货只找同类(t *testing.T) {
	h := newHarness(t)
	_, b := h.join(t, "alice")
	x, y := b.X+600, b.Y
	h.addResource(entity.Ore, x+10, y, 500)
	stone := h.addResource(entity.Stone, x+100, y, 500)
	v := h.addVehicle(t, "alice", "scout", x, y)
	v.Carrying, v.CarryType = 5, entity.Stone

	h.tick(1)
	if v.TargetRes != stone.ID {
		t.Fatalf("target = %q, want %q", v.TargetRes, stone.ID)
	}
}

func TestAutoTarget_超出半径不选(t *testing.T) {
	h := newHarness(t)
	_, b := h.join(t, "alice")
	x, y := b.X+600, b.Y
	h.addResource(entity.Ore, x, y+h.cfg.AutoTargetRadius+50, 500)
	v := h.addVehicle(t, "alice", "scout", x, y)

	h.tick(1)
	if v.TargetRes != "" || v.State != entity.Idle {
		t.Fatalf("should stay idle: %+v", v)
	}
}

func TestClaims_同一资源只允许一个载具(t *testing.T) {
	h := newHarness(t)
	_, b := h.join(t, "alice")
	x, y := b.X+600, b.Y
	r := h.addResource(entity.Ore, x, y, 500)
	first := h.addVehicle(t, "alice", "scout", x, y+200)
	second := h.addVehicle(t, "alice", "scout", x, y-200)
	first.TargetRes, first.TX, first.TY = r.ID, r.X, r.Y
	second.TargetRes, second.TX, second.TY = r.ID, r.X, r.Y

	h.tick(1)
	if first.TargetRes != r.ID {
		t.Fatalf("first claim lost: %+v", first)
	}
	if second.TargetRes == r.ID {
		t.Fatalf("second vehicle still holds the claim")
	}
}

func TestClaims_返航中的后来者保留状态(t *testing.T) {
	h := newHarness(t)
	_, b := h.join(t, "alice")
	x, y := b.X+600, b.Y
	r := h.addResource(entity.Ore, x, y, 500)
	first := h.addVehicle(t, "alice", "scout", x, y+200)
	home := h.addVehicle(t, "alice", "scout", x, y-200)
	first.TargetRes, first.TX, first.TY = r.ID, r.X, r.Y
	home.TargetRes, home.State = r.ID, entity.Returning
	home.Carrying, home.CarryType = home.Capacity, entity.Ore

	h.tick(1)
	if home.TargetRes != "" {
		t.Fatalf("collider kept the target: %+v", home)
	}
	if home.State != entity.Returning || home.Carrying != home.Capacity {
		t.Fatalf("returning collider should keep heading home with cargo: %+v", home)
	}
}

func TestMoveVehicle_夹到地图内并清除目标(t *testing.T) {
	h := newHarness(t)
	h.join(t, "alice")
	h.join(t, "bob")
	v := h.addVehicle(t, "alice", "scout", 100, 100)
	v.TargetRes, v.PreferType, v.State = "r1", entity.Ore, entity.Harvesting

	if _, err := h.sim.Apply("alice", MoveVehicle{VehicleID: v.ID, X: -50, Y: h.cfg.MapH + 999}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if v.TX != 0 || v.TY != h.cfg.MapH {
		t.Fatalf("target = (%v,%v)", v.TX, v.TY)
	}
	if v.TargetRes != "" || v.PreferType != "" || v.State != entity.Idle {
		t.Fatalf("move must clear targets: %+v", v)
	}
	if _, err := h.sim.Apply("bob", MoveVehicle{VehicleID: v.ID}); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("foreign move: %v", err)
	}
}

func TestMove_能量按距离消耗(t *testing.T) {
	h := newHarness(t)
	p, _ := h.join(t, "alice")
	v := h.addVehicle(t, "alice", "scout", 100, 100)
	v.TX, v.TY = 1000, 100
	p.Energy = 50

	h.tick(1)
	step := v.Speed * h.cfg.DT()
	if math.Abs(v.X-(100+step)) > 1e-9 {
		t.Fatalf("x = %v", v.X)
	}
	want := 50 - step*v.EnergyCost + h.cfg.EnergyRecharge*h.cfg.DT()
	if math.Abs(p.Energy-want) > 1e-9 {
		t.Fatalf("energy = %v, want %v", p.Energy, want)
	}

	h.tick(200)
	if p.Energy < 0 || p.Energy > h.cfg.EnergyMax {
		t.Fatalf("energy out of range: %v", p.Energy)
	}
}

func TestHarvestResource_校验(t *testing.T) {
	h := newHarness(t)
	h.join(t, "alice")
	r := h.addResource(entity.Ore, 500, 500, 100)
	empty := h.addResource(entity.Ore, 600, 600, 0)
	tank := h.addVehicle(t, "alice", "heavyTank", 100, 100)
	scout := h.addVehicle(t, "alice", "scout", 100, 100)

	if err := h.sim.HarvestResource("alice", tank.ID, r.ID); !errors.Is(err, ErrCannotHarvest) {
		t.Fatalf("tank: %v", err)
	}
	if err := h.sim.HarvestResource("alice", scout.ID, "missing"); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("missing: %v", err)
	}
	if err := h.sim.HarvestResource("alice", scout.ID, empty.ID); !errors.Is(err, ErrResourceDepleted) {
		t.Fatalf("depleted: %v", err)
	}
	scout.Carrying, scout.CarryType = 3, entity.Lumber
	if err := h.sim.HarvestResource("alice", scout.ID, r.ID); !errors.Is(err, ErrCargoMismatch) {
		t.Fatalf("mismatch: %v", err)
	}
	scout.ClearCargo()
	if err := h.sim.HarvestResource("alice", scout.ID, r.ID); err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if scout.TargetRes != r.ID || scout.PreferType != entity.Ore || scout.TX != r.X {
		t.Fatalf("scout = %+v", scout)
	}
}
