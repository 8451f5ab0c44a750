package service

import (
	"testing"

	"TileArmy/internal/world/entity"
)

func TestCapture_归零后易主并重置(t *testing.T) {
	h := newHarness(t)
	alice, target := h.join(t, "alice")
	bob, _ := h.join(t, "bob")
	target.Level, target.HP = 3, 0.1
	target.Queue = []entity.BuildOrder{{VType: "scout", ReadyAt: h.clock.Now().UnixMilli() + 60_000}}
	h.addVehicle(t, "bob", "heavyTank", target.X+50, target.Y)

	h.tick(1)
	if target.Owner != "bob" {
		t.Fatalf("owner = %q, want bob", target.Owner)
	}
	if target.Level != 1 || target.HP != h.cfg.BaseHP || target.Damage != h.cfg.BaseDamage {
		t.Fatalf("captured base not reset: %+v", target)
	}
	if len(target.Queue) != 0 || target.LastAttacker != "" {
		t.Fatalf("queue=%v lastAttacker=%q", target.Queue, target.LastAttacker)
	}
	if alice.OwnsBase(target.ID) || !bob.OwnsBase(target.ID) {
		t.Fatalf("base lists not updated: alice=%v bob=%v", alice.Bases, bob.Bases)
	}
}

func TestCombat_中立基地互相伤害(t *testing.T) {
	h := newHarness(t)
	h.join(t, "alice")
	neutral := h.sim.newNeutralBase(2000, 2000)
	h.sim.World().AddBase(neutral)
	v := h.addVehicle(t, "alice", "scout", 2000+100, 2000)

	h.tick(1)
	dt := h.cfg.DT()
	wantBase := h.cfg.NeutralBaseHP - v.Damage*v.ROF*dt
	if neutral.HP != wantBase || neutral.LastAttacker != "alice" {
		t.Fatalf("base hp=%v lastAttacker=%q", neutral.HP, neutral.LastAttacker)
	}
	wantVehicle := 60 - h.cfg.NeutralBaseDamage*h.cfg.NeutralBaseROF*dt
	if v.HP != wantVehicle {
		t.Fatalf("vehicle hp = %v, want %v", v.HP, wantVehicle)
	}
}

func TestCombat_无伤害载具不记攻击者(t *testing.T) {
	h := newHarness(t)
	h.join(t, "alice")
	neutral := h.sim.newNeutralBase(2000, 2000)
	h.sim.World().AddBase(neutral)
	h.addVehicle(t, "alice", "hauler", 2000+100, 2000)

	h.tick(1)
	if neutral.LastAttacker != "" || neutral.HP != h.cfg.NeutralBaseHP {
		t.Fatalf("hauler must not attack: %+v", neutral)
	}
}

func TestCombat_射程外不交战(t *testing.T) {
	h := newHarness(t)
	h.join(t, "alice")
	neutral := h.sim.newNeutralBase(2000, 2000)
	h.sim.World().AddBase(neutral)
	v := h.addVehicle(t, "alice", "scout", 2000+h.cfg.BaseAttackRange, 2000)

	h.tick(1)
	if neutral.HP != h.cfg.NeutralBaseHP || v.HP != 60 {
		t.Fatalf("out of range combat: base=%v vehicle=%v", neutral.HP, v.HP)
	}
}

func TestCombat_载具血量归零被移除(t *testing.T) {
	h := newHarness(t)
	p, _ := h.join(t, "alice")
	neutral := h.sim.newNeutralBase(2000, 2000)
	h.sim.World().AddBase(neutral)
	v := h.addVehicle(t, "alice", "hauler", 2000+10, 2000)
	v.HP = 0.1

	h.tick(1)
	if _, ok := h.sim.World().Vehicle(v.ID); ok {
		t.Fatalf("dead vehicle still in arena")
	}
	if len(p.Vehicles) != 0 {
		t.Fatalf("owner list not updated: %v", p.Vehicles)
	}
}

func TestCapture_攻击者已移除则不易主(t *testing.T) {
	h := newHarness(t)
	h.join(t, "alice")
	neutral := h.sim.newNeutralBase(2000, 2000)
	neutral.HP = 0
	neutral.LastAttacker = "ghost"
	h.sim.World().AddBase(neutral)

	h.tick(1)
	if !neutral.Neutral() || neutral.LastAttacker != "" {
		t.Fatalf("base = %+v", neutral)
	}
}
