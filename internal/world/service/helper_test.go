package service

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"TileArmy/internal/shared/gameconfig"
	"TileArmy/internal/world/entity"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	sim   *Simulation
	clock *fakeClock
	cfg   *gameconfig.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := gameconfig.Default()
	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	n := 0
	sim := New(cfg,
		WithClock(clock.Now),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id%d", n)
		}),
	)
	return &harness{sim: sim, clock: clock, cfg: cfg}
}

// tick 推进 n 个 tick，时钟同步前进。
func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.clock.Advance(h.cfg.Tick())
		h.sim.Tick()
	}
}

func (h *harness) join(t *testing.T, name string) (*entity.Player, *entity.Base) {
	t.Helper()
	p, _, err := h.sim.Join(name)
	if err != nil {
		t.Fatalf("join %s: %v", name, err)
	}
	b, ok := h.sim.World().Base(p.Bases[0])
	if !ok {
		t.Fatalf("home base missing for %s", name)
	}
	return p, b
}

// addVehicle 直接按图鉴在 (x,y) 放一辆载具。
func (h *harness) addVehicle(t *testing.T, owner, vType string, x, y float64) *entity.Vehicle {
	t.Helper()
	vt, ok := h.cfg.VehicleType(vType)
	if !ok {
		t.Fatalf("unknown vehicle type %s", vType)
	}
	v := &entity.Vehicle{
		ID:          h.sim.newID(),
		Owner:       owner,
		Type:        vType,
		Speed:       vt.Speed,
		Capacity:    vt.Capacity,
		EnergyCost:  vt.EnergyCost,
		HP:          vt.HP,
		Damage:      vt.Damage,
		ROF:         vt.ROF,
		HarvestRate: vt.HarvestRate,
		UnloadTime:  h.cfg.UnloadTime(vt),
		X:           x,
		Y:           y,
		TX:          x,
		TY:          y,
		State:       entity.Idle,
	}
	if !h.sim.World().AddVehicle(v) {
		t.Fatalf("add vehicle for missing owner %s", owner)
	}
	return v
}

func (h *harness) addResource(typ entity.ResourceType, x, y, amount float64) *entity.Resource {
	r := &entity.Resource{ID: h.sim.newID(), Type: typ, X: x, Y: y, Amount: amount}
	h.sim.World().AddResource(r)
	return r
}
