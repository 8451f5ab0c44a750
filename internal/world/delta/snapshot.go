package delta

import (
	"slices"

	"TileArmy/internal/world/entity"
)

type Order struct {
	VType   string `json:"vType"`
	ReadyAt int64  `json:"readyAt"`
}

type BaseRec struct {
	X, Y   float64
	Owner  string
	HP     float64
	Damage float64
	ROF    float64
	Level  int
	Queue  []Order
}

type ResourceRec struct {
	Type   entity.ResourceType
	X, Y   float64
	Amount float64
}

type PlayerRec struct {
	Color    string
	Bases    []string
	Offline  bool
	Ore      float64
	Lumber   float64
	Stone    float64
	Energy   float64
	Vehicles []string
}

type VehicleRec struct {
	Owner     string
	Type      string
	X, Y      float64
	TX, TY    float64
	VX, VY    float64
	HP        float64
	Capacity  float64
	Carrying  float64
	CarryType entity.ResourceType
	State     entity.VehicleState
	TargetRes string
}

// Snapshot 是某一时刻世界状态的深拷贝。
type Snapshot struct {
	Bases     Table[BaseRec]
	Resources Table[ResourceRec]
	Players   Table[PlayerRec]
	Vehicles  Table[VehicleRec]
}

func EmptySnapshot() Snapshot {
	return Snapshot{
		Bases:     newTable[BaseRec](0),
		Resources: newTable[ResourceRec](0),
		Players:   newTable[PlayerRec](0),
		Vehicles:  newTable[VehicleRec](0),
	}
}

// arriveEpsilon 以内视为已到达目标，速度为 0。
const arriveEpsilon = 0.5

// Capture 对世界做一次深拷贝。
func Capture(w *entity.World) Snapshot {
	bases := w.Bases()
	resources := w.Resources()
	players := w.Players()
	vehicles := w.Vehicles()

	s := Snapshot{
		Bases:     newTable[BaseRec](len(bases)),
		Resources: newTable[ResourceRec](len(resources)),
		Players:   newTable[PlayerRec](len(players)),
		Vehicles:  newTable[VehicleRec](len(vehicles)),
	}
	for _, b := range bases {
		queue := make([]Order, 0, len(b.Queue))
		for _, o := range b.Queue {
			queue = append(queue, Order{VType: o.VType, ReadyAt: o.ReadyAt})
		}
		s.Bases.put(b.ID, BaseRec{
			X: b.X, Y: b.Y, Owner: b.Owner,
			HP: b.HP, Damage: b.Damage, ROF: b.ROF, Level: b.Level,
			Queue: queue,
		})
	}
	for _, r := range resources {
		s.Resources.put(r.ID, ResourceRec{Type: r.Type, X: r.X, Y: r.Y, Amount: r.Amount})
	}
	for _, p := range players {
		s.Players.put(p.ID, PlayerRec{
			Color:    p.Color,
			Bases:    slices.Clone(p.Bases),
			Offline:  p.Offline,
			Ore:      p.Ore,
			Lumber:   p.Lumber,
			Stone:    p.Stone,
			Energy:   p.Energy,
			Vehicles: slices.Clone(p.Vehicles),
		})
	}
	for _, v := range vehicles {
		vx, vy := velocity(v)
		s.Vehicles.put(v.ID, VehicleRec{
			Owner: v.Owner, Type: v.Type,
			X: v.X, Y: v.Y, TX: v.TX, TY: v.TY, VX: vx, VY: vy,
			HP: v.HP, Capacity: v.Capacity,
			Carrying: v.Carrying, CarryType: v.CarryType,
			State: v.State, TargetRes: v.TargetRes,
		})
	}
	return s
}

// velocity 返回朝目标方向、大小为 speed 的速度向量（px/s）。
func velocity(v *entity.Vehicle) (float64, float64) {
	d := entity.Dist(v.X, v.Y, v.TX, v.TY)
	if d <= arriveEpsilon || v.Speed <= 0 {
		return 0, 0
	}
	return (v.TX - v.X) / d * v.Speed, (v.TY - v.Y) / d * v.Speed
}

// Clone 深拷贝快照。
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Bases:     cloneTable(s.Bases, func(b BaseRec) BaseRec { b.Queue = slices.Clone(b.Queue); return b }),
		Resources: cloneTable(s.Resources, func(r ResourceRec) ResourceRec { return r }),
		Players: cloneTable(s.Players, func(p PlayerRec) PlayerRec {
			p.Bases = slices.Clone(p.Bases)
			p.Vehicles = slices.Clone(p.Vehicles)
			return p
		}),
		Vehicles: cloneTable(s.Vehicles, func(v VehicleRec) VehicleRec { return v }),
	}
}

func cloneTable[T any](t Table[T], cp func(T) T) Table[T] {
	out := newTable[T](len(t.Order))
	for _, id := range t.Order {
		out.put(id, cp(t.Rows[id]))
	}
	return out
}
