package entity

import (
	"math"
	"time"
)

type ResourceType string

const (
	Ore    ResourceType = "ore"
	Lumber ResourceType = "lumber"
	Stone  ResourceType = "stone"
)

var ResourceTypes = []ResourceType{Ore, Lumber, Stone}

type VehicleState string

const (
	Idle       VehicleState = "idle"
	Harvesting VehicleState = "harvesting"
	Returning  VehicleState = "returning"
	Unloading  VehicleState = "unloading"
)

// Player 以客户端提供的名字为 id，断线后保留，只有显式移除才删除。
type Player struct {
	ID       string
	Bases    []string
	Vehicles []string
	Color    string
	Ore      float64
	Lumber   float64
	Stone    float64
	Energy   float64
	// DisconnectedAt 为 nil 表示在线
	DisconnectedAt *time.Time
	Offline        bool
}

// Currency 返回 t 对应的货币字段指针。
func (p *Player) Currency(t ResourceType) *float64 {
	switch t {
	case Ore:
		return &p.Ore
	case Lumber:
		return &p.Lumber
	case Stone:
		return &p.Stone
	}
	return nil
}

func (p *Player) OwnsBase(baseID string) bool {
	for _, id := range p.Bases {
		if id == baseID {
			return true
		}
	}
	return false
}

type BuildOrder struct {
	VType string
	// ReadyAt 毫秒时间戳
	ReadyAt int64
}

// Base 创建后位置不变；Owner 为空表示中立。
type Base struct {
	ID           string
	X, Y         float64
	Owner        string
	HP           float64
	Damage       float64
	ROF          float64
	Level        int
	Queue        []BuildOrder
	LastAttacker string
}

func (b *Base) Neutral() bool { return b.Owner == "" }

// Vehicle 存在全局 arena 中，Owner 指向所属玩家。
type Vehicle struct {
	ID          string
	Owner       string
	Type        string
	Speed       float64
	Capacity    float64
	EnergyCost  float64
	HP          float64
	Damage      float64
	ROF         float64
	HarvestRate float64
	// UnloadTime 毫秒，0 为即时卸货
	UnloadTime  int
	X, Y        float64
	TX, TY      float64
	Carrying    float64
	CarryType   ResourceType
	State       VehicleState
	TargetRes   string
	TargetBase  string
	UnloadTimer float64
	PreferType  ResourceType
}

// Free 返回剩余载量。
func (v *Vehicle) Free() float64 {
	return v.Capacity - v.Carrying
}

// ClearCargo 清空货物，维持 Carrying==0 ⇔ CarryType=="" 。
func (v *Vehicle) ClearCargo() {
	v.Carrying = 0
	v.CarryType = ""
}

type Resource struct {
	ID     string
	Type   ResourceType
	X, Y   float64
	Amount float64
}

func (r *Resource) Depleted() bool { return r.Amount <= 0 }

func Dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}
