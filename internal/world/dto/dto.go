package dto

import (
	"TileArmy/internal/shared/gameconfig"
	"TileArmy/internal/world/delta"
	"TileArmy/internal/world/entity"
)

const (
	TypeInit   = "init"
	TypeUpdate = "update"
	TypeNotice = "notice"
)

type Init struct {
	Type  string    `json:"type"`
	ID    string    `json:"id"`
	State InitState `json:"state"`
}

type InitState struct {
	Cfg       gameconfig.Public     `json:"cfg"`
	Resources []Resource            `json:"resources"`
	Players   map[string]PlayerView `json:"players"`
	Bases     []Base                `json:"bases"`
}

type Update struct {
	Type     string         `json:"type"`
	Entities []delta.Record `json:"entities"`
}

type Notice struct {
	Type string `json:"type"`
	OK   bool   `json:"ok"`
	Msg  string `json:"msg"`
}

func NewUpdate(entities []delta.Record) *Update {
	return &Update{Type: TypeUpdate, Entities: entities}
}

func NewNotice(ok bool, msg string) *Notice {
	return &Notice{Type: TypeNotice, OK: ok, Msg: msg}
}

type Order struct {
	VType   string `json:"vType"`
	ReadyAt int64  `json:"readyAt"`
}

type Base struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Owner  *string `json:"owner"`
	HP     float64 `json:"hp"`
	Damage float64 `json:"damage"`
	ROF    float64 `json:"rof"`
	Level  int     `json:"level"`
	Queue  []Order `json:"queue"`
}

type Resource struct {
	ID     string              `json:"id"`
	Type   entity.ResourceType `json:"type"`
	X      float64             `json:"x"`
	Y      float64             `json:"y"`
	Amount float64             `json:"amount"`
}

type Vehicle struct {
	ID        string              `json:"id"`
	Owner     string              `json:"owner"`
	Type      string              `json:"type"`
	X         float64             `json:"x"`
	Y         float64             `json:"y"`
	TX        float64             `json:"tx"`
	TY        float64             `json:"ty"`
	HP        float64             `json:"hp"`
	Capacity  float64             `json:"capacity"`
	Carrying  float64             `json:"carrying"`
	CarryType *string             `json:"carryType"`
	State     entity.VehicleState `json:"state"`
	TargetRes *string             `json:"targetRes"`
}

type PlayerView struct {
	ID       string    `json:"id"`
	Color    string    `json:"color"`
	Bases    []string  `json:"bases"`
	Vehicles []Vehicle `json:"vehicles"`
	Ore      float64   `json:"ore"`
	Lumber   float64   `json:"lumber"`
	Stone    float64   `json:"stone"`
	Energy   float64   `json:"energy"`
	Offline  bool      `json:"offline"`
}

func strPtr[T ~string](s T) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

func FromBase(b *entity.Base) Base {
	queue := make([]Order, 0, len(b.Queue))
	for _, o := range b.Queue {
		queue = append(queue, Order{VType: o.VType, ReadyAt: o.ReadyAt})
	}
	return Base{
		ID: b.ID, X: b.X, Y: b.Y, Owner: strPtr(b.Owner),
		HP: b.HP, Damage: b.Damage, ROF: b.ROF, Level: b.Level,
		Queue: queue,
	}
}

func FromResource(r *entity.Resource) Resource {
	return Resource{ID: r.ID, Type: r.Type, X: r.X, Y: r.Y, Amount: r.Amount}
}

func FromVehicle(v *entity.Vehicle) Vehicle {
	return Vehicle{
		ID: v.ID, Owner: v.Owner, Type: v.Type,
		X: v.X, Y: v.Y, TX: v.TX, TY: v.TY,
		HP: v.HP, Capacity: v.Capacity, Carrying: v.Carrying,
		CarryType: strPtr(v.CarryType), State: v.State, TargetRes: strPtr(v.TargetRes),
	}
}

func FromPlayer(w *entity.World, p *entity.Player) PlayerView {
	vehicles := make([]Vehicle, 0, len(p.Vehicles))
	for _, v := range w.PlayerVehicles(p) {
		vehicles = append(vehicles, FromVehicle(v))
	}
	bases := append([]string{}, p.Bases...)
	return PlayerView{
		ID: p.ID, Color: p.Color, Bases: bases, Vehicles: vehicles,
		Ore: p.Ore, Lumber: p.Lumber, Stone: p.Stone, Energy: p.Energy,
		Offline: p.Offline,
	}
}

// NewInit 构造连接建立时下发的全量状态。
func NewInit(id string, cfg *gameconfig.Config, w *entity.World) *Init {
	st := InitState{
		Cfg:       cfg.Public(),
		Resources: make([]Resource, 0),
		Players:   make(map[string]PlayerView),
		Bases:     make([]Base, 0),
	}
	for _, r := range w.Resources() {
		st.Resources = append(st.Resources, FromResource(r))
	}
	for _, p := range w.Players() {
		st.Players[p.ID] = FromPlayer(w, p)
	}
	for _, b := range w.Bases() {
		st.Bases = append(st.Bases, FromBase(b))
	}
	return &Init{Type: TypeInit, ID: id, State: st}
}
