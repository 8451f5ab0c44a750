package entity

import (
	"slices"
)

// table 是按插入顺序遍历的 id 索引集合，保证每个 tick 的扫描顺序确定。
type table[T any] struct {
	rows  map[string]*T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]*T)}
}

func (t *table[T]) put(id string, v *T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id string) (*T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}

func (t *table[T]) list() []*T {
	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// World 是整局游戏的内存状态，只允许 world actor 单线程读写。
type World struct {
	players   table[Player]
	bases     table[Base]
	vehicles  table[Vehicle]
	resources table[Resource]
}

func NewWorld() *World {
	return &World{
		players:   newTable[Player](),
		bases:     newTable[Base](),
		vehicles:  newTable[Vehicle](),
		resources: newTable[Resource](),
	}
}

func (w *World) AddPlayer(p *Player) { w.players.put(p.ID, p) }

func (w *World) Player(id string) (*Player, bool) { return w.players.get(id) }

func (w *World) Players() []*Player { return w.players.list() }

// RemovePlayer 删除玩家及其全部载具，并把其基地置为中立（Owner 清空，由调用方重置属性）。
// 返回被置为中立的基地。
func (w *World) RemovePlayer(id string) []*Base {
	p, ok := w.players.get(id)
	if !ok {
		return nil
	}
	for _, vid := range slices.Clone(p.Vehicles) {
		w.vehicles.remove(vid)
	}
	var freed []*Base
	for _, bid := range p.Bases {
		if b, ok := w.bases.get(bid); ok && b.Owner == id {
			b.Owner = ""
			freed = append(freed, b)
		}
	}
	w.players.remove(id)
	return freed
}

// AddBase 加入基地；有 Owner 时同步写入玩家的基地列表。
func (w *World) AddBase(b *Base) {
	w.bases.put(b.ID, b)
	if p, ok := w.players.get(b.Owner); ok && !p.OwnsBase(b.ID) {
		p.Bases = append(p.Bases, b.ID)
	}
}

func (w *World) Base(id string) (*Base, bool) { return w.bases.get(id) }

func (w *World) Bases() []*Base { return w.bases.list() }

// TransferBase 修改基地归属，同时维护新旧主人的基地列表。
func (w *World) TransferBase(b *Base, newOwner string) {
	if prev, ok := w.players.get(b.Owner); ok {
		if i := slices.Index(prev.Bases, b.ID); i >= 0 {
			prev.Bases = slices.Delete(prev.Bases, i, i+1)
		}
	}
	b.Owner = newOwner
	if next, ok := w.players.get(newOwner); ok && !next.OwnsBase(b.ID) {
		next.Bases = append(next.Bases, b.ID)
	}
}

// NeutralBases 统计中立基地数量。
func (w *World) NeutralBases() int {
	n := 0
	for _, b := range w.bases.list() {
		if b.Neutral() {
			n++
		}
	}
	return n
}

// AddVehicle 加入 arena 并追加到所属玩家的载具列表；玩家不存在时返回 false。
func (w *World) AddVehicle(v *Vehicle) bool {
	p, ok := w.players.get(v.Owner)
	if !ok {
		return false
	}
	w.vehicles.put(v.ID, v)
	p.Vehicles = append(p.Vehicles, v.ID)
	return true
}

func (w *World) Vehicle(id string) (*Vehicle, bool) { return w.vehicles.get(id) }

func (w *World) Vehicles() []*Vehicle { return w.vehicles.list() }

// RemoveVehicle 从 arena 与所属玩家的列表中移除。
func (w *World) RemoveVehicle(id string) {
	v, ok := w.vehicles.get(id)
	if !ok {
		return
	}
	w.vehicles.remove(id)
	if p, ok := w.players.get(v.Owner); ok {
		if i := slices.Index(p.Vehicles, id); i >= 0 {
			p.Vehicles = slices.Delete(p.Vehicles, i, i+1)
		}
	}
}

// PlayerVehicles 按玩家列表顺序返回其载具。
func (w *World) PlayerVehicles(p *Player) []*Vehicle {
	out := make([]*Vehicle, 0, len(p.Vehicles))
	for _, id := range p.Vehicles {
		if v, ok := w.vehicles.get(id); ok {
			out = append(out, v)
		}
	}
	return out
}

func (w *World) AddResource(r *Resource) { w.resources.put(r.ID, r) }

func (w *World) Resource(id string) (*Resource, bool) { return w.resources.get(id) }

func (w *World) Resources() []*Resource { return w.resources.list() }
