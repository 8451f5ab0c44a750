package delta

import (
	"TileArmy/internal/world/entity"
)

// nullable 把空字符串编码为 JSON null（中立基地的 owner、空货物类型等）。
func nullable[T ~string](s T) any {
	if s == "" {
		return nil
	}
	return string(s)
}

func optional[T any, V ~string](name string, get func(T) V) field[T] {
	f := scalar(name, get)
	f.value = func(v T) any { return nullable(get(v)) }
	return f
}

var BaseKind = Kind[BaseRec]{
	name: "base",
	groups: []group[BaseRec]{
		fields(
			scalar("x", func(b BaseRec) float64 { return b.X }),
			scalar("y", func(b BaseRec) float64 { return b.Y }),
			optional("owner", func(b BaseRec) string { return b.Owner }),
			scalar("hp", func(b BaseRec) float64 { return b.HP }),
			scalar("damage", func(b BaseRec) float64 { return b.Damage }),
			scalar("rof", func(b BaseRec) float64 { return b.ROF }),
			scalar("level", func(b BaseRec) int { return b.Level }),
			list("queue", func(b BaseRec) []Order { return b.Queue }),
		),
	},
}

var ResourceKind = Kind[ResourceRec]{
	name: "resource",
	groups: []group[ResourceRec]{
		fields(
			scalar("type", func(r ResourceRec) entity.ResourceType { return r.Type }),
			scalar("x", func(r ResourceRec) float64 { return r.X }),
			scalar("y", func(r ResourceRec) float64 { return r.Y }),
			scalar("amount", func(r ResourceRec) float64 { return r.Amount }),
		),
	},
}

// PlayerKind 分三组比较：元数据、货币与能量、载具列表。
var PlayerKind = Kind[PlayerRec]{
	name: "player",
	groups: []group[PlayerRec]{
		fields(
			scalar("color", func(p PlayerRec) string { return p.Color }),
			list("bases", func(p PlayerRec) []string { return p.Bases }),
			scalar("offline", func(p PlayerRec) bool { return p.Offline }),
		),
		fields(
			scalar("ore", func(p PlayerRec) float64 { return p.Ore }),
			scalar("lumber", func(p PlayerRec) float64 { return p.Lumber }),
			scalar("stone", func(p PlayerRec) float64 { return p.Stone }),
			scalar("energy", func(p PlayerRec) float64 { return p.Energy }),
		),
		fields(
			list("vehicles", func(p PlayerRec) []string { return p.Vehicles }),
		),
	},
}

var (
	vx    = scalar("vx", func(v VehicleRec) float64 { return v.VX })
	vy    = scalar("vy", func(v VehicleRec) float64 { return v.VY })
	fx    = scalar("fx", func(v VehicleRec) float64 { return v.TX })
	fy    = scalar("fy", func(v VehicleRec) float64 { return v.TY })
	vxPos = scalar("x", func(v VehicleRec) float64 { return v.X })
	vyPos = scalar("y", func(v VehicleRec) float64 { return v.Y })
)

// VehicleKind 的运动字段成组：x/y/tx/ty 任一变化都输出 x,y,vx,vy,fx,fy，
// 客户端据此在两次广播之间外推位置。
var VehicleKind = Kind[VehicleRec]{
	name: "vehicle",
	groups: []group[VehicleRec]{
		fields(
			scalar("owner", func(v VehicleRec) string { return v.Owner }),
			scalar("type", func(v VehicleRec) string { return v.Type }),
			scalar("hp", func(v VehicleRec) float64 { return v.HP }),
			scalar("capacity", func(v VehicleRec) float64 { return v.Capacity }),
			scalar("carrying", func(v VehicleRec) float64 { return v.Carrying }),
			optional("carryType", func(v VehicleRec) entity.ResourceType { return v.CarryType }),
			scalar("state", func(v VehicleRec) entity.VehicleState { return v.State }),
			optional("targetRes", func(v VehicleRec) string { return v.TargetRes }),
		),
		atomic(
			[]field[VehicleRec]{
				vxPos, vyPos,
				scalar("tx", func(v VehicleRec) float64 { return v.TX }),
				scalar("ty", func(v VehicleRec) float64 { return v.TY }),
			},
			vxPos, vyPos, vx, vy, fx, fy,
		),
	},
}

// Diff 计算两份快照之间的变化记录，顺序为 基地、资源、玩家、载具。
// 被移除的玩家会连带输出其全部载具的移除记录，且同一载具只输出一次。
func Diff(prev, cur Snapshot) []Record {
	var out []Record
	out = BaseKind.Diff(prev.Bases, cur.Bases, nil, out)
	out = ResourceKind.Diff(prev.Resources, cur.Resources, nil, out)
	out = PlayerKind.Diff(prev.Players, cur.Players, nil, out)

	cascaded := map[string]bool{}
	for _, pid := range prev.Players.Order {
		if _, ok := cur.Players.Rows[pid]; ok {
			continue
		}
		for _, vid := range prev.Players.Rows[pid].Vehicles {
			if cascaded[vid] {
				continue
			}
			if _, alive := cur.Vehicles.Rows[vid]; alive {
				continue
			}
			cascaded[vid] = true
			out = append(out, VehicleKind.Removed(vid))
		}
	}
	return VehicleKind.Diff(prev.Vehicles, cur.Vehicles, cascaded, out)
}
