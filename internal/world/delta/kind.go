package delta

import (
	"slices"
)

// Record 是一条线上实体记录：{kind, id, ...字段}。
type Record map[string]any

const (
	KeyKind    = "kind"
	KeyID      = "id"
	KeyRemoved = "removed"
)

type field[T any] struct {
	name  string
	equal func(a, b T) bool
	value func(T) any
}

// group 是一组一起比较的字段。emit 为空时逐字段输出变化项；
// 非空时组内任一字段变化就整组输出 emit。
type group[T any] struct {
	compare []field[T]
	emit    []field[T]
}

// Kind 描述一种实体的字段级 diff 规则，所有实体共用同一套 diff 逻辑。
type Kind[T any] struct {
	name   string
	groups []group[T]
}

func scalar[T any, V comparable](name string, get func(T) V) field[T] {
	return field[T]{
		name:  name,
		equal: func(a, b T) bool { return get(a) == get(b) },
		value: func(v T) any { return get(v) },
	}
}

func list[T any, V comparable](name string, get func(T) []V) field[T] {
	return field[T]{
		name:  name,
		equal: func(a, b T) bool { return slices.Equal(get(a), get(b)) },
		value: func(v T) any {
			out := get(v)
			if out == nil {
				return []V{}
			}
			return slices.Clone(out)
		},
	}
}

func fields[T any](fs ...field[T]) group[T] {
	return group[T]{compare: fs}
}

func atomic[T any](compare []field[T], emit ...field[T]) group[T] {
	return group[T]{compare: compare, emit: emit}
}

func (k Kind[T]) header(id string) Record {
	return Record{KeyKind: k.name, KeyID: id}
}

// Full 返回新实体的完整记录。
func (k Kind[T]) Full(id string, v T) Record {
	rec := k.header(id)
	for _, g := range k.groups {
		out := g.emit
		if len(out) == 0 {
			out = g.compare
		}
		for _, f := range out {
			rec[f.name] = f.value(v)
		}
	}
	return rec
}

// Changed 返回只含变化字段的记录；没有变化时返回 nil。
func (k Kind[T]) Changed(id string, prev, cur T) Record {
	var rec Record
	for _, g := range k.groups {
		if len(g.emit) != 0 {
			if groupEqual(g.compare, prev, cur) {
				continue
			}
			if rec == nil {
				rec = k.header(id)
			}
			for _, f := range g.emit {
				rec[f.name] = f.value(cur)
			}
			continue
		}
		for _, f := range g.compare {
			if f.equal(prev, cur) {
				continue
			}
			if rec == nil {
				rec = k.header(id)
			}
			rec[f.name] = f.value(cur)
		}
	}
	return rec
}

func groupEqual[T any](fs []field[T], a, b T) bool {
	for _, f := range fs {
		if !f.equal(a, b) {
			return false
		}
	}
	return true
}

func (k Kind[T]) Removed(id string) Record {
	rec := k.header(id)
	rec[KeyRemoved] = true
	return rec
}

// Table 是按插入顺序排列的快照集合。
type Table[T any] struct {
	Order []string
	Rows  map[string]T
}

func newTable[T any](n int) Table[T] {
	return Table[T]{Order: make([]string, 0, n), Rows: make(map[string]T, n)}
}

func (t *Table[T]) put(id string, v T) {
	t.Order = append(t.Order, id)
	t.Rows[id] = v
}

// Diff 按 cur 的顺序输出新增/变化，再按 prev 的顺序输出删除；skip 中的删除不重复输出。
func (k Kind[T]) Diff(prev, cur Table[T], skip map[string]bool, out []Record) []Record {
	for _, id := range cur.Order {
		c := cur.Rows[id]
		p, ok := prev.Rows[id]
		if !ok {
			out = append(out, k.Full(id, c))
			continue
		}
		if rec := k.Changed(id, p, c); rec != nil {
			out = append(out, rec)
		}
	}
	for _, id := range prev.Order {
		if _, ok := cur.Rows[id]; ok || skip[id] {
			continue
		}
		out = append(out, k.Removed(id))
	}
	return out
}
