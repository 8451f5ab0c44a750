package delta

import (
	"time"

	"TileArmy/internal/world/entity"
)

// Engine 保存上次广播的快照，并按最小间隔节流输出 diff。
type Engine struct {
	interval time.Duration
	last     Snapshot
	lastTime time.Time
}

func NewEngine(interval time.Duration) *Engine {
	return &Engine{
		interval: interval,
		last:     EmptySnapshot(),
		lastTime: time.UnixMilli(0),
	}
}

// Pending 返回当前世界相对上次广播的变化，不改变引擎状态。
func (e *Engine) Pending(w *entity.World) []Record {
	return Diff(e.last, Capture(w))
}

// Step 在“至少一个实体变化且距上次广播已过 interval”时返回变化记录，
// 并把当前快照记为上次广播；否则返回 nil，未发送的变化累积到下次。
func (e *Engine) Step(now time.Time, w *entity.World) []Record {
	if now.Sub(e.lastTime) < e.interval {
		return nil
	}
	cur := Capture(w)
	changes := Diff(e.last, cur)
	if len(changes) == 0 {
		return nil
	}
	e.last = cur
	e.lastTime = now
	return changes
}

// Last 返回上次广播快照的拷贝。
func (e *Engine) Last() Snapshot {
	return e.last.Clone()
}

func (e *Engine) LastTime() time.Time {
	return e.lastTime
}
