package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Game 是世界模拟使用的指标集合。nil *Game 的所有方法都是空操作。
type Game struct {
	tickDuration    metric.Float64Histogram
	broadcasts      metric.Int64Counter
	changedEntities metric.Int64Counter
	commands        metric.Int64Counter
	connections     metric.Int64UpDownCounter
	captures        metric.Int64Counter
}

func NewGame(meter metric.Meter) (*Game, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(instrumentationName)
	}
	g := &Game{}
	var err error
	if g.tickDuration, err = meter.Float64Histogram("tilearmy.tick.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("world tick wall time"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 25, 50)); err != nil {
		return nil, err
	}
	if g.broadcasts, err = meter.Int64Counter("tilearmy.broadcasts",
		metric.WithDescription("update messages sent to all sessions")); err != nil {
		return nil, err
	}
	if g.changedEntities, err = meter.Int64Counter("tilearmy.broadcast.entities",
		metric.WithDescription("changed entity records carried by update messages")); err != nil {
		return nil, err
	}
	if g.commands, err = meter.Int64Counter("tilearmy.commands",
		metric.WithDescription("client commands by type and result")); err != nil {
		return nil, err
	}
	if g.connections, err = meter.Int64UpDownCounter("tilearmy.connections",
		metric.WithDescription("bound player sessions")); err != nil {
		return nil, err
	}
	if g.captures, err = meter.Int64Counter("tilearmy.captures",
		metric.WithDescription("base ownership changes")); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) ObserveTick(d time.Duration) {
	if g == nil {
		return
	}
	g.tickDuration.Record(context.Background(), float64(d.Microseconds())/1000)
}

func (g *Game) Broadcast(entities int) {
	if g == nil {
		return
	}
	g.broadcasts.Add(context.Background(), 1)
	g.changedEntities.Add(context.Background(), int64(entities))
}

func (g *Game) Command(kind string, ok bool) {
	if g == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "rejected"
	}
	g.commands.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("type", kind),
		attribute.String("result", result),
	))
}

func (g *Game) Connected(delta int64) {
	if g == nil {
		return
	}
	g.connections.Add(context.Background(), delta)
}

func (g *Game) Captured(neutral bool) {
	if g == nil {
		return
	}
	g.captures.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("from_neutral", neutral)))
}
