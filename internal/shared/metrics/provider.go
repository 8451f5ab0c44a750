package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const instrumentationName = "TileArmy/game"

// Provider 持有 otel MeterProvider 与暴露给 /metrics 的 prometheus registry。
// 关闭时 meter 为 noop，Handler 为 nil。
type Provider struct {
	mp       *sdkmetric.MeterProvider
	meter    metric.Meter
	registry *prometheus.Registry
}

func New(enabled bool) (*Provider, error) {
	if !enabled {
		return &Provider{meter: noop.NewMeterProvider().Meter(instrumentationName)}, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return &Provider{
		mp:       mp,
		meter:    mp.Meter(instrumentationName),
		registry: reg,
	}, nil
}

func (p *Provider) Meter() metric.Meter {
	return p.meter
}

// Handler 返回 prometheus 抓取端点；未启用时返回 nil。
func (p *Provider) Handler() http.Handler {
	if p.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Provider) Shutdown(ctx context.Context) error {
	if p.mp == nil {
		return nil
	}
	return p.mp.Shutdown(ctx)
}
