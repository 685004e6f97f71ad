// Package metrics expone contadores de ventas y ajustes de inventario en formato Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
)

var (
	_ sales.Metrics     = (*Collector)(nil)
	_ inventory.Metrics = (*Collector)(nil)
)

// Collector agrupa las métricas del POS en un registry propio.
type Collector struct {
	registry     *prometheus.Registry
	sales        *prometheus.CounterVec
	saleDuration *prometheus.HistogramVec
	adjustments  *prometheus.CounterVec
}

// NewCollector crea el registry con las métricas del proceso y las del POS.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		sales: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cafe_pos",
				Name:      "sales_total",
				Help:      "Ventas procesadas por canal y resultado (committed, rejected, failed)",
			},
			[]string{"channel", "status"},
		),
		saleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cafe_pos",
				Name:      "sale_transaction_seconds",
				Help:      "Duración de la transacción de venta",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
			},
			[]string{"channel"},
		),
		adjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cafe_pos",
				Name:      "stock_adjustments_total",
				Help:      "Ajustes manuales de inventario por motivo",
			},
			[]string{"reason"},
		),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.sales, c.saleDuration, c.adjustments,
	)
	return c
}

// SaleObserved registra una venta u orden.
func (c *Collector) SaleObserved(channel, status string, elapsed time.Duration) {
	if channel == "" {
		channel = "unknown"
	}
	c.sales.WithLabelValues(channel, status).Inc()
	c.saleDuration.WithLabelValues(channel).Observe(elapsed.Seconds())
}

// StockAdjusted registra un ajuste manual.
func (c *Collector) StockAdjusted(reason string) {
	c.adjustments.WithLabelValues(reason).Inc()
}

// Registry devuelve el registry (tests y exportadores adicionales).
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler sirve /metrics con el registry propio.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
