// Package metrics exposes restock order activity as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"

	"restock/internal/core/domain/model/restockorder"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restock"

// Collector counts domain events. It implements ports.EventPublisher.
type Collector struct {
	registry      *prometheus.Registry
	created       prometheus.Counter
	statusChanges *prometheus.CounterVec
	delivered     prometheus.Counter
	expired       prometheus.Counter
}

// NewCollector registers its metrics, plus Go and process collectors, on a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Restock orders created.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Restock order status changes by source and target status.",
		}, []string{"from", "to"}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_delivered_total",
			Help:      "Restock orders confirmed as delivered.",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_expired_total",
			Help:      "Restock orders cancelled after waiting too long for the supplier.",
		}),
	}
	c.registry.MustRegister(
		c.created,
		c.statusChanges,
		c.delivered,
		c.expired,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Publish(_ context.Context, events ...restockorder.Event) error {
	for _, e := range events {
		switch e.Name {
		case restockorder.EventOrderCreated:
			c.created.Inc()
		case restockorder.EventOrderStatusChanged:
			c.statusChanges.WithLabelValues(e.From.String(), e.To.String()).Inc()
			if e.Reason == restockorder.ReasonExpired {
				c.expired.Inc()
			}
		case restockorder.EventOrderDelivered:
			c.delivered.Inc()
		}
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
