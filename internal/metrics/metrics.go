// Package metrics exposes the latest inventory summaries as prometheus gauges.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

// Recorder owns a dedicated registry so tests can create as many as they like.
type Recorder struct {
	registry       *prometheus.Registry
	items          *prometheus.GaugeVec
	value          *prometheus.GaugeVec
	notifications  *prometheus.GaugeVec
	digestsSent    prometheus.Counter
	dispatchErrors prometheus.Counter
}

// NewRecorder registers the inventory collectors plus the Go and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sitestock",
			Name:      "inventory_items",
			Help:      "Number of inventory items by kind and state.",
		}, []string{"kind", "state"}),
		value: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sitestock",
			Name:      "inventory_value",
			Help:      "Total inventory value by kind.",
		}, []string{"kind"}),
		notifications: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sitestock",
			Name:      "inventory_notifications",
			Help:      "Active notifications by kind.",
		}, []string{"kind"}),
		digestsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sitestock",
			Name:      "alert_notifications_sent_total",
			Help:      "Notifications delivered in alert digests.",
		}),
		dispatchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sitestock",
			Name:      "alert_dispatch_errors_total",
			Help:      "Failed alert digest deliveries.",
		}),
	}

	r.registry.MustRegister(
		r.items, r.value, r.notifications, r.digestsSent, r.dispatchErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveSummary publishes a freshly computed summary.
func (r *Recorder) ObserveSummary(kind models.ItemKind, s models.InventorySummary) {
	k := string(kind)
	r.items.WithLabelValues(k, "total").Set(float64(s.Total))
	r.items.WithLabelValues(k, "out_of_stock").Set(float64(s.OutOfStock))
	r.items.WithLabelValues(k, "below_threshold").Set(float64(s.BelowThreshold))
	r.items.WithLabelValues(k, "restock_imminent").Set(float64(s.RestockImminent))
	r.items.WithLabelValues(k, "orders_sent").Set(float64(s.OrdersSent))
	r.value.WithLabelValues(k).Set(s.TotalValue)
}

// ObserveNotifications publishes the count of active notifications per kind.
func (r *Recorder) ObserveNotifications(notifications []models.Notification) {
	counts := map[models.NotificationKind]int{
		models.NotificationStock:   0,
		models.NotificationRestock: 0,
	}
	for _, n := range notifications {
		counts[n.Kind]++
	}
	for kind, count := range counts {
		r.notifications.WithLabelValues(string(kind)).Set(float64(count))
	}
}

// ObserveDispatch records the outcome of an alert delivery.
func (r *Recorder) ObserveDispatch(sent int, err error) {
	if err != nil {
		r.dispatchErrors.Inc()
		return
	}
	r.digestsSent.Add(float64(sent))
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
