package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records ordering activity and persistence health.
// A nil *StoreMetrics is valid and records nothing.
type StoreMetrics struct {
	ordersPlaced       *prometheus.CounterVec
	statusUpdates      *prometheus.CounterVec
	checkoutRejections *prometheus.CounterVec
	writeFailures      *prometheus.CounterVec
	writeDuration      *prometheus.HistogramVec
	cartLines          prometheus.Gauge
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders accepted by the ledger.",
	}, []string{"order_type"})
	statusUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Order status changes applied by the admin.",
	}, []string{"status"})
	checkoutRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejections_total",
		Help: "Checkout attempts rejected before an order was placed.",
	}, []string{"reason"})
	writeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_write_failures_total",
		Help: "Best-effort writes to the persistent medium that failed.",
	}, []string{"key"})
	writeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_write_duration_seconds",
		Help:    "Duration of writes to the persistent medium in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})
	cartLines := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_lines",
		Help: "Lines currently in the cart.",
	})
	reg.MustRegister(ordersPlaced, statusUpdates, checkoutRejections, writeFailures, writeDuration, cartLines)
	return &StoreMetrics{
		ordersPlaced:       ordersPlaced,
		statusUpdates:      statusUpdates,
		checkoutRejections: checkoutRejections,
		writeFailures:      writeFailures,
		writeDuration:      writeDuration,
		cartLines:          cartLines,
	}
}

func (m *StoreMetrics) IncOrderPlaced(orderType string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(orderType)).Inc()
}

func (m *StoreMetrics) IncStatusUpdate(status string) {
	if m == nil || m.statusUpdates == nil {
		return
	}
	m.statusUpdates.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *StoreMetrics) IncCheckoutRejection(reason string) {
	if m == nil || m.checkoutRejections == nil {
		return
	}
	m.checkoutRejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *StoreMetrics) IncWriteFailure(key string) {
	if m == nil || m.writeFailures == nil {
		return
	}
	m.writeFailures.WithLabelValues(normalizeLabel(key)).Inc()
}

// ObserveWrite records how long a write for key took.
func (m *StoreMetrics) ObserveWrite(key string, duration time.Duration) {
	if m == nil || m.writeDuration == nil {
		return
	}
	m.writeDuration.WithLabelValues(normalizeLabel(key)).Observe(duration.Seconds())
}

func (m *StoreMetrics) SetCartLines(n int) {
	if m == nil || m.cartLines == nil {
		return
	}
	m.cartLines.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
