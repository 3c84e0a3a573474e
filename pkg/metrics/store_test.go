package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStoreMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStoreMetrics(reg)

	metrics.IncOrderPlaced("pickup")
	metrics.IncOrderPlaced("pickup")
	metrics.IncStatusUpdate("ready")
	metrics.IncCheckoutRejection("")
	metrics.IncWriteFailure("restaurant-orders")
	metrics.ObserveWrite("restaurant-orders", 20*time.Millisecond)
	metrics.SetCartLines(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	counters := []struct {
		name, label, value string
		want               float64
	}{
		{"orders_placed_total", "order_type", "pickup", 2},
		{"order_status_updates_total", "status", "ready", 1},
		{"checkout_rejections_total", "reason", "unknown", 1},
		{"store_write_failures_total", "key", "restaurant-orders", 1},
	}
	for _, c := range counters {
		got, err := fetchCounterValue(mfs, c.name, c.label, c.value)
		if err != nil {
			t.Fatalf("fetch %s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s expected %v got %v", c.name, c.want, got)
		}
	}

	if got, err := fetchHistogramSum(mfs, "store_write_duration_seconds", "key", "restaurant-orders"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	gauge := findMetricFamily(mfs, "cart_lines")
	if gauge == nil || gauge.GetMetric()[0].GetGauge().GetValue() != 3 {
		t.Fatalf("expected cart_lines gauge of 3")
	}
}

func TestNilStoreMetricsIsSafe(t *testing.T) {
	var metrics *StoreMetrics
	metrics.IncOrderPlaced("delivery")
	metrics.IncWriteFailure("restaurant-menu")
	metrics.SetCartLines(1)

	unregistered := NewStoreMetrics(nil)
	unregistered.IncStatusUpdate("pending")
	unregistered.ObserveWrite("restaurant-cart", time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
