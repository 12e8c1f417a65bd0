package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe("bill", "save", OutcomeSuccess, time.Millisecond)
	m.Observe("bill", "save", OutcomeSuccess, time.Millisecond)
	m.Observe("bill", "save", "conflict", time.Millisecond)

	if got := testutil.ToFloat64(m.operations.WithLabelValues("bill", "save", OutcomeSuccess)); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("bill", "save", "conflict")); got != 1 {
		t.Errorf("conflict count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("histogram series = %d, want 1", got)
	}
}

func TestStreamOpened(t *testing.T) {
	m := New(prometheus.NewRegistry())

	closeA := m.StreamOpened("wallet")
	closeB := m.StreamOpened("wallet")
	if got := testutil.ToFloat64(m.streams.WithLabelValues("wallet")); got != 2 {
		t.Errorf("open streams = %v, want 2", got)
	}

	closeA()
	closeB()
	if got := testutil.ToFloat64(m.streams.WithLabelValues("wallet")); got != 0 {
		t.Errorf("open streams = %v, want 0", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Observe("bill", "save", OutcomeSuccess, time.Millisecond)
	m.StreamOpened("bill")()
}
