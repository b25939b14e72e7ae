package cache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, label string) float64 {
	c, err := cv.GetMetricWithLabelValues(label)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func useIsolatedRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	orig := entriesReg
	entriesReg = reg
	t.Cleanup(func() { entriesReg = orig })
	return reg
}

func TestInstrumentedCache_HitsAndMisses(t *testing.T) {
	useIsolatedRegistry(t)
	c := newMemoryTestCache(t, ProviderConfig{Size: 10, TTL: time.Hour, Group: "test-hits"})

	hitsBefore := getCounterVecValue(HitsTotal, "test-hits")
	missesBefore := getCounterVecValue(MissesTotal, "test-hits")

	c.Set("k", []byte("v"))
	_, _ = c.Get("k")
	_, _ = c.Get("absent")

	if diff := getCounterVecValue(HitsTotal, "test-hits") - hitsBefore; diff != 1 {
		t.Errorf("Expected hits to increment by 1, got diff %.0f", diff)
	}
	if diff := getCounterVecValue(MissesTotal, "test-hits") - missesBefore; diff != 1 {
		t.Errorf("Expected misses to increment by 1, got diff %.0f", diff)
	}
}

func TestInstrumentedCache_Evictions(t *testing.T) {
	useIsolatedRegistry(t)
	var evicted []string
	c := newMemoryTestCache(t, ProviderConfig{
		Size:    1,
		TTL:     time.Hour,
		Group:   "test-evict",
		OnEvict: func(key string, _ []byte) { evicted = append(evicted, key) },
	})

	before := getCounterVecValue(EvictionsTotal, "test-evict")
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	if diff := getCounterVecValue(EvictionsTotal, "test-evict") - before; diff != 1 {
		t.Errorf("Expected evictions to increment by 1, got diff %.0f", diff)
	}
	if len(evicted) != 1 || evicted[0] != "a" {
		t.Errorf("Expected original OnEvict to fire for 'a', got %v", evicted)
	}
}

func TestInstrumentedCache_EntriesCollector(t *testing.T) {
	reg := useIsolatedRegistry(t)
	c, err := New("memory", ProviderConfig{Size: 10, TTL: time.Hour, Group: "test-entries"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	gather := func() float64 {
		mfs, _ := reg.Gather()
		for _, mf := range mfs {
			if mf.GetName() != "cache_entries" {
				continue
			}
			for _, m := range mf.GetMetric() {
				return m.GetGauge().GetValue()
			}
		}
		return -1
	}

	c.Set("x", []byte("1"))
	c.Set("y", []byte("2"))
	if v := gather(); v != 2 {
		t.Errorf("Expected 2 entries, got %.0f", v)
	}

	_ = c.Close()

	collectorsMu.Lock()
	_, registered := collectors["test-entries"]
	collectorsMu.Unlock()
	if registered {
		t.Fatal("Expected entries collector to be unregistered after Close()")
	}
	if v := gather(); v != -1 {
		t.Errorf("Expected no cache_entries metric after Close, got %.0f", v)
	}
}
