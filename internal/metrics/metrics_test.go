package metrics

import (
	"sync"
	"testing"
)

func TestMetrics_ConcurrentInc(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Inc(FramesSent)
		}()
	}
	wg.Wait()

	if got := m.Get(FramesSent); got != 50 {
		t.Fatalf("FramesSent = %d, want 50", got)
	}
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := New()
	m.Add(Joins, 2)
	m.Add(Joins, 0)

	snap := m.Snapshot()
	m.Inc(Joins)

	if snap[Joins] != 2 {
		t.Fatalf("snapshot changed: %d", snap[Joins])
	}
	if m.Get(Joins) != 3 {
		t.Fatalf("Joins = %d, want 3", m.Get(Joins))
	}
}
