package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapGetIsStable(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	b := m.Get("x")
	assert.Same(t, a, b)
	assert.Equal(t, 1, m.Count())
}

func TestRegistryConcurrentCounters(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frames := r.Ints.Get(Frames)
			for j := 0; j < 1000; j++ {
				frames.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(8000), r.Ints.Get(Frames).Load())
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(Wakes).Add(2)
	r.Floats.Get(FrameTimeMs).Set(1.5)

	assert.Equal(t, map[string]any{Wakes: int64(2), FrameTimeMs: 1.5}, r.Snapshot())
}

func TestAtomicFloatSmooth(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 10.0, f.Smooth(10, 0.1), "first sample seeds the average")
	assert.InDelta(t, 11.0, f.Smooth(20, 0.1), 1e-9)
}
