package ids

import (
	"sync"
	"testing"
	"time"
)

func TestTimeGeneratorStrictlyIncreasing(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	gen := NewTimeGenerator(func() time.Time { return fixed })

	first := gen.Next()
	if first != fixed.UnixMilli() {
		t.Fatalf("expected %d got %d", fixed.UnixMilli(), first)
	}
	second := gen.Next()
	if second != first+1 {
		t.Fatalf("expected bumped id %d got %d", first+1, second)
	}
}

func TestTimeGeneratorConcurrentUnique(t *testing.T) {
	gen := NewTimeGenerator(nil)
	const n = 200

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Next()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestSequence(t *testing.T) {
	seq := NewSequence(100)
	if seq.Next() != 100 || seq.Next() != 101 {
		t.Fatal("sequence should count up from the start value")
	}
}
