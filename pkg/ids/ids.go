// Package ids issues the time-based integer identifiers used for menu items,
// cart lines, orders and feedback.
package ids

import (
	"sync"
	"time"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

// Generator issues identifiers. Implementations must be safe for concurrent use.
type Generator interface {
	Next() int64
}

// TimeGenerator derives ids from the clock in unix milliseconds and bumps them
// so that every id is strictly greater than the previous one.
type TimeGenerator struct {
	mu    sync.Mutex
	clock Clock
	last  int64
}

func NewTimeGenerator(clock Clock) *TimeGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &TimeGenerator{clock: clock}
}

func (g *TimeGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	candidate := g.clock().UnixMilli()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	g.last = candidate
	return candidate
}

// Sequence is a deterministic generator for tests.
type Sequence struct {
	mu   sync.Mutex
	next int64
}

func NewSequence(start int64) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}
