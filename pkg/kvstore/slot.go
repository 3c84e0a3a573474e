package kvstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/metrics"
)

// Slot is the in-memory source of truth for one document. Reads never touch
// the medium after Load; writes go through to the medium best-effort and then
// fan out to subscribers.
type Slot[T any] struct {
	key     string
	medium  Medium
	seed    func() T
	logg    *logger.Logger
	metrics *metrics.StoreMetrics

	mu     sync.RWMutex
	value  T
	loaded bool

	subsMu  sync.Mutex
	subs    map[int]func(T)
	nextSub int
}

// NewSlot builds a slot for key. seed provides the value used when the medium has none.
func NewSlot[T any](key string, medium Medium, seed func() T, logg *logger.Logger, m *metrics.StoreMetrics) *Slot[T] {
	if seed == nil {
		seed = func() T {
			var zero T
			return zero
		}
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Slot[T]{
		key:     key,
		medium:  medium,
		seed:    seed,
		logg:    logg,
		metrics: m,
		subs:    make(map[int]func(T)),
	}
}

// Key returns the document key.
func (s *Slot[T]) Key() string {
	return s.key
}

// Load reads the document once. An absent or undecodable document is replaced
// by the seed, which is written back best-effort.
func (s *Slot[T]) Load(ctx context.Context) error {
	ctx = s.logg.WithStoreKey(ctx, s.key)

	raw, found, err := s.medium.Read(ctx, s.key)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read "+s.key)
	}

	var value T
	if found {
		if decodeErr := json.Unmarshal(raw, &value); decodeErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", decodeErr.Error()), "stored document is not valid json, reseeding")
			found = false
		}
	}

	if !found {
		value = s.seed()
	}

	s.mu.Lock()
	s.value = value
	s.loaded = true
	if !found {
		s.persistLocked(ctx, value)
	}
	s.mu.Unlock()

	if !found {
		s.logg.Info(ctx, "store document seeded")
	}
	return nil
}

// Get returns the current value. Callers must not mutate shared backing
// arrays; copy before modifying.
func (s *Slot[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return s.seed()
	}
	return s.value
}

// Set replaces the value.
func (s *Slot[T]) Set(ctx context.Context, value T) {
	_, _ = s.Update(ctx, func(T) (T, error) { return value, nil })
}

// Update applies fn to the current value under the slot lock. When fn returns
// an error nothing changes and no subscriber runs.
func (s *Slot[T]) Update(ctx context.Context, fn func(current T) (T, error)) (T, error) {
	s.mu.Lock()
	current := s.value
	if !s.loaded {
		current = s.seed()
	}
	next, err := fn(current)
	if err != nil {
		s.mu.Unlock()
		var zero T
		return zero, err
	}
	s.value = next
	s.loaded = true
	s.persistLocked(s.logg.WithStoreKey(ctx, s.key), next)
	s.mu.Unlock()

	s.notify(next)
	return next, nil
}

// Subscribe registers fn to run after every successful change. The returned
// func removes the subscription.
func (s *Slot[T]) Subscribe(fn func(T)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Slot[T]) notify(value T) {
	s.subsMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// persistLocked writes value to the medium. Failures are logged and counted.
func (s *Slot[T]) persistLocked(ctx context.Context, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.metrics.IncWriteFailure(s.key)
		s.logg.Error(ctx, "encode store document", err)
		return
	}

	start := time.Now()
	err = s.medium.Write(ctx, s.key, raw)
	s.metrics.ObserveWrite(s.key, time.Since(start))
	if err != nil {
		s.metrics.IncWriteFailure(s.key)
		s.logg.Error(s.logg.WithField(ctx, "error_dump", pkgerrors.Dump(err)), "store write failed", err)
	}
}
