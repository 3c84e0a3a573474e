// Package kvstore persists the restaurant's documents (menu, cart, orders,
// feedback) as JSON values under well-known keys of a key-value medium.
package kvstore

import (
	"context"
	"sync"
)

// Well-known document keys.
const (
	KeyMenu     = "restaurant-menu"
	KeyOrders   = "restaurant-orders"
	KeyCart     = "restaurant-cart"
	KeyFeedback = "restaurant-feedback"
)

// Medium is the raw byte-level store. A missing key is reported with found=false.
type Medium interface {
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by media backed by a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the medium when it exposes a health check and succeeds otherwise.
func Ping(ctx context.Context, m Medium) error {
	if p, ok := m.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// MemoryMedium keeps documents in process memory.
type MemoryMedium struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: make(map[string][]byte)}
}

func (m *MemoryMedium) Read(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryMedium) Write(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.mu.Lock()
	m.data[key] = stored
	m.mu.Unlock()
	return nil
}
