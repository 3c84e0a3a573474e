package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/friendsofall-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if _, found, err := client.ReadKV(ctx, "restaurant-cart"); err != nil || found {
		t.Fatalf("expected missing key to be not found without error, found=%v err=%v", found, err)
	}

	if err := client.WriteKV(ctx, "restaurant-cart", []byte(`[]`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, ok := mock.data["foa:kv:restaurant-cart"]; !ok {
		t.Fatalf("expected namespaced key to be written, have %v", mock.data)
	}

	value, found, err := client.ReadKV(ctx, "restaurant-cart")
	if err != nil || !found {
		t.Fatalf("expected stored value, found=%v err=%v", found, err)
	}
	if string(value) != "[]" {
		t.Fatalf("unexpected value %q", value)
	}

	if err := client.Del(ctx, client.KVKey("restaurant-cart")); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, found, _ := client.ReadKV(ctx, "restaurant-cart"); found {
		t.Fatalf("expected key to be gone after delete")
	}
}

func TestReadKVPropagatesErrors(t *testing.T) {
	mock := newMockCmdable()
	mock.getErr = errors.New("connection reset")
	client := &Client{store: mock}

	if _, _, err := client.ReadKV(context.Background(), "restaurant-menu"); err == nil {
		t.Fatalf("expected transport error to surface")
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close without raw client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.KVKey("restaurant-menu"); got != "foa:kv:restaurant-menu" {
		t.Fatalf("unexpected kv key %s", got)
	}
	if got := client.buildKey("kv", "", "x"); got != "foa:kv:x" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 7, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6380/2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 2 {
		t.Fatalf("unexpected options from url %+v", opts)
	}
}

type mockCmdable struct {
	data   map[string]string
	getErr error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(value)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
