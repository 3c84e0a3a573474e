package kvstore

import "context"

// RedisKV is the slice of pkg/redis.Client the medium needs.
type RedisKV interface {
	ReadKV(ctx context.Context, key string) ([]byte, bool, error)
	WriteKV(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

// RedisMedium stores documents as plain Redis strings under foa:kv:<key>.
type RedisMedium struct {
	client RedisKV
}

func NewRedisMedium(client RedisKV) *RedisMedium {
	return &RedisMedium{client: client}
}

func (r *RedisMedium) Read(ctx context.Context, key string) ([]byte, bool, error) {
	return r.client.ReadKV(ctx, key)
}

func (r *RedisMedium) Write(ctx context.Context, key string, value []byte) error {
	return r.client.WriteKV(ctx, key, value)
}

func (r *RedisMedium) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
