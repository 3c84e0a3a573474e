package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/friendsofall-backend/pkg/config"
	"github.com/angelmondragon/friendsofall-backend/pkg/db"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/migrate"
	"github.com/angelmondragon/friendsofall-backend/pkg/redis"
)

// Store is the configured medium plus the clients it owns.
type Store struct {
	Backend string
	Medium  kvstore.Medium

	closers []func() error
}

// Ping checks the medium when it is backed by a remote dependency.
func (s *Store) Ping(ctx context.Context) error {
	return kvstore.Ping(ctx, s.Medium)
}

// Close releases every client opened for the medium.
func (s *Store) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.closers[i]())
	}
	s.closers = nil
	return err
}

// OpenStore builds the medium selected by cfg.Store.Backend.
func OpenStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Store, error) {
	backend := cfg.Store.NormalizedBackend()
	store := &Store{Backend: backend}
	ctx = logg.WithField(ctx, "store_backend", backend)

	switch backend {
	case config.StoreBackendMemory:
		store.Medium = kvstore.NewMemoryMedium()
	case config.StoreBackendFile:
		medium, err := kvstore.NewFileMedium(cfg.Store.FileDir)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		store.Medium = medium
	case config.StoreBackendSQLite, config.StoreBackendPostgres:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrapping database: %w", err)
		}
		store.closers = append(store.closers, client.Close)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("running dev migrations: %w", err), store.Close())
		}
		store.Medium = kvstore.NewSQLMedium(client)
	case config.StoreBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrapping redis: %w", err)
		}
		store.closers = append(store.closers, client.Close)
		store.Medium = kvstore.NewRedisMedium(client)
	default:
		return nil, fmt.Errorf("unsupported store backend %q", backend)
	}

	logg.Info(ctx, "store medium ready")
	return store, nil
}

// Bootstrap opens the configured store and builds the app over it. The store
// is closed again when the app cannot be built.
func Bootstrap(ctx context.Context, cfg *config.Config, logg *logger.Logger, registry *prometheus.Registry) (*App, *Store, error) {
	store, err := OpenStore(ctx, cfg, logg)
	if err != nil {
		return nil, nil, err
	}
	application, err := newWithStore(ctx, store, Params{
		Config:   cfg,
		Logger:   logg,
		Registry: registry,
	})
	if err != nil {
		return nil, nil, err
	}
	return application, store, nil
}

func newWithStore(ctx context.Context, store *Store, params Params) (*App, error) {
	params.Medium = store.Medium
	params.Pinger = store
	application, err := New(ctx, params)
	if err != nil {
		return nil, multierr.Append(err, store.Close())
	}
	return application, nil
}
