package calls

import (
	"context"
	"fmt"

	"voice-call-dashboard/internal/config"
	"voice-call-dashboard/pkg/utils"
)

// Backend is an opened store with its lifecycle hooks.
	Name     string
	Name  string
	Calls    Store
	Leads    LeadStore
	LeadsOut LeadWriter

	// Migrate applies the schema; nil for backends that need none.
	Migrate func(ctx context.Context) error

	closeFn func()
}

// Close releases the underlying connections.
func (b *Backend) Close() {
	if b != nil && b.closeFn != nil {
		b.closeFn()
	}
}

// OpenBackend connects the store selected by cfg.Store.Backend.
func OpenBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := utils.OpenPostgres(ctx, cfg.Store.DatabaseURL, utils.PostgresPoolConfig{})
		if err != nil {
			return nil, err
		}
		repo := NewPostgresRepo(pool)
		return &Backend{
			Name:     config.BackendPostgres,
			Calls:    repo,
			Leads:    repo,
			LeadsOut: repo,
			Migrate:  func(ctx context.Context) error { return ApplySchema(ctx, pool) },
			closeFn:  pool.Close,
		}, nil

	case config.BackendRedis:
		rc := utils.RedisConfig{URL: cfg.Redis.URL, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		if rc.URL == "" {
			rc.Addr = cfg.RedisAddr()
		}
		rdb, err := utils.OpenRedis(ctx, rc)
		if err != nil {
			return nil, err
		}
		repo := NewRedisRepo(rdb, cfg.Redis.KeyPrefix)
		return &Backend{
			Name:     config.BackendRedis,
			Calls:    repo,
			Leads:    repo,
			LeadsOut: repo,
			closeFn:  func() { _ = rdb.Close() },
		}, nil

	case config.BackendMemory, "":
		repo := NewMemoryRepo()
		return &Backend{Name: config.BackendMemory, Calls: repo, Leads: repo, LeadsOut: repo}, nil

	default:
		return nil, fmt.Errorf("calls: unknown backend %q", cfg.Store.Backend)
	}
}
