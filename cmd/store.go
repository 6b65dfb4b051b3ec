package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lumir-ai/tbi-engine/internal/config"
	"github.com/lumir-ai/tbi-engine/internal/store"
)

// openStore creates and migrates the configured report store.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Pool.MaxConns,
			MinConns: cfg.Pool.MinConns,
		})
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	zap.L().Debug("store ready", zap.String("driver", cfg.Driver))
	return st, nil
}
