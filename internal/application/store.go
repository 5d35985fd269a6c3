// Package application wires configuration into running dependencies.
package application

import (
	"context"
	"fmt"

	"thirdcoast.systems/redline/internal/config"
	"thirdcoast.systems/redline/internal/db"
	"thirdcoast.systems/redline/internal/store"
)

// OpenStore builds the configured label store. The file backend needs no
// setup; the postgres backend connects with retries and migrates the
// schema. The returned func releases whatever the store holds.
func OpenStore(ctx context.Context, conf *config.Config) (store.Store, func(), error) {
	switch conf.LabelStore {
	case "postgres":
		pool, err := OpenDBPoolWithRetry(ctx, *conf)
		if err != nil {
			return nil, nil, fmt.Errorf("connect label store: %w", err)
		}

		dbc, err := db.NewDatabaseConnection(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("open label store: %w", err)
		}

		if err := dbc.Migrate(ctx); err != nil {
			dbc.Close()
			return nil, nil, fmt.Errorf("migrate label store: %w", err)
		}
		return store.NewPostgresStore(dbc), dbc.Close, nil

	default:
		return store.NewFileStore(conf.LabelsPath), func() {}, nil
	}
}
