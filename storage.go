package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Supported storage driver names.
const (
	DriverPgx  = "pgx"
	DriverSQLX = "sqlx"
)

// SetupBookStorage builds the configured books storage backend. It makes
// sure the backend is reachable and its schema exists, then returns the
// storage along with the function releasing its connections.
func SetupBookStorage(ctx context.Context, logger *zap.Logger, config *Config) (BookStorage, func(), error) {
	switch config.Database.Driver {
	case DriverPgx:
		pool, err := GetPostgresPool(ctx, &config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres server: %s", err)
		}
		return NewPostgresBookStorage(logger, pool), pool.Close, nil

	case DriverSQLX:
		db, err := GetSQLXClient(&config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres server: %s", err)
		}
		cleanup := func() {
			if cerr := db.Close(); cerr != nil {
				logger.Error("failed to close the database client", zap.Error(cerr))
			}
		}
		return NewSQLXBookStorage(logger, db), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver: %s", config.Database.Driver)
	}
}
