// Package backstop stores backstop withdrawal-queue entries and daily pool
// snapshots in PostgreSQL.
package backstop

import (
	"context"
	"fmt"

	"github.com/smoothie-fi/smoothie/pkg/db/postgres"
	"go.uber.org/zap"
)

// DB is the PostgreSQL backstop store. It implements db.Q4WStore and db.SnapshotStore.
type DB struct {
	postgres.Client
	Name string
}

// New connects to dbURL, ensures database name exists and creates the tables.
func New(ctx context.Context, logger *zap.Logger, dbURL, name string) (*DB, error) {
	poolConfig := postgres.DefaultPoolConfig("api")
	client, err := postgres.New(ctx, logger.With(
		zap.String("db", name),
		zap.String("component", poolConfig.Component),
	), dbURL, name, poolConfig)
	if err != nil {
		return nil, err
	}

	backstopDB := &DB{
		Client: client,
		Name:   client.TargetDatabase,
	}

	if err := backstopDB.InitializeDB(ctx); err != nil {
		backstopDB.Pool.Close()
		return nil, err
	}

	return backstopDB, nil
}

// Close terminates the underlying PostgreSQL connection
func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

// InitializeDB ensures the required tables exist
func (db *DB) InitializeDB(ctx context.Context) error {
	db.Logger.Info("Initialize q4w entries table", zap.String("database", db.Name))
	if err := db.initQ4WEntries(ctx); err != nil {
		return fmt.Errorf("init q4w entries: %w", err)
	}

	db.Logger.Info("Initialize pool snapshots table", zap.String("database", db.Name))
	if err := db.initPoolSnapshots(ctx); err != nil {
		return fmt.Errorf("init pool snapshots: %w", err)
	}

	return nil
}
