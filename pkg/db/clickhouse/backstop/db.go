// Package backstop stores the backstop contract event log in ClickHouse.
package backstop

import (
	"context"
	"fmt"

	"github.com/smoothie-fi/smoothie/pkg/db/clickhouse"
	"go.uber.org/zap"
)

// DB is the ClickHouse event store. It implements db.EventStore.
type DB struct {
	clickhouse.Client
	Name string
}

// New connects to dsn, creates database name and the events table.
func New(ctx context.Context, logger *zap.Logger, dsn, name string) (*DB, error) {
	dbName := clickhouse.SanitizeName(name)
	poolConfig := clickhouse.DefaultPoolConfig("api")

	client, err := clickhouse.New(ctx, logger.With(
		zap.String("db", dbName),
		zap.String("component", poolConfig.Component),
	), dsn, dbName, poolConfig)
	if err != nil {
		return nil, err
	}

	eventsDB := &DB{
		Client: client,
		Name:   dbName,
	}

	if err := eventsDB.InitializeDB(ctx); err != nil {
		_ = eventsDB.Close()
		return nil, err
	}

	return eventsDB, nil
}

// Close terminates the underlying ClickHouse connection.
func (db *DB) Close() error {
	return db.Db.Close()
}

// InitializeDB creates the database and tables, then moves the connection onto the database.
func (db *DB) InitializeDB(ctx context.Context) error {
	if err := db.CreateDbIfNotExists(ctx, db.Name); err != nil {
		return fmt.Errorf("create database %s: %w", db.Name, err)
	}

	db.Logger.Info("Initialize events table", zap.String("database", db.Name))
	if err := db.initEvents(ctx); err != nil {
		return err
	}

	return db.SwitchToTargetDatabase(ctx)
}
