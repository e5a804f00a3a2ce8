package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smoothie-fi/smoothie/pkg/retry"
	"go.uber.org/zap"
)

// Executor is an interface that both *pgxpool.Pool and pgx.Tx implement.
// This allows methods to work with either a connection pool or a transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Client wraps a PostgreSQL connection pool and provides helper methods
type Client struct {
	Logger         *zap.Logger
	Pool           *pgxpool.Pool
	TargetDatabase string
}

// PoolConfig defines connection pool settings
type PoolConfig struct {
	MinConns        int32
	MaxConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Component       string // For logging/debugging
}

// DefaultPoolConfig sizes the pool for the API's read-heavy request load.
func DefaultPoolConfig(component string) PoolConfig {
	return PoolConfig{
		MinConns:        2,
		MaxConns:        20,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
		Component:       component,
	}
}

// New connects to dbURL, creates dbName when it is missing and returns a
// client pooled on dbName. An empty dbName uses the database named in dbURL.
func New(ctx context.Context, logger *zap.Logger, dbURL, dbName string, poolConf PoolConfig) (Client, error) {
	connCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Client{}, fmt.Errorf("failed to parse POSTGRES_URL: %w", err)
	}
	applyPoolConfig(config, poolConf)

	if dbName == "" {
		dbName = config.ConnConfig.Database
	}

	client := Client{Logger: logger, TargetDatabase: dbName}
	pool, err := connect(connCtx, logger, config, poolConf)
	if err != nil {
		return Client{}, err
	}
	client.Pool = pool

	if dbName == config.ConnConfig.Database {
		return client, nil
	}

	// Bootstrap through the default database, then reconnect to the target.
	if err := client.CreateDbIfNotExists(connCtx, dbName); err != nil {
		pool.Close()
		return Client{}, err
	}
	pool.Close()

	config.ConnConfig.Database = dbName
	pool, err = connect(connCtx, logger, config, poolConf)
	if err != nil {
		return Client{}, err
	}
	client.Pool = pool
	return client, nil
}

func applyPoolConfig(config *pgxpool.Config, poolConf PoolConfig) {
	config.MinConns = poolConf.MinConns
	config.MaxConns = poolConf.MaxConns
	config.MaxConnLifetime = poolConf.ConnMaxLifetime
	config.MaxConnIdleTime = poolConf.ConnMaxIdleTime
}

func connect(ctx context.Context, logger *zap.Logger, config *pgxpool.Config, poolConf PoolConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	err := retry.WithBackoff(ctx, retry.ConnectConfig(), logger, "postgres_connection", func() error {
		p, openErr := pgxpool.NewWithConfig(ctx, config)
		if openErr != nil {
			return fmt.Errorf("failed to create postgres connection pool: %w", openErr)
		}

		logger.Debug("Pinging PostgreSQL connection",
			zap.String("db", config.ConnConfig.Database),
			zap.String("component", poolConf.Component),
		)

		if pingErr := p.Ping(ctx); pingErr != nil {
			p.Close()
			return fmt.Errorf("failed to ping postgres: %w", pingErr)
		}

		pool = p
		logger.Info("PostgreSQL connection pool configured",
			zap.String("database", config.ConnConfig.Database),
			zap.String("component", poolConf.Component),
			zap.Int32("min_conns", poolConf.MinConns),
			zap.Int32("max_conns", poolConf.MaxConns),
			zap.Duration("conn_max_lifetime", poolConf.ConnMaxLifetime),
			zap.Duration("conn_max_idle_time", poolConf.ConnMaxIdleTime),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// CreateDbIfNotExists ensures that the specified database exists by creating it if it does not already exist.
func (c *Client) CreateDbIfNotExists(ctx context.Context, dbName string) error {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := c.Pool.QueryRow(ctx, query, dbName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		// Cannot use parameterized query for CREATE DATABASE
		query := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())
		c.Logger.Info("Creating database", zap.String("database", dbName))
		if _, err := c.Pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
	}

	return nil
}

// Exec executes a query without returning any rows
func (c *Client) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.GetExecutor(ctx).Exec(ctx, query, args...)
	return err
}

// Query executes a query that returns rows
// IMPORTANT: Caller MUST call rows.Close() when done to release the connection
func (c *Client) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return c.GetExecutor(ctx).Query(ctx, query, args...)
}

// QueryRow executes a query that is expected to return at most one row
func (c *Client) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return c.GetExecutor(ctx).QueryRow(ctx, query, args...)
}

// BeginFunc executes fn within a transaction. The transaction is carried on
// the context passed to fn so client helpers pick it up.
func (c *Client) BeginFunc(ctx context.Context, fn func(ctx context.Context) error) error {
	return pgx.BeginFunc(ctx, c.Pool, func(tx pgx.Tx) error {
		return fn(c.WithTx(ctx, tx))
	})
}

// SendBatch sends a batch of queries
func (c *Client) SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults {
	return c.GetExecutor(ctx).SendBatch(ctx, batch)
}

// Ping verifies the pool can reach the server.
func (c *Client) Ping(ctx context.Context) error {
	return c.Pool.Ping(ctx)
}

// Close closes the connection pool
func (c *Client) Close() {
	c.Pool.Close()
}

type ctxKey string

const txKey ctxKey = "pgx_tx"

// WithTx returns a new context with the transaction embedded
func (c *Client) WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor returns the transaction carried by ctx, or the pool when there is none.
func (c *Client) GetExecutor(ctx context.Context) Executor {
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return tx
	}
	return c.Pool
}

// TableExists checks if a table exists in the public schema
func (c *Client) TableExists(ctx context.Context, table string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	if err := c.Pool.QueryRow(ctx, query, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("check if table exists %s: %w", table, err)
	}
	return exists, nil
}

// IsNoRows checks if the error is a "no rows" error
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
