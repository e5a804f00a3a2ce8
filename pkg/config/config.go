// Package config loads the API's process configuration once at startup.
// The resulting Config is immutable and is passed explicitly to every
// component that needs it.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/smoothie-fi/smoothie/pkg/cache"
	"github.com/smoothie-fi/smoothie/pkg/redis"
	"github.com/smoothie-fi/smoothie/pkg/utils"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Route templates, shared by the router and the cache policy table.
const (
	RouteQ4W          = "/api/backstop-q4w"
	RouteQ4WPools     = "/api/backstop-q4w/pools"
	RouteUserQ4W      = "/api/users/{address}/q4w"
	RoutePoolSnapshot = "/api/backstop-pools/{pool}/snapshots"
	RouteEvents       = "/api/events"
	RoutePools        = "/api/pools"
	RoutePrices       = "/api/prices"
	RouteNetwork      = "/api/network"
	RouteHealth       = "/api/health"
	RouteMetrics      = "/metrics"
)

type Config struct {
	Addr    string
	Network Network
	Pools   *PoolRegistry
	Prices  map[string]float64
	Cache   CachePolicies
	// ResponseCache controls the server-side response cache; Cache only sets headers.
	ResponseCache ResponseCacheConfig
	Storage       StorageConfig
	Redis         RedisConfig
	Warm          WarmConfig
}

type StorageConfig struct {
	Backend        string
	PostgresURL    string
	PostgresDB     string
	ClickHouseAddr string
	ClickHouseDB   string
}

type ResponseCacheConfig struct {
	Enabled bool
	// SweepInterval bounds how long expired entries linger in the in-process cache.
	SweepInterval time.Duration
}

type RedisConfig struct {
	Enabled bool
	Options redis.Options
}

type WarmConfig struct {
	Enabled bool
	Spec    string
	Workers int
	Timeout time.Duration
}

// CachePolicies maps route templates to their cache timing.
type CachePolicies map[string]cache.Policy

// For returns the policy of route, or no-store when route has none.
func (c CachePolicies) For(route string) cache.Policy {
	if p, ok := c[route]; ok {
		return p
	}
	return cache.NoStorePolicy
}

func policy(sMaxAge, swr int) cache.Policy {
	return cache.Policy{
		SMaxAge:              time.Duration(sMaxAge) * time.Second,
		StaleWhileRevalidate: time.Duration(swr) * time.Second,
	}
}

// DefaultCachePolicies is the per-route cache timing table.
func DefaultCachePolicies() CachePolicies {
	return CachePolicies{
		RouteQ4W:          policy(30, 60),
		RouteQ4WPools:     policy(300, 600),
		RouteUserQ4W:      policy(30, 60),
		RoutePoolSnapshot: policy(300, 600),
		RouteEvents:       policy(60, 120),
		RoutePools:        policy(3600, 7200),
		RoutePrices:       policy(60, 300),
		RouteNetwork:      policy(3600, 7200),
		RouteHealth:       cache.NoStorePolicy,
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	network, err := ResolveNetwork(
		utils.Env("NETWORK", Mainnet),
		utils.Env("HORIZON_URL", ""),
		utils.Env("SOROBAN_RPC_URL", ""),
	)
	if err != nil {
		return nil, err
	}

	pools, err := LoadPoolRegistry(utils.Env("POOL_REGISTRY_FILE", ""))
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(utils.Env("STORAGE_BACKEND", BackendPostgres))
	if backend != BackendPostgres && backend != BackendMemory {
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}

	return &Config{
		Addr:    utils.Env("ADDR", ":3001"),
		Network: network,
		Pools:   pools,
		Prices:  pricesFromProcessEnv(),
		Cache:   DefaultCachePolicies(),
		ResponseCache: ResponseCacheConfig{
			Enabled:       utils.EnvBool("CACHE_ENABLED", true),
			SweepInterval: utils.EnvDuration("CACHE_SWEEP_INTERVAL", cache.DefaultSweepInterval),
		},
		Storage: StorageConfig{
			Backend:        backend,
			PostgresURL:    utils.Env("POSTGRES_URL", "postgres://localhost:5432/postgres"),
			PostgresDB:     utils.Env("POSTGRES_DB", "smoothie"),
			ClickHouseAddr: utils.Env("CLICKHOUSE_ADDR", "clickhouse://localhost:9000?sslmode=disable"),
			ClickHouseDB:   utils.Env("CLICKHOUSE_DB", "smoothie"),
		},
		Redis: RedisConfig{
			Enabled: utils.EnvBool("REDIS_ENABLED", false),
			Options: redis.Options{
				Host:     utils.Env("REDIS_HOST", "localhost"),
				Port:     utils.Env("REDIS_PORT", "6379"),
				Password: utils.Env("REDIS_PASSWORD", ""),
				DB:       utils.EnvInt("REDIS_DB", 0),
			},
		},
		Warm: WarmConfig{
			Enabled: utils.EnvBool("CACHE_WARM_ENABLED", true),
			Spec:    utils.Env("CACHE_WARM_SPEC", "*/20 * * * * *"),
			Workers: max(utils.EnvInt("CACHE_WARM_WORKERS", 4), 1),
			Timeout: utils.EnvDuration("CACHE_WARM_TIMEOUT", 25*time.Second),
		},
	}, nil
}
