package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "NETWORK", "HORIZON_URL", "SOROBAN_RPC_URL", "POOL_REGISTRY_FILE", "STORAGE_BACKEND", "REDIS_ENABLED", "CACHE_WARM_WORKERS", "CACHE_ENABLED", "CACHE_SWEEP_INTERVAL", "CACHE_WARM_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Addr)
	assert.Equal(t, Mainnet, cfg.Network.Name)
	assert.Equal(t, "https://horizon.stellar.org", cfg.Network.HorizonURL)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Options.Addr())
	assert.Equal(t, 4, cfg.Warm.Workers)
	assert.Equal(t, "*/20 * * * * *", cfg.Warm.Spec)
	assert.Equal(t, 25*time.Second, cfg.Warm.Timeout)
	assert.True(t, cfg.ResponseCache.Enabled)
	assert.Equal(t, time.Minute, cfg.ResponseCache.SweepInterval)
	assert.NotEmpty(t, cfg.Pools.Pools(""))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NETWORK", "TESTNET")
	t.Setenv("HORIZON_URL", "http://horizon.local")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("PRICE_BLND", "0.07")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_SWEEP_INTERVAL", "5m")
	t.Setenv("CACHE_WARM_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Testnet, cfg.Network.Name)
	assert.Equal(t, "http://horizon.local", cfg.Network.HorizonURL)
	assert.Equal(t, "https://soroban-testnet.stellar.org", cfg.Network.SorobanRPCURL)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 0.07, cfg.Prices["BLND"])
	assert.False(t, cfg.ResponseCache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.ResponseCache.SweepInterval)
	assert.Equal(t, 10*time.Second, cfg.Warm.Timeout)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	t.Setenv("NETWORK", "futurenet")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("NETWORK", "")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	_, err = Load()
	assert.Error(t, err)
}

func TestCachePolicies(t *testing.T) {
	p := DefaultCachePolicies()

	assert.Equal(t, "public, s-maxage=30, stale-while-revalidate=60", p.For(RouteQ4W).Header())
	assert.Equal(t, "public, s-maxage=300, stale-while-revalidate=600", p.For(RouteQ4WPools).Header())
	assert.Equal(t, "no-store", p.For(RouteHealth).Header())
	assert.Equal(t, "no-store", p.For("/api/unknown").Header())
}

func TestPoolRegistry(t *testing.T) {
	r, err := LoadPoolRegistry("")
	require.NoError(t, err)

	short, ok := r.ShortName("CCCCIQSDILITHMM7PBSLVDT5MISSY7R26MNZXCX4H7J5JQ5FPIYOGYFS")
	assert.True(t, ok)
	assert.Equal(t, "YBX", short)

	_, ok = r.ShortName("CUNKNOWN")
	assert.False(t, ok)

	pools := r.Pools(Mainnet)
	require.Len(t, pools, 2)
	assert.Equal(t, "Fixed", pools[0].Name)
	assert.Empty(t, r.Pools(Testnet))
}

func TestPoolRegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"address":"CA","name":"Alpha","shortName":"A"}]`), 0o600))

	r, err := LoadPoolRegistry(path)
	require.NoError(t, err)
	_, ok := r.Lookup("CA")
	assert.True(t, ok)
	assert.Len(t, r.Pools(Testnet), 1)

	_, err = LoadPoolRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNewPoolRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewPoolRegistry([]PoolInfo{{Address: "CA"}, {Address: "CA"}})
	assert.Error(t, err)

	_, err = NewPoolRegistry([]PoolInfo{{Name: "nameless"}})
	assert.Error(t, err)
}

func TestPricesFromEnv(t *testing.T) {
	prices := PricesFromEnv(map[string]float64{"xlm": 0.1}, []string{
		"PRICE_XLM=0.12",
		"PRICE_BLND_USDC_LP=0.6",
		"PRICE_BAD=abc",
		"PRICE_NEG=-1",
		"PRICE_=3",
		"HOME=/root",
	})

	assert.Equal(t, map[string]float64{"XLM": 0.12, "BLND-USDC-LP": 0.6}, prices)
}
