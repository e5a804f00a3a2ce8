package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-jose/go-jose/v4/json"
)

//go:embed pools.json
var defaultPoolsJSON []byte

// PoolInfo describes a known lending pool.
type PoolInfo struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Network   string `json:"network"`
}

// PoolRegistry is the read-only table of known pools.
type PoolRegistry struct {
	pools  []PoolInfo
	byAddr map[string]PoolInfo
}

// NewPoolRegistry indexes pools by address. Duplicate or empty addresses are rejected.
func NewPoolRegistry(pools []PoolInfo) (*PoolRegistry, error) {
	r := &PoolRegistry{
		pools:  make([]PoolInfo, 0, len(pools)),
		byAddr: make(map[string]PoolInfo, len(pools)),
	}
	for _, p := range pools {
		p.Address = strings.TrimSpace(p.Address)
		if p.Address == "" {
			return nil, fmt.Errorf("pool %q has no address", p.Name)
		}
		if _, dup := r.byAddr[p.Address]; dup {
			return nil, fmt.Errorf("duplicate pool address %s", p.Address)
		}
		r.byAddr[p.Address] = p
		r.pools = append(r.pools, p)
	}
	sort.SliceStable(r.pools, func(i, j int) bool { return r.pools[i].Name < r.pools[j].Name })
	return r, nil
}

// LoadPoolRegistry reads the registry from path, or the built-in table when path is empty.
func LoadPoolRegistry(path string) (*PoolRegistry, error) {
	raw := defaultPoolsJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read pool registry %s: %w", path, err)
		}
		raw = b
	}

	var pools []PoolInfo
	if err := json.Unmarshal(raw, &pools); err != nil {
		return nil, fmt.Errorf("decode pool registry: %w", err)
	}
	return NewPoolRegistry(pools)
}

// Lookup returns the pool registered at address.
func (r *PoolRegistry) Lookup(address string) (PoolInfo, bool) {
	p, ok := r.byAddr[address]
	return p, ok
}

// ShortName returns the display short name of the pool at address.
func (r *PoolRegistry) ShortName(address string) (string, bool) {
	p, ok := r.byAddr[address]
	if !ok || p.ShortName == "" {
		return "", false
	}
	return p.ShortName, true
}

// Pools returns the registered pools of network ordered by name. An empty
// network returns every pool.
func (r *PoolRegistry) Pools(network string) []PoolInfo {
	out := make([]PoolInfo, 0, len(r.pools))
	for _, p := range r.pools {
		if network == "" || p.Network == "" || p.Network == network {
			out = append(out, p)
		}
	}
	return out
}
