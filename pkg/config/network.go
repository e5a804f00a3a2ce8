package config

import (
	"fmt"
	"strings"
)

const (
	Mainnet = "mainnet"
	Testnet = "testnet"
)

// Network holds the Stellar endpoints the frontend and indexers talk to.
type Network struct {
	Name              string `json:"name"`
	HorizonURL        string `json:"horizonUrl"`
	SorobanRPCURL     string `json:"sorobanRpcUrl"`
	NetworkPassphrase string `json:"networkPassphrase"`
}

func knownNetwork(name string) (Network, bool) {
	switch name {
	case Mainnet:
		return Network{
			Name:              Mainnet,
			HorizonURL:        "https://horizon.stellar.org",
			SorobanRPCURL:     "https://soroban-rpc.creit.tech",
			NetworkPassphrase: "Public Global Stellar Network ; September 2015",
		}, true
	case Testnet:
		return Network{
			Name:              Testnet,
			HorizonURL:        "https://horizon-testnet.stellar.org",
			SorobanRPCURL:     "https://soroban-testnet.stellar.org",
			NetworkPassphrase: "Test SDF Network ; September 2015",
		}, true
	}
	return Network{}, false
}

// ResolveNetwork returns the endpoints of name with non-empty overrides applied.
func ResolveNetwork(name, horizonURL, sorobanRPCURL string) (Network, error) {
	n, ok := knownNetwork(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
	if horizonURL != "" {
		n.HorizonURL = horizonURL
	}
	if sorobanRPCURL != "" {
		n.SorobanRPCURL = sorobanRPCURL
	}
	return n, nil
}
