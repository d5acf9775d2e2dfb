package bridge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/defibasket/basket"
	"github.com/shopspring/decimal"
)

// The bridge ids the reference handlers register under.
const (
	BridgeWrap          basket.BridgeID = "wrap"
	BridgeUnwrap        basket.BridgeID = "unwrap"
	BridgeSwap          basket.BridgeID = "swap"
	BridgeVaultDeposit  basket.BridgeID = "vault-deposit"
	BridgeVaultWithdraw basket.BridgeID = "vault-withdraw"
)

// Route is one directed swap pair in the configuration.
type Route struct {
	In     basket.AssetID  `json:"in"`
	Out    basket.AssetID  `json:"out"`
	Rate   decimal.Decimal `json:"rate"`
	FeeBps int64           `json:"feeBps,omitempty"`
}

// Config declares the bridge set. It is resolved once at startup and turned
// into a registry; nothing here is global mutable state.
type Config struct {
	Wrapped basket.AssetID `json:"wrapped"`
	Routes  []Route        `json:"routes,omitempty"`
	Vaults  []Vault        `json:"vaults,omitempty"`
}

// Load reads a configuration file.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading bridge config %q: %w", path, err)
	}
	var c Config
	if err := json.Unmarshal(content, &c); err != nil {
		return Config{}, fmt.Errorf("parsing bridge config %q: %w", path, err)
	}
	if c.Wrapped == "" {
		return Config{}, fmt.Errorf("bridge config %q: missing wrapped asset id", path)
	}
	return c, nil
}

// Default is a small bridge set for getting started: wrapped ether, two
// stable routes and one vault.
func Default() Config {
	return Config{
		Wrapped: "weth",
		Routes: []Route{
			{In: "weth", Out: "usdc", Rate: decimal.RequireFromString("1850"), FeeBps: 30},
			{In: "usdc", Out: "weth", Rate: decimal.RequireFromString("0.00054"), FeeBps: 30},
		},
		Vaults: []Vault{
			{Asset: "usdc", Share: "yv-usdc", SharePrice: decimal.RequireFromString("1.05")},
		},
	}
}

// Registry assembles the configured handlers into a fresh registry.
func (c Config) Registry() *basket.Registry {
	r := basket.NewRegistry()
	r.Register(BridgeWrap, &Wrap{Wrapped: c.Wrapped})
	r.Register(BridgeUnwrap, &Unwrap{Wrapped: c.Wrapped})

	table := NewRateTable()
	for _, route := range c.Routes {
		table.Set(route.In, route.Out, route.Rate, route.FeeBps)
	}
	r.Register(BridgeSwap, &Swap{Quoter: table})

	byAsset := make(map[basket.AssetID]Vault, len(c.Vaults))
	byShare := make(map[basket.AssetID]Vault, len(c.Vaults))
	for _, v := range c.Vaults {
		byAsset[v.Asset] = v
		byShare[v.Share] = v
	}
	r.Register(BridgeVaultDeposit, &VaultDeposit{Vaults: byAsset})
	r.Register(BridgeVaultWithdraw, &VaultWithdraw{Vaults: byShare})
	return r
}
