package domain

import (
	"strings"

	"github.com/gagliardetto/solana-go"
)

// NativeDecimals is the exponent between SOL and lamports.
const NativeDecimals uint8 = 9

// NativeSymbol is the currency tag of the ledger's native coin.
const NativeSymbol = "SOL"

// Asset is a settlement currency. The set of implementations is closed:
// NativeAsset and TokenAsset. Callers switch on the concrete type.
type Asset interface {
	Symbol() string
	Decimals() uint8
	isAsset()
}

// NativeAsset is the ledger's base coin.
type NativeAsset struct{}

func (NativeAsset) Symbol() string  { return NativeSymbol }
func (NativeAsset) Decimals() uint8 { return NativeDecimals }
func (NativeAsset) isAsset()        {}

// TokenAsset is a fungible SPL token identified by its mint.
type TokenAsset struct {
	Ticker   string
	Mint     solana.PublicKey
	Exponent uint8
}

func (t TokenAsset) Symbol() string  { return t.Ticker }
func (t TokenAsset) Decimals() uint8 { return t.Exponent }
func (TokenAsset) isAsset()          {}

// AssetRegistry resolves currency tags to assets.
type AssetRegistry struct {
	assets map[string]Asset
}

// NewAssetRegistry always includes the native asset.
func NewAssetRegistry(tokens ...TokenAsset) *AssetRegistry {
	r := &AssetRegistry{assets: map[string]Asset{NativeSymbol: NativeAsset{}}}
	for _, t := range tokens {
		r.assets[strings.ToUpper(t.Ticker)] = t
	}
	return r
}

// Resolve looks up a tag case-insensitively.
func (r *AssetRegistry) Resolve(tag string) (Asset, bool) {
	a, ok := r.assets[strings.ToUpper(strings.TrimSpace(tag))]
	return a, ok
}

// Symbols lists the supported tags.
func (r *AssetRegistry) Symbols() []string {
	out := make([]string, 0, len(r.assets))
	for s := range r.assets {
		out = append(out, s)
	}
	return out
}
