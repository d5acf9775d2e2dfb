package basket

import "github.com/google/uuid"

// AssetID identifies one asset held in a basket: the native currency or any
// ERC20-style token. The id is opaque to the runtime, only bridge handlers
// interpret it.
type AssetID string

// Native is the sentinel AssetID for the chain's native currency.
const Native AssetID = "native"

// Address is an opaque account identifier: a basket owner, a payout
// recipient, or a basket's wallet handle.
type Address string

// NewWalletAddress allocates a fresh wallet handle for a basket. The wallet
// is a logical pointer to where assets physically sit; the runtime never
// dereferences it.
func NewWalletAddress() Address {
	return Address("wallet-" + uuid.NewString())
}
