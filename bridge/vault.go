package bridge

import (
	"fmt"

	"github.com/defibasket/basket"
	"github.com/shopspring/decimal"
)

// Vault describes one yield vault: the underlying asset, the share token
// issued against it, and the share price (underlying per share).
type Vault struct {
	Asset      basket.AssetID  `json:"asset"`
	Share      basket.AssetID  `json:"share"`
	SharePrice decimal.Decimal `json:"sharePrice"`
}

// VaultDeposit exchanges the resolved amount of an underlying asset for
// vault shares at the vault's share price, flooring the share count. The
// vault is selected by the action's input asset.
type VaultDeposit struct {
	Vaults map[basket.AssetID]Vault // keyed by underlying asset
}

func (h *VaultDeposit) Execute(_ basket.BalanceReader, action basket.Action, amountIn basket.Amount) (basket.ActionResult, error) {
	v, ok := h.Vaults[action.AssetIn]
	if !ok {
		return basket.ActionResult{}, fmt.Errorf("no vault takes %q", action.AssetIn)
	}
	if amountIn.IsZero() {
		return basket.ActionResult{}, fmt.Errorf("nothing to deposit: resolved input of %q is zero", action.AssetIn)
	}
	shares, err := basket.AmountFromDecimal(amountIn.Decimal().Div(v.SharePrice))
	if err != nil {
		return basket.ActionResult{}, fmt.Errorf("share count out of range: %w", err)
	}
	if shares.IsZero() {
		return basket.ActionResult{}, fmt.Errorf("deposit of %s %q yields zero shares", amountIn, v.Asset)
	}
	return basket.ActionResult{Deltas: []basket.Delta{
		basket.Consumed(v.Asset, amountIn),
		basket.Produced(v.Share, shares),
	}}, nil
}

// VaultWithdraw redeems the resolved amount of share tokens back into the
// underlying at the vault's share price. The vault is selected by the
// action's input asset, the share token.
type VaultWithdraw struct {
	Vaults map[basket.AssetID]Vault // keyed by share token
}

func (h *VaultWithdraw) Execute(_ basket.BalanceReader, action basket.Action, amountIn basket.Amount) (basket.ActionResult, error) {
	v, ok := h.Vaults[action.AssetIn]
	if !ok {
		return basket.ActionResult{}, fmt.Errorf("no vault issues %q", action.AssetIn)
	}
	if amountIn.IsZero() {
		return basket.ActionResult{}, fmt.Errorf("nothing to redeem: resolved input of %q is zero", action.AssetIn)
	}
	out, err := basket.AmountFromDecimal(amountIn.Decimal().Mul(v.SharePrice))
	if err != nil {
		return basket.ActionResult{}, fmt.Errorf("redemption out of range: %w", err)
	}
	return basket.ActionResult{Deltas: []basket.Delta{
		basket.Consumed(v.Share, amountIn),
		basket.Produced(v.Asset, out),
	}}, nil
}
