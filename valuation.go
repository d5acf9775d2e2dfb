package basket

import "github.com/shopspring/decimal"

// ValuationLine prices one asset of a basket.
type ValuationLine struct {
	Asset    AssetID
	Balance  Amount
	PriceUSD decimal.Decimal // USD per whole token
	ValueUSD decimal.Decimal
}

// Valuation is the priced view of one basket. Assets with no quoted price
// are listed in Missing rather than silently valued at zero.
type Valuation struct {
	Basket   BasketID
	Lines    []ValuationLine
	TotalUSD decimal.Decimal
	Missing  []AssetID
}

// defaultDecimals is assumed for assets absent from the decimals table,
// matching the common ERC20 configuration.
const defaultDecimals int32 = 18

// Value prices a basket's balances with the given USD-per-whole-token quotes.
// decimals maps each asset to its smallest-unit exponent and may be nil.
// Pricing is display-side only; ledger balances stay untouched integers.
func (m *Manager) Value(id BasketID, prices map[AssetID]decimal.Decimal, decimals map[AssetID]int32) (*Valuation, error) {
	b, err := m.Basket(id)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	v := &Valuation{Basket: id}
	for asset, balance := range b.ledger.Assets() {
		price, ok := prices[asset]
		if !ok {
			v.Missing = append(v.Missing, asset)
			continue
		}
		dec := defaultDecimals
		if d, found := decimals[asset]; found {
			dec = d
		}
		value := balance.Decimal().Shift(-dec).Mul(price)
		v.Lines = append(v.Lines, ValuationLine{
			Asset:    asset,
			Balance:  balance,
			PriceUSD: price,
			ValueUSD: value,
		})
		v.TotalUSD = v.TotalUSD.Add(value)
	}
	return v, nil
}
