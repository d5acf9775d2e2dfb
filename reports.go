package basket

import "fmt"

// BalanceLine is one asset row of a basket report.
type BalanceLine struct {
	Asset   AssetID
	Balance Amount
}

// Report is a stable, renderable snapshot of one basket.
type Report struct {
	ID       BasketID
	Owner    Address
	Wallet   Address
	Balances []BalanceLine
}

// Report builds a snapshot of a basket's state for rendering.
func (m *Manager) Report(id BasketID) (*Report, error) {
	b, err := m.Basket(id)
	if err != nil {
		return nil, err
	}
	owner, err := m.ownerOf(b)
	if err != nil {
		return nil, fmt.Errorf("report for basket %d: %w", id, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	report := &Report{ID: b.id, Owner: owner, Wallet: b.wallet}
	for asset, balance := range b.ledger.Assets() {
		report.Balances = append(report.Balances, BalanceLine{Asset: asset, Balance: balance})
	}
	return report, nil
}
