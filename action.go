package basket

import "fmt"

// BridgeID names the handler that performs the effect of one scripted step.
type BridgeID string

// Call is the bridge-independent description of one scripted step: which
// asset feeds the step, what share of its live balance to commit, and the
// opaque parameters only the handler interprets (pool ids, output assets,
// paths).
type Call struct {
	AssetIn   AssetID           `json:"assetIn"`
	PercentIn Percent           `json:"percentIn"`
	Params    map[string]string `json:"params,omitempty"`
}

// Script is an ordered bridge-call sequence as submitted by a caller. Bridge
// ids and calls travel as parallel slices, the way the wire request carries
// them, so a mismatch is representable and must be rejected.
type Script struct {
	Bridges []BridgeID `json:"bridges,omitempty"`
	Calls   []Call     `json:"calls,omitempty"`
}

func (s Script) Len() int { return len(s.Bridges) }

// Actions zips the script into executable actions. It fails with
// ErrLengthMismatch when the bridge and call slices disagree.
func (s Script) Actions() ([]Action, error) {
	if len(s.Bridges) != len(s.Calls) {
		return nil, fmt.Errorf("%d bridges for %d calls: %w",
			len(s.Bridges), len(s.Calls), ErrLengthMismatch)
	}
	actions := make([]Action, 0, len(s.Bridges))
	for i, bridge := range s.Bridges {
		actions = append(actions, Action{Bridge: bridge, Call: s.Calls[i]})
	}
	return actions, nil
}

// Action is one executable step: a call bound to its bridge. Constructed per
// invocation, consumed once, never persisted on its own.
type Action struct {
	Bridge BridgeID
	Call
}

// Param returns a handler-specific parameter, "" when absent.
func (a Action) Param(key string) string { return a.Params[key] }

// Delta is one signed balance change reported by a handler: Debit true for a
// consumed asset, false for a produced one.
type Delta struct {
	Asset  AssetID `json:"asset"`
	Amount Amount  `json:"amount"`
	Debit  bool    `json:"debit,omitempty"`
}

// Produced builds the delta for an asset a step added to the wallet.
func Produced(asset AssetID, amount Amount) Delta {
	return Delta{Asset: asset, Amount: amount}
}

// Consumed builds the delta for an asset a step took out of the wallet.
func Consumed(asset AssetID, amount Amount) Delta {
	return Delta{Asset: asset, Amount: amount, Debit: true}
}

// ActionResult is the net effect a handler reports after executing one
// action. Applying the deltas must never drive a balance negative; if it
// would, the step fails.
type ActionResult struct {
	Deltas []Delta
}
