package basket

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

// Handler is the capability every concrete bridge implements. The engine
// resolves the action's percentage into amountIn before the call; the handler
// alone knows how to turn amountIn plus the action's opaque parameters into
// an actual operation, and reports the resulting balance deltas.
type Handler interface {
	Execute(view BalanceReader, action Action, amountIn Amount) (ActionResult, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(view BalanceReader, action Action, amountIn Amount) (ActionResult, error)

func (f HandlerFunc) Execute(view BalanceReader, action Action, amountIn Amount) (ActionResult, error) {
	return f(view, action, amountIn)
}

// Registry maps bridge ids to handlers. The bridge set is resolved once at
// startup from configuration; production callers treat it as append-only,
// but Register overwrites silently to support test doubles.
type Registry struct {
	handlers map[BridgeID]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[BridgeID]Handler)}
}

// Register associates a bridge id with a handler, replacing any previous one.
func (r *Registry) Register(id BridgeID, h Handler) {
	if _, exists := r.handlers[id]; exists {
		log.Printf("bridge %q: replacing registered handler", id)
	}
	r.handlers[id] = h
}

// Resolve returns the handler for a bridge id, failing with ErrUnknownBridge
// when none is registered.
func (r *Registry) Resolve(id BridgeID) (Handler, error) {
	h, ok := r.handlers[id]
	if !ok {
		return nil, fmt.Errorf("bridge %q: %w", id, ErrUnknownBridge)
	}
	return h, nil
}

// Bridges iterates over registered bridge ids in sorted order.
func (r *Registry) Bridges() iter.Seq[BridgeID] {
	return func(yield func(BridgeID) bool) {
		ids := slices.Collect(maps.Keys(r.handlers))
		slices.Sort(ids)
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}
