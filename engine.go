package basket

// Engine runs an ordered bridge-call script against one ledger.
//
// Scripts are chains: step N's output is frequently step N-1's input (wrap
// native currency, swap 100% of the wrapped amount, deposit 100% of the swap
// output), and absolute amounts are unknown until runtime. The engine
// therefore resolves every step's percentage against the balance as it
// stands when that step runs.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine that dispatches through the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Registry returns the registry the engine dispatches through.
func (e *Engine) Registry() *Registry { return e.registry }

// Run executes the script sequentially, mutating the ledger in place. An
// empty script is a no-op. The first failing step aborts the remainder and
// is reported as a StepError carrying the step index; each handler
// invocation is atomic, but effects already applied by strictly earlier
// steps remain. The all-or-nothing boundary for a whole script lives one
// level above this engine. There is no retry and no reordering.
func (e *Engine) Run(ledger *Ledger, actions []Action) error {
	for i, action := range actions {
		if err := e.step(ledger, action); err != nil {
			return &StepError{Step: i, Bridge: action.Bridge, Err: err}
		}
	}
	return nil
}

func (e *Engine) step(ledger *Ledger, action Action) error {
	handler, err := e.registry.Resolve(action.Bridge)
	if err != nil {
		return err
	}
	amountIn, err := ledger.PercentOf(action.AssetIn, action.PercentIn)
	if err != nil {
		return err
	}
	result, err := handler.Execute(ledger, action, amountIn)
	if err != nil {
		return &HandlerError{Err: err}
	}
	return ledger.Apply(result.Deltas)
}
