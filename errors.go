package basket

import (
	"errors"
	"fmt"
)

// The error kinds callers can branch on with errors.Is. Every failure
// surfaced by the runtime wraps exactly one of these, or is a HandlerError.
var (
	// ErrLengthMismatch reports paired slices that differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrZeroAmount reports a token amount that is zero where a positive
	// value is required.
	ErrZeroAmount = errors.New("zero amount")
	// ErrNoFundsProvided reports an operation with neither a native amount
	// nor any token entries.
	ErrNoFundsProvided = errors.New("no funds provided")
	// ErrNotOwner reports a caller that is not the basket's current owner.
	ErrNotOwner = errors.New("not the basket owner")
	// ErrUnknownBridge reports a bridge id with no registered handler.
	ErrUnknownBridge = errors.New("unknown bridge")
	// ErrInsufficientBalance reports a debit that would drive a balance
	// negative.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount reports an amount or percentage outside its domain.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnknownBasket reports a basket id that was never created.
	ErrUnknownBasket = errors.New("unknown basket")
)

// HandlerError wraps an opaque failure surfaced by a bridge handler, keeping
// whatever the underlying protocol call reported reachable via Unwrap.
type HandlerError struct {
	Err error
}

func (e *HandlerError) Error() string { return "handler: " + e.Err.Error() }
func (e *HandlerError) Unwrap() error { return e.Err }

// StepError reports which step of a script aborted the run. Effects of
// strictly earlier steps remain applied; see Engine.Run.
type StepError struct {
	Step   int
	Bridge BridgeID
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (bridge %q): %v", e.Step, e.Bridge, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
