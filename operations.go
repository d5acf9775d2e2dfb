package basket

import "reflect"

// CommandType is a typed string identifying a journaled operation.
type CommandType string

// Command types used in the journal's "command" discriminator field.
const (
	CmdCreate   CommandType = "create"
	CmdDeposit  CommandType = "deposit"
	CmdEdit     CommandType = "edit"
	CmdWithdraw CommandType = "withdraw"
)

// Operation is one recorded basket operation. Operations are written to the
// journal as they succeed and re-applied in order to reconstruct state.
type Operation interface {
	What() CommandType // What returns the command type ("create", "deposit", ...).
	Caller() Address   // Caller returns the address that submitted the operation.
	Equal(Operation) bool
	// Apply re-executes the operation against a manager, used by Replay.
	Apply(m *Manager) error
}

type baseOp struct {
	Command CommandType `json:"command"`
	By      Address     `json:"by"`             // By is the caller (the owner, for create).
	Memo    string      `json:"memo,omitempty"` // Memo is an optional rationale for the operation.
}

func (o baseOp) What() CommandType { return o.Command }
func (o baseOp) Caller() Address   { return o.By }

// MarshalJSON implements the json.Marshaler interface for baseOp.
func (o baseOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", o.Command)
	w.Append("by", o.By)
	w.Optional("memo", o.Memo)
	return w.MarshalJSON()
}

// fundsOp is a component for operations that bring funds in (create, deposit).
type fundsOp struct {
	Assets  []AssetID `json:"assets,omitempty"`
	Amounts []Amount  `json:"amounts,omitempty"`
	Native  Amount    `json:"native,omitzero"`
}

// MarshalJSON implements the json.Marshaler interface for fundsOp.
func (o fundsOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("assets", o.Assets)
	w.Optional("amounts", o.Amounts)
	if !o.Native.IsZero() {
		w.Append("native", o.Native)
	}
	return w.MarshalJSON()
}

// CreateOp records a basket creation.
type CreateOp struct {
	baseOp
	fundsOp
	Script Script `json:"script,omitzero"`
}

// NewCreateOp builds the journal record for a create.
func NewCreateOp(owner Address, memo string, assets []AssetID, amounts []Amount, native Amount, script Script) CreateOp {
	return CreateOp{
		baseOp:  baseOp{Command: CmdCreate, By: owner, Memo: memo},
		fundsOp: fundsOp{Assets: assets, Amounts: amounts, Native: native},
		Script:  script,
	}
}

// MarshalJSON implements the json.Marshaler interface for CreateOp.
func (o CreateOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(o.baseOp)
	w.EmbedFrom(o.fundsOp)
	if o.Script.Len() > 0 || len(o.Script.Calls) > 0 {
		w.Append("script", o.Script)
	}
	return w.MarshalJSON()
}

func (o CreateOp) Equal(other Operation) bool {
	v, ok := other.(CreateOp)
	return ok && reflect.DeepEqual(o, v)
}

func (o CreateOp) Apply(m *Manager) error {
	_, err := m.Create(o.By, o.Assets, o.Amounts, o.Native, o.Script)
	return err
}

// basketOp is a component for operations addressing an existing basket.
type basketOp struct {
	baseOp
	Basket BasketID `json:"basket"`
}

// MarshalJSON implements the json.Marshaler interface for basketOp.
func (o basketOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(o.baseOp)
	w.Append("basket", o.Basket)
	return w.MarshalJSON()
}

// DepositOp records a deposit of new funds into an existing basket.
type DepositOp struct {
	basketOp
	fundsOp
	Script Script `json:"script,omitzero"`
}

// NewDepositOp builds the journal record for a deposit.
func NewDepositOp(id BasketID, caller Address, memo string, assets []AssetID, amounts []Amount, native Amount, script Script) DepositOp {
	return DepositOp{
		basketOp: basketOp{baseOp: baseOp{Command: CmdDeposit, By: caller, Memo: memo}, Basket: id},
		fundsOp:  fundsOp{Assets: assets, Amounts: amounts, Native: native},
		Script:   script,
	}
}

// MarshalJSON implements the json.Marshaler interface for DepositOp.
func (o DepositOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(o.basketOp)
	w.EmbedFrom(o.fundsOp)
	if o.Script.Len() > 0 || len(o.Script.Calls) > 0 {
		w.Append("script", o.Script)
	}
	return w.MarshalJSON()
}

func (o DepositOp) Equal(other Operation) bool {
	v, ok := other.(DepositOp)
	return ok && reflect.DeepEqual(o, v)
}

func (o DepositOp) Apply(m *Manager) error {
	return m.Deposit(o.Basket, o.By, o.Assets, o.Amounts, o.Native, o.Script)
}

// EditOp records a rebalancing script run with no funds moving in or out.
type EditOp struct {
	basketOp
	Script Script `json:"script"`
}

// NewEditOp builds the journal record for an edit.
func NewEditOp(id BasketID, caller Address, memo string, script Script) EditOp {
	return EditOp{
		basketOp: basketOp{baseOp: baseOp{Command: CmdEdit, By: caller, Memo: memo}, Basket: id},
		Script:   script,
	}
}

// MarshalJSON implements the json.Marshaler interface for EditOp.
func (o EditOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(o.basketOp)
	w.Append("script", o.Script)
	return w.MarshalJSON()
}

func (o EditOp) Equal(other Operation) bool {
	v, ok := other.(EditOp)
	return ok && reflect.DeepEqual(o, v)
}

func (o EditOp) Apply(m *Manager) error {
	return m.Edit(o.Basket, o.By, o.Script)
}

// WithdrawOp records a withdrawal of output assets and/or a native
// percentage.
type WithdrawOp struct {
	basketOp
	Assets        []AssetID `json:"assets,omitempty"`
	Amounts       []Amount  `json:"amounts,omitempty"`
	NativePercent Percent   `json:"nativePercent,omitempty"`
	Script        Script    `json:"script,omitzero"`
}

// NewWithdrawOp builds the journal record for a withdraw.
func NewWithdrawOp(id BasketID, caller Address, memo string, assets []AssetID, amounts []Amount, nativePercent Percent, script Script) WithdrawOp {
	return WithdrawOp{
		basketOp:      basketOp{baseOp: baseOp{Command: CmdWithdraw, By: caller, Memo: memo}, Basket: id},
		Assets:        assets,
		Amounts:       amounts,
		NativePercent: nativePercent,
		Script:        script,
	}
}

// MarshalJSON implements the json.Marshaler interface for WithdrawOp.
func (o WithdrawOp) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(o.basketOp)
	w.Optional("assets", o.Assets)
	w.Optional("amounts", o.Amounts)
	w.Optional("nativePercent", o.NativePercent)
	if o.Script.Len() > 0 || len(o.Script.Calls) > 0 {
		w.Append("script", o.Script)
	}
	return w.MarshalJSON()
}

func (o WithdrawOp) Equal(other Operation) bool {
	v, ok := other.(WithdrawOp)
	return ok && reflect.DeepEqual(o, v)
}

func (o WithdrawOp) Apply(m *Manager) error {
	return m.Withdraw(o.Basket, o.By, o.Assets, o.Amounts, o.NativePercent, o.Script)
}
