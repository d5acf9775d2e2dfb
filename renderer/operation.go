package renderer

import (
	"fmt"
	"strings"

	"github.com/defibasket/basket"
)

// Operation renders a journaled operation to a one-line string.
func Operation(op basket.Operation) string {
	switch v := op.(type) {
	case basket.CreateOp:
		return fmt.Sprintf("Created a basket with %s, %d steps", funds(v.Assets, v.Amounts, v.Native), v.Script.Len())
	case basket.DepositOp:
		return fmt.Sprintf("Deposited %s into basket %d, %d steps", funds(v.Assets, v.Amounts, v.Native), v.Basket, v.Script.Len())
	case basket.EditOp:
		return fmt.Sprintf("Edited basket %d with %d steps", v.Basket, v.Script.Len())
	case basket.WithdrawOp:
		return fmt.Sprintf("Withdrew %s from basket %d, %d steps", outputs(v.Assets, v.Amounts, v.NativePercent), v.Basket, v.Script.Len())
	default:
		return string(op.What())
	}
}

// Operations renders a journal as a markdown listing.
func Operations(ops []basket.Operation) string {
	md := newRenderer()
	md.Printf("# Operations\n\n")
	if len(ops) == 0 {
		md.Printf("The journal is empty.\n")
		return md.String()
	}
	for i, op := range ops {
		md.Printf("%4d. `%s` %s\n", i+1, op.Caller(), Operation(op))
	}
	return md.String()
}

func funds(assets []basket.AssetID, amounts []basket.Amount, native basket.Amount) string {
	if len(assets) == 0 && native.IsZero() {
		return "no funds"
	}
	parts := make([]string, 0, len(assets)+1)
	if !native.IsZero() {
		parts = append(parts, fmt.Sprintf("%s native", native))
	}
	for i, asset := range assets {
		parts = append(parts, fmt.Sprintf("%s %s", amounts[i], asset))
	}
	return strings.Join(parts, ", ")
}

func outputs(assets []basket.AssetID, amounts []basket.Amount, nativePercent basket.Percent) string {
	parts := make([]string, 0, len(assets)+1)
	for i, asset := range assets {
		parts = append(parts, fmt.Sprintf("%s %s", amounts[i], asset))
	}
	if !nativePercent.IsZero() {
		parts = append(parts, fmt.Sprintf("%s of native", nativePercent))
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}
