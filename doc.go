// Package basket implements a portfolio execution runtime: each basket is a
// user-owned collection of asset balances managed as a unit, and every change
// to a basket is expressed as a script of percentage-denominated steps
// delegated to pluggable bridge handlers.
//
// The core functionalities include:
//   - Ledger: the balance table for one basket, with exact integer arithmetic
//     on smallest-unit amounts and percentage-of-balance resolution.
//   - Registry: the mapping from bridge identifiers to the handlers capable
//     of performing swaps, wraps, vault deposits, and similar operations.
//   - Engine: the sequential executor that resolves each step's percentage
//     against the live balance at the time that step runs, never against a
//     snapshot taken before the script began.
//   - Manager: the public create/deposit/edit/withdraw operations, each
//     validating its inputs before any balance is touched.
//   - Journal: encoding and decoding of basket operations to and from a
//     human-readable, version-controllable JSONL format.
//
// This package serves as the foundational logic for the `dbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package basket
