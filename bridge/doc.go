// Package bridge ships the reference bridge handlers and the configuration
// that assembles them into a registry at startup.
//
// The handlers here simulate their protocol effects in-process: the wrapper
// converts native currency to its wrapped form 1:1, the swap trades at a
// configured fixed rate, and the vault exchanges an underlying for
// yield-bearing shares at a configured share price. Real protocol
// integrations implement the same basket.Handler capability and register
// under their own bridge ids.
package bridge
