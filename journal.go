package basket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// The journal is the persisted history of basket operations: one JSON object
// per line, identified by its "command" field. Replaying a journal against a
// fresh manager reconstructs ids, owners and balances, provided the same
// bridge set is registered.

// maxJournalLine caps the size of one journal line on decode.
const maxJournalLine = 16 * 1024 * 1024

// EncodeOperation appends a single operation as one JSONL line.
func EncodeOperation(w io.Writer, op Operation) error {
	b, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("encoding %s operation: %w", op.What(), err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("writing %s operation: %w", op.What(), err)
	}
	return nil
}

// EncodeJournal writes all operations in order.
func EncodeJournal(w io.Writer, ops []Operation) error {
	for _, op := range ops {
		if err := EncodeOperation(w, op); err != nil {
			return err
		}
	}
	return nil
}

// DecodeJournal reads a stream of JSONL operation lines, decoding each into
// the operation struct named by its "command" field. Empty lines are
// skipped.
func DecodeJournal(r io.Reader) ([]Operation, error) {
	var ops []Operation
	scanner := bufio.NewScanner(r)
	// Lines carrying long scripts or memos outgrow the scanner's default
	// 64KB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), maxJournalLine)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(line), err)
		}

		var op Operation
		switch identifier.Command {
		case CmdCreate:
			var v CreateOp
			if err := json.Unmarshal(line, &v); err != nil {
				return nil, fmt.Errorf("decoding create: %w", err)
			}
			op = v
		case CmdDeposit:
			var v DepositOp
			if err := json.Unmarshal(line, &v); err != nil {
				return nil, fmt.Errorf("decoding deposit: %w", err)
			}
			op = v
		case CmdEdit:
			var v EditOp
			if err := json.Unmarshal(line, &v); err != nil {
				return nil, fmt.Errorf("decoding edit: %w", err)
			}
			op = v
		case CmdWithdraw:
			var v WithdrawOp
			if err := json.Unmarshal(line, &v); err != nil {
				return nil, fmt.Errorf("decoding withdraw: %w", err)
			}
			op = v
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(line))
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	return ops, nil
}

// Replay re-applies operations to a manager in journal order, stopping at
// the first failing line.
func Replay(m *Manager, ops []Operation) error {
	for i, op := range ops {
		if err := op.Apply(m); err != nil {
			return fmt.Errorf("journal line %d (%s): %w", i+1, op.What(), err)
		}
	}
	return nil
}
