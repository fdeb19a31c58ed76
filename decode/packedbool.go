package decode

import "github.com/deframe/deframe/frame"

// maxPendingBools is the packed-boolean block size: the compression byte
// carries at most 8 boolean values (spec §4.5).
const maxPendingBools = 8

// decodeBool appends a shared-cell placeholder to the pending block and
// emits no byte read (spec §4.5). The cell is patched in place once the
// block's compression byte is read, either when the block reaches
// maxPendingBools or when the top-level decode completes.
func (d *decoder) decodeBool() (frame.Argument, error) {
	cell := new(bool)
	d.pending = append(d.pending, cell)

	if len(d.pending) == maxPendingBools {
		if err := d.flushPackedBools(); err != nil {
			return frame.Argument{}, err
		}
	}

	return frame.Argument{Kind: frame.KindBool, BoolVal: cell}, nil
}

// flushPackedBools reads one compression byte and distributes its bits to
// the pending cells, per spec §4.5's bit-distribution rule: with n pending
// (1 ≤ n ≤ 8) and byte B, the i-th pending boolean (0-based, insertion
// order) receives bit (n-1-i) of B.
func (d *decoder) flushPackedBools() error {
	n := len(d.pending)
	if n == 0 {
		return nil
	}

	b, err := d.reader.ReadU8()
	if err != nil {
		return err
	}

	for i, cell := range d.pending {
		bit := n - 1 - i
		*cell = (b>>uint(bit))&1 != 0
	}

	d.pending = d.pending[:0]

	return nil
}
