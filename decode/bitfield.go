package decode

import (
	"encoding/binary"

	"github.com/deframe/deframe/errs"
	"github.com/deframe/deframe/frame"
)

// bitfieldReadWidth buckets a bitfield's logical byte span n to the actual
// number of bytes the encoder writes on the wire, per spec §4.9's "required
// width (1,2,3,4; 5–8→u64; 9–16→u128)" and
// original_source/decoder/src/decoder.rs's matching `size_after_truncation`
// dispatch: the encoder always writes the bucket's full width, never the
// logical span itself, so a 5-byte span still costs a full 8-byte read.
func bitfieldReadWidth(n int) int {
	switch {
	case n <= 4:
		return n
	case n <= 8:
		return 8
	default:
		return 16
	}
}

// decodeBitField reads the wire payload for a (possibly coalesced)
// BitField(start..end) parameter, per spec §4.9: the logical span
// ⌈end/8⌉ − ⌊start/8⌋ selects a read bucket via bitfieldReadWidth, and that
// bucket's bytes are left-shifted by ⌊start/8⌋·8 to place them at their
// absolute bit position.
//
// Because ⌊start/8⌋·8 is always a whole number of bytes, the shift is
// applied by writing the raw bucket bytes into a little-endian buffer at
// byte offset ⌊start/8⌋ rather than via an arithmetic shift — sidestepping
// the 128-bit shift-amount pitfalls flagged in the design notes (shifts of
// ⌊start/8⌋·8 are always in [0, 120] and byte-aligned). The buffer is sized
// to startByte+width rather than a fixed 16 bytes, since a u128-bucket read
// starting above byte 0 would otherwise overrun a fixed-size array; only its
// low 16 bytes are kept, truncating any overflow past bit 127 the same way
// Rust's `u128 <<= lowest_byte * 8` truncates in the original.
//
// The returned Argument holds the raw union-range bits at their absolute
// position; package render re-isolates each original parameter's own
// sub-range out of this shared value via (x << (128-e)) >> (128-e+s).
func (d *decoder) decodeBitField(start, end int) (frame.Argument, error) {
	if start < 0 || end <= start || end > 128 {
		return frame.Argument{}, errs.Malformed("decode: invalid bitfield range %d..%d", start, end)
	}

	startByte := start / 8
	endByte := (end + 7) / 8
	n := endByte - startByte
	if n < 1 || n > 16 {
		return frame.Argument{}, errs.Malformed("decode: bitfield range %d..%d spans %d bytes", start, end, n)
	}

	width := bitfieldReadWidth(n)

	raw, err := d.reader.ReadBytes(width)
	if err != nil {
		return frame.Argument{}, err
	}

	bufLen := startByte + width
	if bufLen < 16 {
		bufLen = 16
	}
	buf := make([]byte, bufLen)
	copy(buf[startByte:startByte+width], raw)

	lo := binary.LittleEndian.Uint64(buf[0:8])
	hi := binary.LittleEndian.Uint64(buf[8:16])

	return frame.Argument{Kind: frame.KindU128, Lo: lo, Hi: hi}, nil
}
