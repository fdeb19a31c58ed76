// Package wire implements the Stream Reader of spec §4.2: fixed-width
// little-endian primitive reads plus unsigned LEB128, over a borrowed byte
// cursor that reports how many bytes it has consumed.
package wire

import (
	"math"
	"unicode/utf8"

	"github.com/deframe/deframe/endian"
	"github.com/deframe/deframe/errs"
)

// Reader is a mutable cursor into a borrowed byte slice. It never copies or
// retains the slice beyond the lifetime of the calling Decode invocation.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader constructs a Reader over data using the little-endian engine
// mandated by the wire format (spec §4.9).
func NewReader(data []byte) *Reader {
	return &Reader{data: data, engine: endian.GetLittleEndianEngine()}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// Consumed returns the number of bytes read so far.
func (r *Reader) Consumed() int { return r.pos }

// take returns the next n bytes and advances the cursor, or
// errs.ErrUnexpectedEOF if fewer than n bytes remain.
func (r *Reader) take(n int) ([]byte, error) {
	if r.Len() < n {
		return nil, errs.EOF("wire: need %d bytes, have %d", n, r.Len())
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads two little-endian bytes.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// ReadI16 reads two little-endian bytes as a signed value.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU24 reads a 24-bit unsigned value as a 1-byte low part followed by a
// 2-byte little-endian high part (spec §4.9: value = low | (high << 8)).
// It is performed as two reads, and the composed value equals that of a
// plain 3-byte little-endian read of the same bytes.
func (r *Reader) ReadU24() (uint32, error) {
	lo, err := r.ReadU8()
	if err != nil {
		return 0, err
	}

	hi, err := r.ReadU16()
	if err != nil {
		return 0, err
	}

	return uint32(lo) | uint32(hi)<<8, nil
}

// ReadU32 reads four little-endian bytes.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// ReadI32 reads four little-endian bytes as a signed value.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadF32 reads four little-endian bytes as an IEEE-754 float from its raw
// bit pattern (spec §4.9).
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// ReadU64 reads eight little-endian bytes.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// ReadI64 reads eight little-endian bytes as a signed value.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF64 reads eight little-endian bytes as an IEEE-754 double from its raw
// bit pattern (spec §4.9).
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// ReadU128 reads sixteen little-endian bytes into a widened uint128 held as
// two uint64 halves (lo, hi), matching how Argument stores Uxx values
// (spec §3.3: widened to u128).
func (r *Reader) ReadU128() (lo, hi uint64, err error) {
	b, err := r.take(16)
	if err != nil {
		return 0, 0, err
	}

	lo = r.engine.Uint64(b[0:8])
	hi = r.engine.Uint64(b[8:16])

	return lo, hi, nil
}

// ReadI128 reads sixteen little-endian bytes as a signed 128-bit value,
// returned as the same (lo, hi) uint64 halves; sign lives in the top bit of
// hi, matching two's-complement widening.
func (r *Reader) ReadI128() (lo, hi uint64, err error) {
	return r.ReadU128()
}

// ReadLEB128 reads an unsigned LEB128 varint (spec §4.2, GLOSSARY). It fails
// with errs.ErrMalformed on overflow past 64 bits and errs.ErrUnexpectedEOF
// on truncation (a continuation bit set on the last available byte).
func (r *Reader) ReadLEB128() (uint64, error) {
	var result uint64
	var shift uint

	for {
		b, err := r.ReadU8()
		if err != nil {
			return 0, errs.EOF("wire: leb128 truncated")
		}

		if shift >= 64 || (shift == 63 && b&0x7f > 1) {
			return 0, errs.Malformed("wire: leb128 overflow")
		}

		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}

		shift += 7
	}
}

// ZigZagDecode reverses the zig-zag mapping used for Isize (spec §4.9,
// GLOSSARY): (u>>1) ^ -(u & 1).
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// ReadChar reads a 4-byte little-endian Unicode scalar value (spec §4.9).
// It returns errs.ErrMalformed if the value is not a valid Unicode scalar.
func (r *Reader) ReadChar() (rune, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}

	if v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
		return 0, errs.Malformed("wire: %#x is not a valid unicode scalar", v)
	}

	return rune(v), nil
}

// ReadBytes reads exactly n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}

// ReadLenPrefixedBytes reads a LEB128 length followed by that many bytes
// (the U8Slice wire encoding, spec §4.9).
func (r *Reader) ReadLenPrefixedBytes() ([]byte, error) {
	n, err := r.ReadLEB128()
	if err != nil {
		return nil, err
	}

	return r.take(int(n))
}

// ReadStr reads a LEB128 length followed by that many UTF-8 bytes (the Str
// wire encoding, spec §4.9), validating UTF-8.
func (r *Reader) ReadStr() (string, error) {
	b, err := r.ReadLenPrefixedBytes()
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", errs.Malformed("wire: invalid utf-8 string")
	}

	return string(b), nil
}

// ReadPreformatted reads UTF-8 bytes terminated by a 0xFF sentinel (the
// Debug/Display wire encoding, spec §4.9). A missing terminator yields
// errs.ErrUnexpectedEOF since the terminator might still be coming.
func (r *Reader) ReadPreformatted() (string, error) {
	start := r.pos
	for {
		b, err := r.ReadU8()
		if err != nil {
			return "", errs.EOF("wire: missing debug/display terminator")
		}

		if b == 0xFF {
			body := r.data[start : r.pos-1]
			if !utf8.Valid(body) {
				return "", errs.Malformed("wire: invalid utf-8 in preformatted value")
			}

			return string(body), nil
		}
	}
}
