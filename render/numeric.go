package render

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/frame"
	"github.com/deframe/deframe/internal/pool"
)

// bigUnsigned reconstructs the full 128-bit unsigned magnitude of an
// argument's (Lo, Hi) halves.
func bigUnsigned(lo, hi uint64) *big.Int {
	v := new(big.Int).SetUint64(hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(lo))

	return v
}

// two128 is 2^128, used to interpret a signed argument's two's-complement
// bit pattern.
var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// bigSigned interprets an argument's (Lo, Hi) halves as a two's-complement
// 128-bit signed integer.
func bigSigned(lo, hi uint64) *big.Int {
	v := bigUnsigned(lo, hi)
	if hi>>63 != 0 {
		v.Sub(v, two128)
	}

	return v
}

// bitWidth returns the declared bit width of an integer ParamType, used to
// truncate a widened value back to its original wire width before
// hex/binary rendering: spec §4.9 widens every integer to 128 bits, but the
// fragment's own declared type still carries the original width, and a
// negative value's hex/binary pattern must reflect that width rather than
// the full 128 bits (e.g. an i8 of -1 renders as 0xff, not 0xffff...ff).
func bitWidth(t fragment.ParamType) int {
	switch t {
	case fragment.I8, fragment.U8:
		return 8
	case fragment.I16, fragment.U16:
		return 16
	case fragment.U24:
		return 24
	case fragment.I32, fragment.U32, fragment.F32:
		return 32
	case fragment.I64, fragment.U64, fragment.F64, fragment.Usize, fragment.Isize:
		return 64
	default:
		return 128
	}
}

func maskToWidth(v *big.Int, width int) *big.Int {
	if width >= 128 {
		return v
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))

	return new(big.Int).And(v, mask)
}

func hexText(v *big.Int, uppercase bool) string {
	if uppercase {
		return fmt.Sprintf("%X", v)
	}

	return v.Text(16)
}

// writeInteger renders an Ixx/Uxx argument per spec §4.10: Binary -> "0b…";
// Hexadecimal -> "0x…" or "0X…" per the fragment's Uppercase flag;
// Microseconds (unsigned only; signed values fall back to decimal) ->
// integer seconds, a dot, six-digit zero-padded remainder; otherwise plain
// decimal over the full widened value.
func writeInteger(buf *pool.ByteBuffer, typ fragment.ParamType, arg frame.Argument, hint fragment.Hint, uppercase bool) {
	switch hint {
	case fragment.HintBinary:
		masked := maskToWidth(bigUnsigned(arg.Lo, arg.Hi), bitWidth(typ))
		buf.MustWrite([]byte("0b" + masked.Text(2)))

	case fragment.HintHexadecimal:
		masked := maskToWidth(bigUnsigned(arg.Lo, arg.Hi), bitWidth(typ))
		prefix := "0x"
		if uppercase {
			prefix = "0X"
		}
		buf.MustWrite([]byte(prefix + hexText(masked, uppercase)))

	case fragment.HintMicroseconds:
		if arg.Kind == frame.KindI128 {
			writeDecimal(buf, arg)
			return
		}
		v := bigUnsigned(arg.Lo, arg.Hi)
		const micros = 1_000_000
		div, rem := new(big.Int).QuoRem(v, big.NewInt(micros), new(big.Int))
		buf.MustWrite([]byte(fmt.Sprintf("%s.%06d", div.String(), rem.Int64())))

	default:
		writeDecimal(buf, arg)
	}
}

func writeDecimal(buf *pool.ByteBuffer, arg frame.Argument) {
	if arg.Kind == frame.KindI128 {
		buf.MustWrite([]byte(bigSigned(arg.Lo, arg.Hi).String()))
	} else {
		buf.MustWrite([]byte(bigUnsigned(arg.Lo, arg.Hi).String()))
	}
}

// writeBitField isolates a BitField(s..e) argument's own sub-range out of
// the (possibly wider, coalesced) shared raw value via
// (x << (128-e)) >> (128-e+s), per spec §4.10. With the Ascii hint it
// renders the isolated value as a big-endian byte string; otherwise it
// renders per the integer hint.
func writeBitField(buf *pool.ByteBuffer, arg frame.Argument, start, end int, hint fragment.Hint, uppercase bool) {
	x := bigUnsigned(arg.Lo, arg.Hi)

	shl := 128 - end
	shr := 128 - end + start
	v := new(big.Int).Lsh(x, uint(shl))
	// big.Int never overflows, so drop the bits shifted past bit 127 the way
	// a native 128-bit shift would.
	v.And(v, new(big.Int).Sub(two128, big.NewInt(1)))
	v.Rsh(v, uint(shr))

	if hint == fragment.HintAscii {
		width := end - start
		nBytes := (width + 7) / 8
		b := v.FillBytes(make([]byte, nBytes))
		writeByteSlice(buf, b, fragment.HintAscii)

		return
	}

	switch hint {
	case fragment.HintBinary:
		buf.MustWrite([]byte("0b" + v.Text(2)))
	case fragment.HintHexadecimal:
		prefix := "0x"
		if uppercase {
			prefix = "0X"
		}
		buf.MustWrite([]byte(prefix + hexText(v, uppercase)))
	default:
		buf.MustWrite([]byte(v.String()))
	}
}

// formatFloat32/formatFloat64 render via Go's shortest-round-trip decimal
// formatting (strconv.FormatFloat with precision -1), matching spec §4.10's
// "floats render via a shortest-round-trip decimal."
func formatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func formatFloat64(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
