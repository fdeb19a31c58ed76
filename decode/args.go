package decode

import (
	"github.com/deframe/deframe/errs"
	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/frame"
	"github.com/deframe/deframe/wire"
)

// decodeArgument reads one coalesced parameter's wire value and produces its
// decoded Argument, per the per-type encodings of spec §4.9.
func (d *decoder) decodeArgument(p fragment.Fragment) (frame.Argument, error) {
	switch p.Type {
	case fragment.Bool:
		return d.decodeBool()

	case fragment.U8:
		v, err := d.reader.ReadU8()
		return widenUnsigned(uint64(v)), err
	case fragment.U16:
		v, err := d.reader.ReadU16()
		return widenUnsigned(uint64(v)), err
	case fragment.U24:
		v, err := d.reader.ReadU24()
		return widenUnsigned(uint64(v)), err
	case fragment.U32:
		v, err := d.reader.ReadU32()
		return widenUnsigned(uint64(v)), err
	case fragment.U64:
		v, err := d.reader.ReadU64()
		return widenUnsigned(v), err
	case fragment.U128:
		lo, hi, err := d.reader.ReadU128()
		return frame.Argument{Kind: frame.KindU128, Lo: lo, Hi: hi}, err

	case fragment.I8:
		v, err := d.reader.ReadI8()
		return widenSigned(int64(v)), err
	case fragment.I16:
		v, err := d.reader.ReadI16()
		return widenSigned(int64(v)), err
	case fragment.I32:
		v, err := d.reader.ReadI32()
		return widenSigned(int64(v)), err
	case fragment.I64:
		v, err := d.reader.ReadI64()
		return widenSigned(v), err
	case fragment.I128:
		lo, hi, err := d.reader.ReadI128()
		return frame.Argument{Kind: frame.KindI128, Lo: lo, Hi: hi}, err

	case fragment.Usize:
		v, err := d.reader.ReadLEB128()
		return widenUnsigned(v), err
	case fragment.Isize:
		u, err := d.reader.ReadLEB128()
		if err != nil {
			return frame.Argument{}, err
		}
		return widenSigned(wire.ZigZagDecode(u)), nil

	case fragment.F32:
		v, err := d.reader.ReadF32()
		return frame.Argument{Kind: frame.KindF32, F32: v}, err
	case fragment.F64:
		v, err := d.reader.ReadF64()
		return frame.Argument{Kind: frame.KindF64, F64: v}, err

	case fragment.BitField:
		return d.decodeBitField(p.Start, p.End)

	case fragment.Str:
		s, err := d.reader.ReadStr()
		return frame.Argument{Kind: frame.KindStr, Str: s}, err

	case fragment.IStr:
		return d.decodeIStr()

	case fragment.U8Slice:
		b, err := d.reader.ReadLenPrefixedBytes()
		return frame.Argument{Kind: frame.KindSlice, Slice: b}, err
	case fragment.U8Array:
		b, err := d.reader.ReadBytes(p.Len)
		return frame.Argument{Kind: frame.KindSlice, Slice: b}, err

	case fragment.Char:
		c, err := d.reader.ReadChar()
		return frame.Argument{Kind: frame.KindChar, Char: c}, err

	case fragment.Debug, fragment.Display:
		s, err := d.reader.ReadPreformatted()
		return frame.Argument{Kind: frame.KindPreformatted, Str: s}, err

	case fragment.Format:
		return d.decodeFormatArg()

	case fragment.FormatSlice:
		return d.decodeFormatSliceArg(false, 0)
	case fragment.FormatArray:
		return d.decodeFormatSliceArg(true, p.Len)

	default:
		return frame.Argument{}, errs.Malformed("decode: unsupported parameter type %s", p.Type)
	}
}

// widenUnsigned stores an unsigned value widened to 128 bits, per spec
// §3.3's "Uxx(u128) — widened integer".
func widenUnsigned(v uint64) frame.Argument {
	return frame.Argument{Kind: frame.KindU128, Lo: v, Hi: 0}
}

// widenSigned sign-extends a signed value to 128 bits (two's complement),
// per spec §3.3's "Ixx(i128) — widened integer".
func widenSigned(v int64) frame.Argument {
	hi := uint64(0)
	if v < 0 {
		hi = ^uint64(0)
	}

	return frame.Argument{Kind: frame.KindI128, Lo: uint64(v), Hi: hi}
}

func (d *decoder) decodeIStr() (frame.Argument, error) {
	idx, err := d.reader.ReadLEB128()
	if err != nil {
		return frame.Argument{}, err
	}
	if idx > 0xFFFFFFFF {
		return frame.Argument{}, errs.Malformed("decode: istr index %d exceeds 32 bits", idx)
	}

	entry, err := d.table.NonLevelEntry(uint32(idx))
	if err != nil {
		return frame.Argument{}, err
	}

	return frame.Argument{Kind: frame.KindIStr, Str: entry.Format()}, nil
}

func (d *decoder) decodeFormatArg() (frame.Argument, error) {
	raw, err := d.getFormat()
	if err != nil {
		return frame.Argument{}, err
	}

	effective, args, err := d.decodeFormatBody(raw)
	if err != nil {
		return frame.Argument{}, err
	}

	return frame.Argument{Kind: frame.KindFormat, Format: effective, Args: args}, nil
}
