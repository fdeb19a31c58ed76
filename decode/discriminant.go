package decode

import "github.com/deframe/deframe/errs"

// readDiscriminant reads an enum discriminant with the smallest unsigned
// width that can hold 0..=maxVariant (spec §4.8), and rejects a value
// outside that range.
func (d *decoder) readDiscriminant(maxVariant int) (int, error) {
	var v uint64
	var err error

	switch {
	case maxVariant <= 0xFF:
		var u8 byte
		u8, err = d.reader.ReadU8()
		v = uint64(u8)
	case maxVariant <= 0xFFFF:
		var u16 uint16
		u16, err = d.reader.ReadU16()
		v = uint64(u16)
	case maxVariant <= 0xFFFFFFFF:
		var u32 uint32
		u32, err = d.reader.ReadU32()
		v = uint64(u32)
	default:
		v, err = d.reader.ReadU64()
	}
	if err != nil {
		return 0, err
	}

	if v > uint64(maxVariant) {
		return 0, errs.Malformed("decode: discriminant %d exceeds %d variants", v, maxVariant+1)
	}

	return int(v), nil
}
