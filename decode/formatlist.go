package decode

import (
	"github.com/deframe/deframe/errs"
	"github.com/deframe/deframe/frame"
)

// getFormat implements spec §4.6's get_format: if a Use-mode format list is
// active and not yet exhausted, yield its next string and advance its
// cursor; otherwise read a LEB128 index from the stream, look it up as a
// non-level entry, and — if a Build-mode list is active and the decoder is
// not currently below an enum — append it to the build list.
func (d *decoder) getFormat() (string, error) {
	if d.mode == modeUse && d.useCursor < len(d.useList) {
		s := d.useList[d.useCursor]
		d.useCursor++

		return s, nil
	}

	idx, err := d.reader.ReadLEB128()
	if err != nil {
		return "", err
	}
	if idx > 0xFFFFFFFF {
		return "", errs.Malformed("decode: format index %d exceeds 32 bits", idx)
	}

	entry, err := d.table.NonLevelEntry(uint32(idx))
	if err != nil {
		return "", err
	}

	if d.mode == modeBuild && !d.belowEnum {
		d.buildList = append(d.buildList, entry.Format())
	}

	return entry.Format(), nil
}

// decodeFormatSliceArg implements spec §4.7. A FormatSlice payload is
// LEB128 count followed by count elements (an empty slice consumes no
// further bytes); a FormatArray is the same with a caller-supplied count and
// no length prefix.
//
// The first element resolves its format string through the normal
// getFormat path (respecting whatever Build/Use state the caller is already
// in) and decodes under a freshly-scoped Build phase. Subsequent elements
// replay that scoped build list as a Use list whose cursor resets to 0 for
// each element, since every element's shape mirrors the first (spec §4.7).
func (d *decoder) decodeFormatSliceArg(isArray bool, arrayLen int) (frame.Argument, error) {
	count := arrayLen
	if !isArray {
		n, err := d.reader.ReadLEB128()
		if err != nil {
			return frame.Argument{}, err
		}
		count = int(n)
	}

	if count == 0 {
		return frame.Argument{Kind: frame.KindFormatSlice, Elements: nil}, nil
	}

	elements := make([]frame.Element, count)

	raw, err := d.getFormat()
	if err != nil {
		return frame.Argument{}, err
	}

	savedMode, savedBuild, savedUse, savedCursor := d.mode, d.buildList, d.useList, d.useCursor
	d.mode = modeBuild
	d.buildList = nil

	effective, args, err := d.decodeFormatBody(raw)
	if err != nil {
		d.mode, d.buildList, d.useList, d.useCursor = savedMode, savedBuild, savedUse, savedCursor
		return frame.Argument{}, err
	}
	elements[0] = frame.Element{Format: effective, Args: args}

	innerBuilt := d.buildList

	for i := 1; i < count; i++ {
		d.mode = modeUse
		d.useList = innerBuilt
		d.useCursor = 0

		effective, args, err := d.decodeFormatBody(raw)
		if err != nil {
			d.mode, d.buildList, d.useList, d.useCursor = savedMode, savedBuild, savedUse, savedCursor
			return frame.Argument{}, err
		}
		elements[i] = frame.Element{Format: effective, Args: args}
	}

	d.mode, d.buildList, d.useList, d.useCursor = savedMode, savedBuild, savedUse, savedCursor

	return frame.Argument{Kind: frame.KindFormatSlice, Elements: elements}, nil
}
