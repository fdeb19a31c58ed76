// Package decode implements the Frame Decoder of spec §4.4-§4.9: the
// recursive interpreter that reads a log index, optionally decodes a
// timestamp, resolves a level-bearing format string, and decodes its
// parameters — managing the packed-boolean compression state and the
// nested format-slice Build/Use state machine along the way.
package decode

import (
	"strings"

	"github.com/deframe/deframe/coalesce"
	"github.com/deframe/deframe/errs"
	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/frame"
	"github.com/deframe/deframe/symtab"
	"github.com/deframe/deframe/wire"
)

// decoder carries the state of one top-level Decode call: the byte cursor,
// the table it resolves indices against, the external format-string parser,
// the packed-boolean pending block (spec §4.5), and the format-list
// Build/Use state machine (spec §4.6-§4.7).
type decoder struct {
	reader *wire.Reader
	table  *symtab.Table
	parser fragment.Parser

	pending []*bool

	mode      listMode
	buildList []string
	useList   []string
	useCursor int
	belowEnum bool
}

type listMode uint8

const (
	modeNone listMode = iota
	modeBuild
	modeUse
)

// Decode implements spec §6.1: decode(bytes, table) → (Frame, consumed) |
// UnexpectedEof | Malformed. On success consumed is exact; on failure the
// caller may not assume partial progress (spec §4.4's consumed-count
// contract).
func Decode(data []byte, table *symtab.Table, parser fragment.Parser) (frame.Frame, int, error) {
	d := &decoder{
		reader: wire.NewReader(data),
		table:  table,
		parser: parser,
	}

	f, err := d.decodeFrame()
	if err != nil {
		return frame.Frame{}, 0, err
	}

	return f, d.reader.Consumed(), nil
}

func (d *decoder) decodeFrame() (frame.Frame, error) {
	rawIdx, err := d.reader.ReadLEB128()
	if err != nil {
		return frame.Frame{}, err
	}
	if rawIdx > 0xFFFFFFFF {
		return frame.Frame{}, errs.Malformed("decode: log index %d exceeds 32 bits", rawIdx)
	}
	idx := uint32(rawIdx)

	var f frame.Frame

	if ts, ok := d.table.Timestamp(); ok {
		tsFormat, tsArgs, err := d.decodeFormatBody(ts.Format())
		if err != nil {
			return frame.Frame{}, err
		}
		f.HasTimestamp = true
		f.TimestampFormat = tsFormat
		f.TimestampArgs = tsArgs
	}

	entry, err := d.table.LevelEntry(idx)
	if err != nil {
		return frame.Frame{}, err
	}

	lvl, _ := entry.Level()
	f.Level = lvl
	f.Index = idx

	rootFormat, rootArgs, err := d.decodeFormatBody(entry.Format())
	if err != nil {
		return frame.Frame{}, err
	}
	f.Format = rootFormat
	f.Args = rootArgs

	if len(d.pending) > 0 {
		if err := d.flushPackedBools(); err != nil {
			return frame.Frame{}, err
		}
	}

	return f, nil
}

// decodeFormatBody decodes raw's parameters against the stream, per spec
// §4.8: if raw contains '|' it is an enum, and a discriminant selects one
// of its "|"-separated variants before that variant's own parameters are
// decoded with belowEnum asserted for the duration. It returns the format
// string actually rendered (the whole of raw, or the selected variant) and
// its decoded arguments.
func (d *decoder) decodeFormatBody(raw string) (string, []frame.Argument, error) {
	if !strings.Contains(raw, "|") {
		args, err := d.decodeParamsForFormat(raw)
		return raw, args, err
	}

	variants := strings.Split(raw, "|")
	discriminant, err := d.readDiscriminant(len(variants) - 1)
	if err != nil {
		return "", nil, err
	}

	variant := variants[discriminant]

	saved := d.belowEnum
	d.belowEnum = true
	args, err := d.decodeParamsForFormat(variant)
	d.belowEnum = saved
	if err != nil {
		return "", nil, err
	}

	return variant, args, nil
}

// decodeParamsForFormat parses formatStr via the external Format Parser,
// coalesces its bitfield parameters (package coalesce), and decodes each
// remaining parameter's wire value in ascending index order.
func (d *decoder) decodeParamsForFormat(formatStr string) ([]frame.Argument, error) {
	fragments, err := d.parser.Parse(formatStr, fragment.ForwardsCompatible)
	if err != nil {
		return nil, errs.Malformed("decode: parsing format %q: %v", formatStr, err)
	}

	params := coalesce.Coalesce(fragments)

	args := make([]frame.Argument, 0, len(params))
	for _, p := range params {
		arg, err := d.decodeArgument(p)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return args, nil
}
