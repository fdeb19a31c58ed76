// Package render implements the Frame Formatter of spec §4.10 and the
// DisplayFrame adapter of spec §4.11: rendering a decoded frame.Frame into
// human-readable text using the same external Format Parser the decoder
// was built against, plus the display hints carried by each parameter
// fragment.
//
// The formatter never fails (spec §4.10): hint/type mismatches fall back to
// the default rendering for that type rather than returning an error.
package render

import (
	"strings"

	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/frame"
	"github.com/deframe/deframe/internal/pool"
)

// Format renders formatStr against args using parser to re-derive the
// format string's literal/parameter fragment sequence, per spec §4.10. It
// wraps writeFormat, the routine shared by the root format, the timestamp
// format, and every nested Format/FormatSlice element.
func Format(parser fragment.Parser, formatStr string, args []frame.Argument) string {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	writeFormat(buf, parser, formatStr, args, fragment.NoHint)

	return string(buf.Bytes())
}

// writeFormat appends formatStr's rendering to buf. inheritedHint is the
// display hint a parent FormatSlice/Format parameter carried, applied to
// child parameters that have no hint of their own (spec §4.10's "nested
// Format and FormatSlice recurse with the parent hint inherited").
func writeFormat(buf *pool.ByteBuffer, parser fragment.Parser, formatStr string, args []frame.Argument, inheritedHint fragment.Hint) {
	fragments, err := parser.Parse(formatStr, fragment.ForwardsCompatible)
	if err != nil {
		// The formatter never fails: fall back to the raw format text.
		buf.MustWrite([]byte(formatStr))
		return
	}

	for _, f := range fragments {
		if f.Kind == fragment.KindLiteral {
			buf.MustWrite([]byte(f.Text))
			continue
		}

		hint := f.Hint
		if hint == fragment.NoHint {
			hint = inheritedHint
		}

		if f.Index < 0 || f.Index >= len(args) {
			continue
		}

		writeArgument(buf, parser, f, args[f.Index], hint)
	}
}

// writeArgument renders one argument according to its fragment (for its
// declared type, bit range, and array length) and the effective hint.
func writeArgument(buf *pool.ByteBuffer, parser fragment.Parser, f fragment.Fragment, arg frame.Argument, hint fragment.Hint) {
	switch f.Type {
	case fragment.Bool:
		writeBool(buf, arg)

	case fragment.BitField:
		writeBitField(buf, arg, f.Start, f.End, hint, f.Uppercase)

	case fragment.F32:
		buf.MustWrite([]byte(formatFloat32(arg.F32)))
	case fragment.F64:
		buf.MustWrite([]byte(formatFloat64(arg.F64)))

	case fragment.Str, fragment.IStr:
		writeString(buf, arg.Str, hint)

	case fragment.U8Slice, fragment.U8Array:
		writeByteSlice(buf, arg.Slice, hint)

	case fragment.Char:
		buf.MustWrite([]byte(string(arg.Char)))

	case fragment.Debug, fragment.Display:
		buf.MustWrite([]byte(arg.Str))

	case fragment.Format:
		writeFormat(buf, parser, arg.Format, arg.Args, hint)

	case fragment.FormatSlice, fragment.FormatArray:
		writeFormatSlice(buf, parser, arg.Elements, hint)

	default:
		writeInteger(buf, f.Type, arg, hint, f.Uppercase)
	}
}

func writeBool(buf *pool.ByteBuffer, arg frame.Argument) {
	if arg.BoolVal != nil && *arg.BoolVal {
		buf.MustWrite([]byte("true"))
	} else {
		buf.MustWrite([]byte("false"))
	}
}

// writeFormatSlice renders a FormatSlice/FormatArray argument as
// "[elem0, elem1, ...]", recursing with the inherited hint, except that an
// Ascii-hinted slice whose elements each wrap a single u8 is downgraded to
// the byte-string rendering (spec §4.10).
func writeFormatSlice(buf *pool.ByteBuffer, parser fragment.Parser, elements []frame.Element, hint fragment.Hint) {
	if hint == fragment.HintAscii && allSingleU8Elements(parser, elements) {
		bytes := make([]byte, 0, len(elements))
		for _, e := range elements {
			if len(e.Args) > 0 {
				bytes = append(bytes, byte(e.Args[0].Lo))
			}
		}
		writeByteSlice(buf, bytes, fragment.HintAscii)
		return
	}

	buf.MustWrite([]byte("["))
	for i, e := range elements {
		if i > 0 {
			buf.MustWrite([]byte(", "))
		}
		writeFormat(buf, parser, e.Format, e.Args, hint)
	}
	buf.MustWrite([]byte("]"))
}

// allSingleU8Elements reports whether every element's format string is a
// single U8 parameter with no literal text, the shape produced when a
// FormatSlice is really a byte sequence.
func allSingleU8Elements(parser fragment.Parser, elements []frame.Element) bool {
	for _, e := range elements {
		frags, err := parser.Parse(e.Format, fragment.ForwardsCompatible)
		if err != nil || len(frags) != 1 {
			return false
		}
		if frags[0].Kind != fragment.KindParameter || frags[0].Type != fragment.U8 {
			return false
		}
	}

	return len(elements) > 0
}

func writeString(buf *pool.ByteBuffer, s string, hint fragment.Hint) {
	if hint != fragment.HintDebug {
		buf.MustWrite([]byte(s))
		return
	}

	buf.MustWrite([]byte{'"'})
	buf.MustWrite([]byte(escapeDebugString(s)))
	buf.MustWrite([]byte{'"'})
}

func escapeDebugString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
