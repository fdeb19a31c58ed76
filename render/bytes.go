package render

import (
	"fmt"
	"strings"

	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/internal/pool"
)

// writeByteSlice renders a byte slice per spec §4.10: Ascii hint produces a
// quoted byte-string literal with \t \n \r \" \\ escapes (graphic ASCII
// verbatim, other bytes as \xHH); Hexadecimal/Binary hints produce
// "[v, v, ...]" with each element rendered per hint; otherwise a structural
// dump ("[v, v, ...]" in decimal).
func writeByteSlice(buf *pool.ByteBuffer, b []byte, hint fragment.Hint) {
	switch hint {
	case fragment.HintAscii:
		buf.MustWrite([]byte{'"'})
		buf.MustWrite([]byte(asciiByteString(b)))
		buf.MustWrite([]byte{'"'})
	default:
		buf.MustWrite([]byte("["))
		for i, v := range b {
			if i > 0 {
				buf.MustWrite([]byte(", "))
			}
			buf.MustWrite([]byte(formatByteElement(v, hint)))
		}
		buf.MustWrite([]byte("]"))
	}
}

func formatByteElement(v byte, hint fragment.Hint) string {
	switch hint {
	case fragment.HintBinary:
		return fmt.Sprintf("0b%b", v)
	case fragment.HintHexadecimal:
		return fmt.Sprintf("0x%02x", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// asciiByteString renders raw bytes as a quoted byte-string literal body:
// \t \n \r \" \\ escapes, graphic ASCII verbatim, other bytes as \xHH.
func asciiByteString(b []byte) string {
	var s strings.Builder
	for _, c := range b {
		switch c {
		case '\t':
			s.WriteString(`\t`)
		case '\n':
			s.WriteString(`\n`)
		case '\r':
			s.WriteString(`\r`)
		case '"':
			s.WriteString(`\"`)
		case '\\':
			s.WriteString(`\\`)
		default:
			if c >= 0x20 && c < 0x7f {
				s.WriteByte(c)
			} else {
				fmt.Fprintf(&s, `\x%02x`, c)
			}
		}
	}

	return s.String()
}
