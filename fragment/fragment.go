// Package fragment defines the contract the decoder depends on for an
// external Format Parser, per spec §1 and §3.2. The parser itself — turning
// a format string literal into an ordered sequence of Fragments — is
// deliberately out of scope: this package only specifies the shapes the
// decoder consumes and the Parser interface it is constructed with.
package fragment

import "fmt"

// Kind discriminates a Fragment's two shapes.
type Kind uint8

const (
	KindLiteral   Kind = iota // KindLiteral carries literal text to copy verbatim.
	KindParameter             // KindParameter carries a positional argument reference.
)

// ParamType enumerates every wire type a Parameter fragment can carry.
type ParamType uint8

const (
	Bool ParamType = iota
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U24
	U32
	U64
	U128
	Usize
	Isize
	F32
	F64
	BitField
	Str
	IStr
	U8Slice
	U8Array
	Format
	FormatSlice
	FormatArray
	Char
	Debug
	Display
)

// String names a ParamType for diagnostics.
func (t ParamType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case I128:
		return "I128"
	case U8:
		return "U8"
	case U16:
		return "U16"
	case U24:
		return "U24"
	case U32:
		return "U32"
	case U64:
		return "U64"
	case U128:
		return "U128"
	case Usize:
		return "Usize"
	case Isize:
		return "Isize"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case BitField:
		return "BitField"
	case Str:
		return "Str"
	case IStr:
		return "IStr"
	case U8Slice:
		return "U8Slice"
	case U8Array:
		return "U8Array"
	case Format:
		return "Format"
	case FormatSlice:
		return "FormatSlice"
	case FormatArray:
		return "FormatArray"
	case Char:
		return "Char"
	case Debug:
		return "Debug"
	case Display:
		return "Display"
	default:
		return fmt.Sprintf("ParamType(%d)", uint8(t))
	}
}

// Hint is an optional display hint attached to a Parameter fragment.
type Hint uint8

const (
	NoHint Hint = iota
	HintBinary
	HintHexadecimal
	HintAscii
	HintMicroseconds
	HintDebug
)

// Fragment is either a Literal or a Parameter, per spec §3.2.
//
// Index is meaningful only for KindParameter and is the zero-based
// positional argument index; the same index may be referenced by multiple
// parameters (see the Bitfield Coalescer, package coalesce).
//
// Start/End are meaningful only when Type == BitField and give the
// half-open bit range [Start, End) the parameter extracts.
//
// Len is meaningful only when Type is U8Array or FormatArray and gives the
// fixed element count.
//
// Uppercase is meaningful only when Hint == HintHexadecimal.
type Fragment struct {
	Kind      Kind
	Text      string // literal text, set only when Kind == KindLiteral
	Index     int
	Type      ParamType
	Hint      Hint
	Uppercase bool
	Start     int
	End       int
	Len       int
}

// Literal constructs a literal-text fragment.
func Literal(text string) Fragment {
	return Fragment{Kind: KindLiteral, Text: text}
}

// Parameter constructs a positional-argument fragment.
func Parameter(index int, typ ParamType, hint Hint) Fragment {
	return Fragment{Kind: KindParameter, Index: index, Type: typ, Hint: hint}
}

// ParseMode selects the Format Parser's tolerance for unknown constructs.
type ParseMode uint8

const (
	// Normal rejects any hint or construct the parser does not recognize.
	Normal ParseMode = iota
	// ForwardsCompatible tolerates unknown display hints by dropping them,
	// per spec §6.5. The decoder always parses with this mode.
	ForwardsCompatible
)

// Parser is the external Format Parser collaborator the decoder is built
// against: a pure function from a format string and a parse mode to its
// ordered fragment sequence. Symbol-table acquisition, wire decoding, and
// rendering never implement this interface themselves — they are handed one.
type Parser interface {
	Parse(format string, mode ParseMode) ([]Fragment, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(format string, mode ParseMode) ([]Fragment, error)

// Parse implements Parser.
func (f ParserFunc) Parse(format string, mode ParseMode) ([]Fragment, error) {
	return f(format, mode)
}
