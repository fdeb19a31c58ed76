// Package frame implements the decoder's output record types, per spec §3.3
// (Argument) and §3.4 (Frame): an immutable tree of decoded arguments
// attached to a level, a monotonic log index, an optional timestamp, and
// the borrowed format strings that describe how to render them.
package frame

import (
	"github.com/deframe/deframe/level"
)

// ArgKind discriminates the Argument variants of spec §3.3.
type ArgKind uint8

const (
	KindBool ArgKind = iota
	KindU128       // widened unsigned integer, stored as (Lo, Hi) uint64 halves
	KindI128       // widened signed integer, stored as (Lo, Hi) uint64 halves, two's complement
	KindF32
	KindF64
	KindStr         // owned string, length-prefixed from the stream
	KindIStr        // interned string, borrowed from the table
	KindFormat      // nested structured value
	KindFormatSlice // heterogeneous-per-element, usually-homogeneous sequence
	KindSlice       // raw bytes
	KindChar
	KindPreformatted // a preformatted Debug/Display image produced on device
)

// Element is one decoded element of a FormatSlice/FormatArray: its own
// format string (borrowed from the table or supplied via Use-mode) and its
// decoded arguments.
type Element struct {
	Format string
	Args   []Argument
}

// Argument is a decoded, tagged value (spec §3.3).
//
// Only the fields relevant to Kind are populated; the rest are zero.
// BoolVal is a pointer so that a Bool argument can be appended to the
// decoder's packed-boolean pending list before its byte has arrived on the
// wire and patched in place once the compression byte is read (spec §4.5,
// §9's shared-cell design note) — Go's garbage collector makes a bare
// pointer sufficient where a non-GC'd implementation would need an arena.
type Argument struct {
	Kind ArgKind

	BoolVal *bool

	Lo, Hi uint64 // KindU128/KindI128

	F32 float32
	F64 float64

	Str string // KindStr (owned) or KindIStr (borrowed) or KindPreformatted

	Format   string     // KindFormat: nested format string
	Args     []Argument // KindFormat: nested arguments
	Elements []Element  // KindFormatSlice

	Slice []byte // KindSlice

	Char rune
}

// Frame is one decoded log record (spec §3.4). Format and TimestampFormat
// are borrowed from the originating symtab.Table for the frame's lifetime;
// the table must outlive any Frame derived from it.
type Frame struct {
	Level Level

	Index uint32

	HasTimestamp    bool
	TimestampFormat string
	TimestampArgs   []Argument

	Format string
	Args   []Argument
}

// Level is a re-export of level.Level so callers that only import package
// frame still have a name for the severity type.
type Level = level.Level
