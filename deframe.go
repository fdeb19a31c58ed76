// Package deframe decodes the deferred-formatting log protocol emitted by
// resource-constrained firmware: a compact binary stream in which format
// strings are never transmitted, only a small integer index into a symbol
// table known ahead of time to the host.
//
// # Basic Usage
//
// Building a table and decoding frames from it:
//
//	entries := map[uint32]symtab.Entry{
//	    0: symtab.NewEntry(symtab.TagInfo, "hello {=u8}", "app::main::HELLO"),
//	}
//	table, _ := symtab.NewTable(entries)
//
//	frame, consumed, err := deframe.Decode(stream, table, myParser)
//	if err != nil {
//	    // errs.Is(err, errs.ErrUnexpectedEOF) signals "retry with more bytes"
//	}
//	fmt.Println(render.DisplayFrame(myParser, frame, true))
//
// # Package Structure
//
// This package is a thin convenience wrapper over decode.Decode and
// render.Format/DisplayFrame. For direct control over symbol-table
// construction, wire reading, or rendering, use the symtab, wire, decode, and
// render packages directly.
package deframe

import (
	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/frame"
	"github.com/deframe/deframe/symtab"

	"github.com/deframe/deframe/decode"
	"github.com/deframe/deframe/render"
	"github.com/deframe/deframe/version"
)

// Version is the decoder's compiled-in protocol version, per spec §6.3. It
// is a re-export of version.Current for callers that only import the root
// package.
const Version = version.Current

// Decode implements the Decode Entry Point of spec §6.1: it reads exactly
// one frame from data against table, returning the number of bytes
// consumed. On errs.ErrUnexpectedEOF the caller may retry with a larger
// buffer; on errs.ErrMalformed the prefix is unrecoverably invalid.
func Decode(data []byte, table *symtab.Table, parser fragment.Parser) (frame.Frame, int, error) {
	return decode.Decode(data, table, parser)
}

// Format renders a frame's message (without level or timestamp) per spec
// §4.10.
func Format(parser fragment.Parser, f frame.Frame) string {
	return render.Format(parser, f.Format, f.Args)
}

// Display renders a frame per spec §4.11: timestamp, level, message.
func Display(parser fragment.Parser, f frame.Frame, colored bool) string {
	return render.DisplayFrame(parser, f, colored)
}

// CheckVersion compares firmwareVersion against Version, per spec §4.1.
func CheckVersion(firmwareVersion string) (string, bool) {
	return version.Check(firmwareVersion)
}
