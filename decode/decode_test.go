package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deframe/deframe/decode"
	"github.com/deframe/deframe/errs"
	"github.com/deframe/deframe/fragment/testparser"
	"github.com/deframe/deframe/level"
	"github.com/deframe/deframe/render"
	"github.com/deframe/deframe/symtab"
)

func withTimestamp(opts ...symtab.Option) []symtab.Option {
	return append([]symtab.Option{symtab.WithTimestamp("{=u8:µs}", "app::TIMESTAMP")}, opts...)
}

// Scenario 1: integers, all widths.
func TestDecodeIntegersAllWidths(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo,
			"Hello, {=u8} {=u16} {=u24} {=u32} {=u64} {=u128} {=i8} {=i16} {=i32} {=i64} {=i128}!",
			"app::HELLO"),
	}
	table, err := symtab.NewTable(entries)
	require.NoError(t, err)

	data := []byte{0, 42, 0xFF, 0xFF}
	data = append(data, 0x00, 0x00, 0x01) // u24 = 0x010000 = 65536
	data = append(data, repeat(0xFF, 4)...)
	data = append(data, repeat(0xFF, 8)...)
	data = append(data, repeat(0xFF, 16)...)
	data = append(data, 0xFF)
	data = append(data, repeat(0xFF, 2)...)
	data = append(data, repeat(0xFF, 4)...)
	data = append(data, repeat(0xFF, 8)...)
	data = append(data, repeat(0xFF, 16)...)

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.Format(testparser.Parser, f.Format, f.Args)
	assert.Equal(t, "Hello, 42 65535 65536 4294967295 18446744073709551615 340282366920938463463374607431768211455 -1 -1 -1 -1 -1!", got)
	assert.Equal(t, level.Info, f.Level)
}

func repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// Scenario 2: packed booleans with interleaved u8.
func TestDecodePackedBooleansInterleaved(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo,
			"bool overflow {=bool} {=u8} {=bool} {=bool} {=bool} {=bool} {=bool} {=bool} {=bool} {=bool}",
			"app::OVERFLOW"),
	}
	table, err := symtab.NewTable(entries, withTimestamp()...)
	require.NoError(t, err)

	data := []byte{0, 2, 0xFF, 0b0110_0001, 0b1}

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.DisplayFrame(testparser.Parser, f, false)
	assert.Equal(t, "0.000002 INFO bool overflow false 255 true true false false false false true true", got)
}

// Scenario 3: bitfields across bytes, different indices.
func TestDecodeBitfieldsAcrossBytes(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo, "bitfields {0=0..7:b} {0=9..14:b} {1=8..10:b}", "app::BITFIELDS"),
	}
	table, err := symtab.NewTable(entries, withTimestamp()...)
	require.NoError(t, err)

	data := []byte{0, 2, 0b1101_0010, 0b0110_0011, 0b1111_1111}

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.DisplayFrame(testparser.Parser, f, false)
	assert.Equal(t, "0.000002 INFO bitfields 0b1010010 0b10001 0b11", got)
}

// A bitfield whose logical span is 5 bytes must still consume a full 8-byte
// bucket read (spec §4.9's "required width (1,2,3,4; 5-8->u64; 9-16->u128)"),
// not just the 5 bytes the span itself spans -- otherwise the frame
// under-consumes and desynchronizes any trailing field.
func TestDecodeBitfieldFiveByteSpanReadsEightByteBucket(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo, "wide {0=0..40:x}", "app::WIDE"),
	}
	table, err := symtab.NewTable(entries)
	require.NoError(t, err)

	data := []byte{0, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.Format(testparser.Parser, f.Format, f.Args)
	assert.Equal(t, "wide 0x504030201", got)
}

// Scenario 4: nested Option (enum + derive).
func TestDecodeNestedEnumSome(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		4: symtab.NewEntry(symtab.TagInfo, "x={=?}", "app::X"),
		3: symtab.NewEntry(symtab.TagDerived, "None|Some({=?})", "app::Option"),
		2: symtab.NewEntry(symtab.TagDerived, "{=u8}", "app::U8"),
	}
	table, err := symtab.NewTable(entries, withTimestamp()...)
	require.NoError(t, err)

	data := []byte{4, 0, 3, 1, 2, 42}

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.DisplayFrame(testparser.Parser, f, false)
	assert.Equal(t, "0.000000 INFO x=Some(42)", got)
}

func TestDecodeNestedEnumNone(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		4: symtab.NewEntry(symtab.TagInfo, "x={=?}", "app::X"),
		3: symtab.NewEntry(symtab.TagDerived, "None|Some({=?})", "app::Option"),
		2: symtab.NewEntry(symtab.TagDerived, "{=u8}", "app::U8"),
	}
	table, err := symtab.NewTable(entries, withTimestamp()...)
	require.NoError(t, err)

	data := []byte{4, 1, 3, 0}

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.DisplayFrame(testparser.Parser, f, false)
	assert.Equal(t, "0.000001 INFO x=None", got)
}

// Scenario 5: char, including non-ASCII.
func TestDecodeCharNonASCII(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo, "Supports ASCII {=char} and Unicode {=char}", "app::CHAR"),
	}
	table, err := symtab.NewTable(entries, withTimestamp()...)
	require.NoError(t, err)

	data := []byte{0, 2, 0x61, 0, 0, 0, 0x9C, 0xF4, 0x01, 0x00}

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.DisplayFrame(testparser.Parser, f, false)
	assert.Equal(t, "0.000002 INFO Supports ASCII a and Unicode \U0001F49C", got)
}

// Scenario 6: length-prefixed Str with trailing argument.
func TestDecodeStrWithTrailingArg(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo, "Hello {=str} {=u8}", "app::STR"),
	}
	table, err := symtab.NewTable(entries, withTimestamp()...)
	require.NoError(t, err)

	data := []byte{0, 2, 5, 'W', 'o', 'r', 'l', 'd', 125}

	f, consumed, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)

	got := render.DisplayFrame(testparser.Parser, f, false)
	assert.Equal(t, "0.000002 INFO Hello World 125", got)
}

func TestDecodeUnexpectedEOFIsRetryable(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo, "{=u32}", "app::U32"),
	}
	table, err := symtab.NewTable(entries)
	require.NoError(t, err)

	_, _, err = decode.Decode([]byte{0, 1, 2}, table, testparser.Parser)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrUnexpectedEOF))
}

func TestDecodeUnknownIndexIsMalformed(t *testing.T) {
	table, err := symtab.NewTable(map[uint32]symtab.Entry{})
	require.NoError(t, err)

	_, _, err = decode.Decode([]byte{0}, table, testparser.Parser)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrMalformed))
}

func TestDecodeDeterministic(t *testing.T) {
	entries := map[uint32]symtab.Entry{
		0: symtab.NewEntry(symtab.TagInfo, "{=f64}", "app::F64"),
	}
	table, err := symtab.NewTable(entries)
	require.NoError(t, err)

	data := []byte{0, 0x18, 0x2D, 0x44, 0x54, 0xFB, 0x21, 0x09, 0x40} // pi

	f1, _, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)
	f2, _, err := decode.Decode(data, table, testparser.Parser)
	require.NoError(t, err)

	assert.Equal(t, render.Format(testparser.Parser, f1.Format, f1.Args), render.Format(testparser.Parser, f2.Format, f2.Args))
}
