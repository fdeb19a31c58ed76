// Package symtab implements the Symbol Table data model of spec §3.1: an
// immutable mapping from a small integer log-site index to a table entry
// carrying a severity/role tag, an interned format string, and a raw symbol
// name kept opaque for diagnostics.
package symtab

import (
	"fmt"

	"github.com/deframe/deframe/errs"
	"github.com/deframe/deframe/internal/hash"
	"github.com/deframe/deframe/internal/options"
	"github.com/deframe/deframe/level"
)

// Tag classifies a table entry. The five level tags (TagTrace..TagError)
// correspond 1:1 with level.Level; the others carry no level.
type Tag uint8

const (
	TagPrim      Tag = iota // TagPrim marks a leaf scalar format (e.g. a primitive's Display impl).
	TagDerived              // TagDerived marks a derived/structural format (enums, derive-generated Debug).
	TagWrite                // TagWrite marks a format produced by a custom Format impl.
	TagStr                  // TagStr marks an interned plain string, referenced via IStr.
	TagTimestamp            // TagTimestamp marks the table's single timestamp format, if any.
	TagTrace                // TagTrace is a level-bearing entry at level.Trace.
	TagDebug                // TagDebug is a level-bearing entry at level.Debug.
	TagInfo                 // TagInfo is a level-bearing entry at level.Info.
	TagWarn                 // TagWarn is a level-bearing entry at level.Warn.
	TagError                // TagError is a level-bearing entry at level.Error.
)

// String names a Tag for diagnostics.
func (t Tag) String() string {
	switch t {
	case TagPrim:
		return "Prim"
	case TagDerived:
		return "Derived"
	case TagWrite:
		return "Write"
	case TagStr:
		return "Str"
	case TagTimestamp:
		return "Timestamp"
	case TagTrace:
		return "Trace"
	case TagDebug:
		return "Debug"
	case TagInfo:
		return "Info"
	case TagWarn:
		return "Warn"
	case TagError:
		return "Error"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Level returns the tag's level and true if the tag is level-bearing.
func (t Tag) Level() (level.Level, bool) {
	switch t {
	case TagTrace:
		return level.Trace, true
	case TagDebug:
		return level.Debug, true
	case TagInfo:
		return level.Info, true
	case TagWarn:
		return level.Warn, true
	case TagError:
		return level.Error, true
	default:
		return 0, false
	}
}

// Entry is one symbol-table record. Entries are immutable once placed in a
// Table.
type Entry struct {
	tag    Tag
	format string
	symbol string
	hash   uint64
}

// NewEntry constructs an Entry. symbol is the raw, opaque symbol name kept
// only for diagnostics (spec §3.1, §6.2); the decoder never interprets it.
func NewEntry(tag Tag, format, symbol string) Entry {
	return Entry{tag: tag, format: format, symbol: symbol, hash: hash.ID(symbol + "\x00" + format)}
}

// Tag returns the entry's tag.
func (e Entry) Tag() Tag { return e.tag }

// Format returns the entry's interned format string.
func (e Entry) Format() string { return e.format }

// Symbol returns the entry's raw symbol name, opaque to the decoder and
// exposed only for diagnostics.
func (e Entry) Symbol() string { return e.symbol }

// Level returns the entry's level and true if its tag is level-bearing.
func (e Entry) Level() (level.Level, bool) { return e.tag.Level() }

// Table is the immutable index → Entry mapping, plus an optional dedicated
// timestamp entry, per spec §3.1.
type Table struct {
	entries   map[uint32]Entry
	indices   []uint32 // map iteration order captured at NewTable, for stable iteration
	timestamp *Entry
}

// tableConfig is the private target functional options apply against; it is
// never exposed outside this package, matching the teacher's
// NewXxxConfig/Option[T] split (internal/options).
type tableConfig struct {
	timestamp *Entry
}

// Option configures a Table at construction time.
type Option = options.Option[*tableConfig]

// WithTimestamp installs the table's dedicated timestamp entry (spec §3.1).
// The entry's tag must be TagTimestamp.
func WithTimestamp(format, symbol string) Option {
	return options.NoError(func(c *tableConfig) {
		e := NewEntry(TagTimestamp, format, symbol)
		c.timestamp = &e
	})
}

// NewTable builds a Table from a pre-built index → Entry mapping, per spec
// §6.2's consumer-facing builder. It rejects two distinct indices whose
// (symbol, format) pairs hash identically, including the same pair
// registered twice (a construction-time integrity check; see
// internal/hash), since such a collision would make Entry.Symbol diagnostics
// ambiguous.
func NewTable(entries map[uint32]Entry, opts ...Option) (*Table, error) {
	cfg := &tableConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	seen := make(map[uint64]uint32, len(entries))
	indices := make([]uint32, 0, len(entries))
	for idx, e := range entries {
		if prior, ok := seen[e.hash]; ok && prior != idx {
			return nil, errs.Malformed("symtab: entries %d and %d hash identically for symbol %q", prior, idx, e.symbol)
		}
		seen[e.hash] = idx
		indices = append(indices, idx)
	}

	return &Table{entries: entries, indices: indices, timestamp: cfg.timestamp}, nil
}

// Lookup returns the entry at idx, or false if no such entry exists.
func (t *Table) Lookup(idx uint32) (Entry, bool) {
	e, ok := t.entries[idx]
	return e, ok
}

// LevelEntry returns the entry at idx, requiring it to be level-bearing
// (spec §4.4 step 3). It returns errs.ErrMalformed otherwise.
func (t *Table) LevelEntry(idx uint32) (Entry, error) {
	e, ok := t.entries[idx]
	if !ok {
		return Entry{}, errs.Malformed("symtab: no entry at index %d", idx)
	}
	if _, ok := e.Level(); !ok {
		return Entry{}, errs.Malformed("symtab: entry %d (tag %s) is not level-bearing", idx, e.tag)
	}

	return e, nil
}

// NonLevelEntry returns the entry at idx, requiring it NOT to be
// level-bearing (spec §4.6's Format/IStr resolution). It returns
// errs.ErrMalformed otherwise.
func (t *Table) NonLevelEntry(idx uint32) (Entry, error) {
	e, ok := t.entries[idx]
	if !ok {
		return Entry{}, errs.Malformed("symtab: no entry at index %d", idx)
	}
	if _, ok := e.Level(); ok {
		return Entry{}, errs.Malformed("symtab: entry %d (tag %s) is level-bearing", idx, e.tag)
	}

	return e, nil
}

// Timestamp returns the table's dedicated timestamp entry, if any.
func (t *Table) Timestamp() (Entry, bool) {
	if t.timestamp == nil {
		return Entry{}, false
	}

	return *t.timestamp, true
}

// Indices returns, in the order captured at construction, every index whose
// entry is level-bearing — for callers that want to enumerate log sites
// (spec §6.2). Since entries is supplied as a map, this order reflects Go's
// map iteration at NewTable time, not caller insertion order; it is stable
// across repeated calls on the same Table but not meaningful as a sequence.
func (t *Table) Indices() []uint32 {
	out := make([]uint32, 0, len(t.indices))
	for _, idx := range t.indices {
		if _, ok := t.entries[idx].Level(); ok {
			out = append(out, idx)
		}
	}

	return out
}

// Symbols returns, in the same order as Indices, every entry's raw symbol
// name — for diagnostics (spec §6.2).
func (t *Table) Symbols() []string {
	out := make([]string, 0, len(t.indices))
	for _, idx := range t.indices {
		out = append(out, t.entries[idx].symbol)
	}

	return out
}
