package coalesce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deframe/deframe/coalesce"
	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/fragment/testparser"
)

func parse(t *testing.T, format string) []fragment.Fragment {
	t.Helper()
	frags, err := testparser.Parser.Parse(format, fragment.ForwardsCompatible)
	require.NoError(t, err)
	return frags
}

func TestCoalesceMergesBitfieldsAtSameIndex(t *testing.T) {
	frags := parse(t, "bitfields {0=0..7:b} {0=9..14:b} {1=8..10:b}")
	out := coalesce.Coalesce(frags)

	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].Index)
	assert.Equal(t, fragment.BitField, out[0].Type)
	assert.Equal(t, 0, out[0].Start)
	assert.Equal(t, 14, out[0].End)

	assert.Equal(t, 1, out[1].Index)
	assert.Equal(t, fragment.BitField, out[1].Type)
	assert.Equal(t, 8, out[1].Start)
	assert.Equal(t, 10, out[1].End)
}

func TestCoalesceOneEntryPerDistinctIndex(t *testing.T) {
	frags := parse(t, "{=u8} {=u16} {=u8}")
	out := coalesce.Coalesce(frags)
	require.Len(t, out, 3)
	for i, p := range out {
		assert.Equal(t, i, p.Index)
	}
}

func TestCoalesceMixedBitfieldAndNonBitfieldKeepsNonBitfieldType(t *testing.T) {
	// index 0 appears once as a plain U8 and once as a bitfield reference;
	// the invariant requires the coalesced type be "one of the original
	// types" in this mixed case, not a union span.
	frags := []fragment.Fragment{
		fragment.Parameter(0, fragment.U8, fragment.NoHint),
		func() fragment.Fragment {
			f := fragment.Parameter(0, fragment.BitField, fragment.NoHint)
			f.Start, f.End = 0, 4
			return f
		}(),
	}

	out := coalesce.Coalesce(frags)
	require.Len(t, out, 1)
	assert.Equal(t, fragment.U8, out[0].Type)
}

func TestCoalesceIgnoresLiterals(t *testing.T) {
	frags := parse(t, "no params here")
	out := coalesce.Coalesce(frags)
	assert.Empty(t, out)
}
