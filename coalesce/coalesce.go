// Package coalesce implements the Bitfield Coalescer of spec §4.3: a
// preprocessor over a parsed parameter list that merges multiple bitfield
// references to the same argument slot into one read-sized span, since the
// wire encodes each argument slot exactly once.
package coalesce

import (
	"sort"

	"github.com/deframe/deframe/fragment"
)

// Coalesce takes the parameter list parsed from one format string (literal
// fragments are ignored, matching spec §4.3's "input: parameter list") and
// merges BitField parameters that share an index into a single
// BitField(min(starts)..max(ends)) parameter, index by index in increasing
// order, with merged entries appended after the sweep. It then stable-sorts
// the whole list by index and deduplicates parameters sharing the same
// index, keeping one.
//
// The format string's literal text is unaffected: the Frame Formatter walks
// the original, uncoalesced fragment sequence (package render) and only the
// decoder's wire-read plan uses this coalesced view.
func Coalesce(fragments []fragment.Fragment) []fragment.Fragment {
	var params []fragment.Fragment
	for _, f := range fragments {
		if f.Kind == fragment.KindParameter {
			params = append(params, f)
		}
	}

	byIndex := make(map[int][]fragment.Fragment)
	for _, p := range params {
		byIndex[p.Index] = append(byIndex[p.Index], p)
	}

	indices := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	// Phase 1: sweep indices in increasing order, remove the BitField
	// occurrences at each index and replace them with one merged span,
	// appended after the sweep (spec §4.3).
	kept := make([]fragment.Fragment, 0, len(params))
	var merged []fragment.Fragment
	for _, idx := range indices {
		group := byIndex[idx]

		var bitfields, rest []fragment.Fragment
		for _, p := range group {
			if p.Type == fragment.BitField {
				bitfields = append(bitfields, p)
			} else {
				rest = append(rest, p)
			}
		}

		kept = append(kept, rest...)

		if len(bitfields) == 0 {
			continue
		}

		span := bitfields[0]
		for _, p := range bitfields[1:] {
			if p.Start < span.Start {
				span.Start = p.Start
			}
			if p.End > span.End {
				span.End = p.End
			}
		}
		merged = append(merged, span)
	}

	kept = append(kept, merged...)

	// Phase 2: stable-sort by index, then dedup keeping the first occurrence
	// per index.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Index < kept[j].Index })

	deduped := make([]fragment.Fragment, 0, len(kept))
	seen := make(map[int]bool, len(kept))
	for _, p := range kept {
		if seen[p.Index] {
			continue
		}
		seen[p.Index] = true
		deduped = append(deduped, p)
	}

	return deduped
}
