// Package testparser is a minimal reference implementation of the external
// Format Parser spec §1 and §6.5 leave out of scope. It exists only to drive
// this module's own tests against the end-to-end scenarios of spec §8 and
// is not part of the decoder's public contract.
//
// Placeholder grammar: "{[index]=type[:hint]}" for a scalar parameter, or
// "{index=start..end[:hint]}" for a bitfield. index is optional and
// defaults to an auto-increment counter that only placeholders without an
// explicit index advance. Anything outside braces
// is literal text; "{{" and "}}" escape a literal brace.
package testparser

import (
	"strconv"
	"strings"

	"github.com/deframe/deframe/errs"
	"github.com/deframe/deframe/fragment"
)

// Parser is the package's fragment.Parser implementation.
var Parser fragment.Parser = fragment.ParserFunc(parse)

func parse(format string, mode fragment.ParseMode) ([]fragment.Fragment, error) {
	var frags []fragment.Fragment
	var lit strings.Builder
	auto := 0

	flush := func() {
		if lit.Len() > 0 {
			frags = append(frags, fragment.Literal(lit.String()))
			lit.Reset()
		}
	}

	i := 0
	for i < len(format) {
		c := format[i]

		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}

			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, errs.Malformed("testparser: unterminated placeholder in %q", format)
			}
			body := format[i+1 : i+end]
			i += end + 1

			flush()
			f, err := parsePlaceholder(body, &auto, mode)
			if err != nil {
				return nil, err
			}
			frags = append(frags, f)

		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, errs.Malformed("testparser: unmatched '}' in %q", format)

		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	return frags, nil
}

func parsePlaceholder(body string, auto *int, mode fragment.ParseMode) (fragment.Fragment, error) {
	spec, hintText, hasHint := strings.Cut(body, ":")

	idxText, typeText, hasIdx := strings.Cut(spec, "=")
	if !hasIdx {
		typeText, idxText = idxText, ""
	}

	index := *auto
	if idxText != "" {
		n, err := strconv.Atoi(idxText)
		if err != nil {
			return fragment.Fragment{}, errs.Malformed("testparser: bad index %q", idxText)
		}
		index = n
	} else {
		*auto++
	}

	hint := fragment.NoHint
	uppercase := false
	if hasHint {
		hint, uppercase = parseHint(hintText, mode)
	}

	if start, end, ok := parseBitRange(typeText); ok {
		f := fragment.Parameter(index, fragment.BitField, hint)
		f.Start, f.End, f.Uppercase = start, end, uppercase

		return f, nil
	}

	typ, arrLen, err := parseType(typeText)
	if err != nil {
		return fragment.Fragment{}, err
	}

	f := fragment.Parameter(index, typ, hint)
	f.Len, f.Uppercase = arrLen, uppercase

	return f, nil
}

func parseBitRange(s string) (start, end int, ok bool) {
	lo, hi, found := strings.Cut(s, "..")
	if !found {
		return 0, 0, false
	}

	start, err1 := strconv.Atoi(lo)
	end, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}

	return start, end, true
}

func parseType(s string) (fragment.ParamType, int, error) {
	switch s {
	case "bool":
		return fragment.Bool, 0, nil
	case "u8":
		return fragment.U8, 0, nil
	case "u16":
		return fragment.U16, 0, nil
	case "u24":
		return fragment.U24, 0, nil
	case "u32":
		return fragment.U32, 0, nil
	case "u64":
		return fragment.U64, 0, nil
	case "u128":
		return fragment.U128, 0, nil
	case "i8":
		return fragment.I8, 0, nil
	case "i16":
		return fragment.I16, 0, nil
	case "i32":
		return fragment.I32, 0, nil
	case "i64":
		return fragment.I64, 0, nil
	case "i128":
		return fragment.I128, 0, nil
	case "usize":
		return fragment.Usize, 0, nil
	case "isize":
		return fragment.Isize, 0, nil
	case "f32":
		return fragment.F32, 0, nil
	case "f64":
		return fragment.F64, 0, nil
	case "str":
		return fragment.Str, 0, nil
	case "istr":
		return fragment.IStr, 0, nil
	case "char":
		return fragment.Char, 0, nil
	case "?":
		return fragment.Format, 0, nil
	case "debug":
		return fragment.Debug, 0, nil
	case "display":
		return fragment.Display, 0, nil
	case "[u8]":
		return fragment.U8Slice, 0, nil
	case "[?]":
		return fragment.FormatSlice, 0, nil
	}

	if inner, n, ok := parseArrayType(s); ok {
		switch inner {
		case "u8":
			return fragment.U8Array, n, nil
		case "?":
			return fragment.FormatArray, n, nil
		}
	}

	return 0, 0, errs.Malformed("testparser: unknown type %q", s)
}

func parseArrayType(s string) (inner string, n int, ok bool) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return "", 0, false
	}
	body := s[1 : len(s)-1]
	typ, lenText, found := strings.Cut(body, ";")
	if !found {
		return "", 0, false
	}
	n, err := strconv.Atoi(lenText)
	if err != nil {
		return "", 0, false
	}

	return typ, n, true
}

func parseHint(s string, mode fragment.ParseMode) (fragment.Hint, bool) {
	switch s {
	case "b":
		return fragment.HintBinary, false
	case "x":
		return fragment.HintHexadecimal, false
	case "X":
		return fragment.HintHexadecimal, true
	case "a":
		return fragment.HintAscii, false
	case "µs", "us":
		return fragment.HintMicroseconds, false
	case "?":
		return fragment.HintDebug, false
	default:
		// Unknown hints are dropped silently (spec §6.5). This parser does so
		// in every mode; it does not reject them under fragment.Normal.
		return fragment.NoHint, false
	}
}
