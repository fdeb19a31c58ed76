// Package version implements the Version Gate of spec §4.1: a compiled-in
// protocol version constant and a purely syntactic diagnostic comparing it
// against a firmware-embedded version string.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the decoder's compiled-in protocol version, per spec §6.3.
// Bump it whenever the wire grammar or symbol-table contract changes.
const Current = "1.0.0"

// Kind classifies a version string's syntactic shape, per spec §4.1.
type Kind uint8

const (
	// Semver identifies a string containing a dot or parsing as a plain
	// unsigned integer.
	Semver Kind = iota
	// Git identifies anything else, treated as a commit hash.
	Git
)

func (k Kind) String() string {
	if k == Semver {
		return "Semver"
	}

	return "Git"
}

// Classify determines a version string's Kind using the syntactic rule of
// spec §4.1: a string containing "." or one that parses as a plain unsigned
// integer is Semver; anything else is Git.
func Classify(v string) Kind {
	if strings.Contains(v, ".") {
		return Semver
	}
	if _, err := strconv.ParseUint(v, 10, 64); err == nil {
		return Semver
	}

	return Git
}

// Check compares firmwareVersion against Current per spec §4.1. It returns
// ("", true) on an exact match, or a descriptive diagnostic and false
// otherwise. The diagnostic text is tailored to the (firmware, host)
// classification pair but carries no contractual meaning beyond
// human-readability.
func Check(firmwareVersion string) (string, bool) {
	if firmwareVersion == Current {
		return "", true
	}

	fw, host := Classify(firmwareVersion), Classify(Current)

	switch {
	case fw == Semver && host == Semver:
		return fmt.Sprintf("firmware protocol version %s does not match decoder version %s", firmwareVersion, Current), false
	case fw == Git && host == Git:
		return fmt.Sprintf("firmware built from commit %s does not match decoder's expected commit %s", firmwareVersion, Current), false
	case fw == Git && host == Semver:
		return fmt.Sprintf("firmware reports commit %s but decoder expects release %s; rebuild firmware from a tagged release", firmwareVersion, Current), false
	default:
		return fmt.Sprintf("firmware reports release %s but decoder expects commit %s; rebuild the decoder from the matching commit", firmwareVersion, Current), false
	}
}
