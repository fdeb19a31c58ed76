package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string. Package symtab uses it to
// derive a log entry's diagnostic hash from its symbol and format string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
