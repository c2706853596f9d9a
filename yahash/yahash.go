// Package yahash provides the FNV-1a based hashing used for cache keys.
package yahash

import (
	"fmt"
	"hash/fnv"
)

// FNVStringToUint64 hashes data and args with 64-bit FNV-1a. Parts are separated by
// a zero byte, so ("ab", "c") and ("a", "bc") hash differently.
//
// Example:
//
//	key := yahash.FNVStringToUint64(text, entitiesJSON, kinds)
func FNVStringToUint64(data string, args ...string) uint64 {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(data))

	for _, arg := range args {
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.Write([]byte(arg))
	}

	return hasher.Sum64()
}

// FNVStringToHex is FNVStringToUint64 formatted as a fixed width hex string.
func FNVStringToHex(data string, args ...string) string {
	return fmt.Sprintf("%016x", FNVStringToUint64(data, args...))
}
