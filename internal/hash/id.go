// Package hash computes content fingerprints for notes and note sections.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumAll computes the xxHash64 of the concatenation of parts without
// materializing it.
func SumAll(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
