// Package chunk partitions ordered work into store-sized groups.
package chunk

import "slices"

// Chunk splits s into consecutive groups of at most size elements.
// The concatenation of the groups equals s. Groups are capacity-capped
// sub-slices, so appending to one never writes into s.
// A size below 1 is treated as 1. An empty s yields no groups.
func Chunk[T any](s []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	if len(s) == 0 {
		return nil
	}
	groups := make([][]T, 0, (len(s)+size-1)/size)
	for group := range slices.Chunk(s, size) {
		groups = append(groups, group)
	}
	return groups
}

// Count returns the number of groups Chunk would produce.
func Count(n, size int) int {
	if size < 1 {
		size = 1
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
