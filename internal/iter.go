// Package internal holds iterator helpers shared by the nandpc packages.
package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Concat2 concatenates multiple dual-return iterators into a single iterator sequence.
// Later sequences may repeat keys of earlier ones; collecting the result
// into a map lets the later value win.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, val := range seq {
				if !yield(key, val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Sorted2 yields the pairs of seq in key order, the last value of a
// repeated key winning.
func Sorted2[K cmp.Ordered, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		all := maps.Collect(seq)
		for _, key := range slices.Sorted(maps.Keys(all)) {
			if !yield(key, all[key]) {
				return
			}
		}
	}
}
