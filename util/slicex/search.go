package slicex

import "golang.org/x/exp/constraints"

// UpperBound returns the index of the first element of the ascending-sorted
// slice s that is strictly greater than e — equivalently, the count of
// elements <= e. Used by the buffer relocation planner to look up the
// cumulative gap shift for a bufferView's original byte offset without a
// linear scan over every deleted region.
func UpperBound[T constraints.Integer | constraints.Float](s []T, e T) int {
	l, r := 0, len(s)
	for l < r {
		m := l + (r-l)/2
		if s[m] <= e {
			l = m + 1
		} else {
			r = m
		}
	}
	return l
}
