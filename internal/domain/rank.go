package domain

import (
	"cmp"
	"math"
	"slices"
)

// Keyed is implemented by every per-county type.
type Keyed interface {
	Key() CountyKey
}

// compareDesc orders by score descending with NaN last, then by state and
// county ascending.
func compareDesc[T Keyed](score func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		sa, sb := score(a), score(b)
		aNaN, bNaN := math.IsNaN(sa), math.IsNaN(sb)
		switch {
		case aNaN && !bNaN:
			return 1
		case !aNaN && bNaN:
			return -1
		case !aNaN && !bNaN && sa != sb:
			return cmp.Compare(sb, sa)
		}
		return compareKeys(a.Key(), b.Key())
	}
}

// SortBy returns a copy of items sorted by score descending. Ties are broken
// by state, then county, ascending; NaN scores sort last.
func SortBy[T Keyed](items []T, score func(T) float64) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, compareDesc(score))
	return out
}

// Top returns the first n items of SortBy. A non-positive n returns all.
func Top[T Keyed](items []T, n int, score func(T) float64) []T {
	out := SortBy(items, score)
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// AssignRanks ranks items in place by score descending using the SortBy
// order: rank = position + 1, so the ranks are a permutation of 1..N.
func AssignRanks[T Keyed](items []T, score func(T) float64, set func(*T, int)) {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	less := compareDesc(score)
	slices.SortStableFunc(idx, func(a, b int) int { return less(items[a], items[b]) })
	for pos, i := range idx {
		set(&items[i], pos+1)
	}
}
