// Package stats holds the descriptive statistics used by the county risk
// views: linear-interpolated percentiles, min-max normalization, means and
// outlier capping. All functions are pure and never mutate their input.
package stats

import (
	"math"
	"slices"
)

// Neutral is the value every normalized output takes when the sample has no
// spread (or contains a non-finite value).
const Neutral = 0.5

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite returns the finite values of values, in input order.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if IsFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// Percentile returns the linearly interpolated value at fraction p of the
// finite values, sorted ascending. The rank index is (n-1)*p; fractional
// indexes interpolate between the floor and ceil neighbours (the R-7 /
// NIST method 7 estimator).
//
// It returns NaN when no finite value remains or p is outside [0, 1].
func Percentile(values []float64, p float64) float64 {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}
	arr := Finite(values)
	if len(arr) == 0 {
		return math.NaN()
	}
	slices.Sort(arr)

	idx := float64(len(arr)-1) * p
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return arr[lo]
	}
	return arr[lo] + (arr[hi]-arr[lo])*(idx-float64(lo))
}

// MinMaxNormalize rescales values to [0, 1] preserving order and length.
// The caller is expected to pass finite values: if the minimum or maximum is
// not finite, or all values are equal, every output is Neutral.
func MinMaxNormalize(values []float64) []float64 {
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		vmin = math.Min(vmin, v)
		vmax = math.Max(vmax, v)
	}

	out := make([]float64, len(values))
	if !IsFinite(vmin) || !IsFinite(vmax) || vmin == vmax {
		for i := range out {
			out[i] = Neutral
		}
		return out
	}

	span := vmax - vmin
	for i, v := range values {
		out[i] = (v - vmin) / span
	}
	return out
}

// Mean returns the arithmetic mean of values, or NaN for an empty sample.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Cap limits every value to at most limit.
func Cap(values []float64, limit float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Min(v, limit)
	}
	return out
}

// Winsorize caps values at the sorted value found at index floor(q*(n-1)).
// Unlike Percentile it does not interpolate: the cap is always an observed
// value.
func Winsorize(values []float64, q float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	idx := int(math.Floor(q * float64(len(sorted)-1)))
	idx = max(0, min(idx, len(sorted)-1))
	return Cap(values, sorted[idx])
}
