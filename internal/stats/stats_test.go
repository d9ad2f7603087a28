package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		p        float64
		expected float64
	}{
		{"median of two", []float64{50, 200}, 0.5, 125},
		{"median of odd sample", []float64{3, 1, 2}, 0.5, 2},
		{"interpolated", []float64{10, 20, 30, 40}, 0.9, 37},
		{"zero is min", []float64{7, 3, 9}, 0, 3},
		{"one is max", []float64{7, 3, 9}, 1, 9},
		{"single value", []float64{42}, 0.75, 42},
		{"non-finite filtered", []float64{math.NaN(), 10, math.Inf(1), 20}, 0.5, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Percentile(tt.values, tt.p), 1e-9)
		})
	}
}

func TestPercentile_Undefined(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
	}{
		{"empty sample", nil, 0.5},
		{"only NaN", []float64{math.NaN(), math.NaN()}, 0.5},
		{"p below range", []float64{1, 2}, -0.1},
		{"p above range", []float64{1, 2}, 1.5},
		{"p NaN", []float64{1, 2}, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, math.IsNaN(Percentile(tt.values, tt.p)))
		})
	}
}

func TestPercentile_MinMaxProperty(t *testing.T) {
	samples := [][]float64{
		{1},
		{5, 5, 5},
		{-3, 12.5, 0, 99, 4},
		{1000, 2, 37, 37, 8, 0.5},
	}
	for _, s := range samples {
		lo, hi := s[0], s[0]
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		assert.Equal(t, lo, Percentile(s, 0))
		assert.Equal(t, hi, Percentile(s, 1))
	}
}

func TestPercentile_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Percentile(in, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMinMaxNormalize(t *testing.T) {
	t.Run("constant sample is neutral", func(t *testing.T) {
		assert.Equal(t, []float64{0.5, 0.5, 0.5}, MinMaxNormalize([]float64{5, 5, 5}))
	})

	t.Run("rescales to unit interval", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0.5, 1, 0.25}, MinMaxNormalize([]float64{10, 20, 30, 15}))
	})

	t.Run("non-finite value makes everything neutral", func(t *testing.T) {
		assert.Equal(t, []float64{0.5, 0.5, 0.5}, MinMaxNormalize([]float64{1, math.NaN(), 3}))
		assert.Equal(t, []float64{0.5, 0.5}, MinMaxNormalize([]float64{1, math.Inf(1)}))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MinMaxNormalize(nil))
	})

	t.Run("bounds and order preserved", func(t *testing.T) {
		in := []float64{42, -7, 13.5, 99, 0, 13.5}
		out := MinMaxNormalize(in)
		assert.Len(t, out, len(in))
		for i := range in {
			assert.GreaterOrEqual(t, out[i], 0.0)
			assert.LessOrEqual(t, out[i], 1.0)
			for j := range in {
				if in[i] < in[j] {
					assert.Less(t, out[i], out[j])
				}
			}
		}
	})
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestCap(t *testing.T) {
	assert.Equal(t, []float64{120, 500, 500}, Cap([]float64{120, 500, 731}, 500))
}

func TestWinsorize(t *testing.T) {
	values := make([]float64, 0, 101)
	for i := 100; i >= 0; i-- {
		values = append(values, float64(i))
	}
	out := Winsorize(values, 0.99)

	// floor(0.99*100) = 99 -> cap at 99
	assert.Equal(t, 99.0, out[0])
	assert.Equal(t, 99.0, out[1])
	assert.Equal(t, 0.0, out[100])
	assert.Equal(t, 100.0, values[0], "input must not be mutated")
	assert.Empty(t, Winsorize(nil, 0.99))
}
