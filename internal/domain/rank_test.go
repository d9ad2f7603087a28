package domain

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortBy_TieBreakAndNaN(t *testing.T) {
	aggs := []CountyAggregate{
		agg("Texas", "Harris", 40, 0),
		agg("Alabama", "Mobile", math.NaN(), 0),
		agg("Ohio", "Adams", 40, 0),
		agg("Ohio", "Butler", 55, 0),
		agg("Alabama", "Baldwin", 40, 0),
	}

	got := SortBy(aggs, func(a CountyAggregate) float64 { return a.MeanMedianAQI })

	var keys []string
	for _, a := range got {
		keys = append(keys, a.Key().String())
	}
	assert.Equal(t, []string{
		"Ohio|Butler",
		"Alabama|Baldwin",
		"Ohio|Adams",
		"Texas|Harris",
		"Alabama|Mobile",
	}, keys)
	assert.Equal(t, "Texas", aggs[0].State, "input is not reordered")
}

func TestTop(t *testing.T) {
	aggs := []CountyAggregate{agg("S", "A", 1, 0), agg("S", "B", 3, 0), agg("S", "C", 2, 0)}
	score := func(a CountyAggregate) float64 { return a.MeanMedianAQI }

	top := Top(aggs, 2, score)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].County)
	assert.Equal(t, "C", top[1].County)

	assert.Len(t, Top(aggs, 0, score), 3)
	assert.Len(t, Top(aggs, 10, score), 3)
}

func TestAssignRanks_IsPermutation(t *testing.T) {
	scored := ScoreCounties([]CountyAggregate{
		agg("S", "A", 10, 10),
		agg("S", "B", 10, 30),
		agg("T", "A", 50, 30),
		agg("R", "Z", 20, 5),
		agg("S", "C", math.NaN(), 1),
	})

	rankSets := map[string][]int{}
	for _, s := range scored {
		rankSets["chronic"] = append(rankSets["chronic"], s.ChronicRank)
		rankSets["acute"] = append(rankSets["acute"], s.AcuteRank)
		rankSets["severity"] = append(rankSets["severity"], s.SeverityRank)
	}
	for name, ranks := range rankSets {
		slices.Sort(ranks)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ranks, name)
	}

	assert.Equal(t, 1, scored[2].ChronicRank)
	assert.Equal(t, 2, scored[3].ChronicRank)
	assert.Equal(t, 3, scored[0].ChronicRank, "ties rank by county")
	assert.Equal(t, 4, scored[1].ChronicRank)
	assert.Equal(t, 5, scored[4].ChronicRank, "NaN ranks last")
}
