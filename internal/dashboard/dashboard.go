// Package dashboard derives the data behind each dashboard page from the
// loaded record table. Every call recomputes its result from the raw
// records; nothing derived is cached.
package dashboard

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/aqi-risk-service/internal/stats"
)

// ErrInvalidQuery is returned for out-of-range view parameters.
var ErrInvalidQuery = errors.New("invalid query")

const (
	// DefaultTopN is the length of ranked lists when none is requested.
	DefaultTopN = 15
	// DefaultPercentile is the double jeopardy threshold percentile.
	DefaultPercentile = 90.0
	// AcuteCap is the display cap of the cap500 outlier mode.
	AcuteCap = 500.0
	// WinsorQuantile is the display cap quantile of the winsor1 outlier mode.
	WinsorQuantile = 0.99
)

// DefaultScatterExclusions are counties whose extreme values flatten the
// overview scatter.
var DefaultScatterExclusions = []domain.CountyKey{{State: "California", County: "Mono"}}

// Views computes dashboard data. Its zero value is not usable; call New.
type Views struct {
	exclusions []domain.CountyKey
}

// New creates Views that leave exclusions out of the overview scatter.
// A nil exclusions slice selects DefaultScatterExclusions.
func New(exclusions []domain.CountyKey) *Views {
	if exclusions == nil {
		exclusions = DefaultScatterExclusions
	}
	lowered := make([]domain.CountyKey, len(exclusions))
	for i, k := range exclusions {
		lowered[i] = lowerKey(k)
	}
	return &Views{exclusions: lowered}
}

// YearRange is an inclusive range of years. Zero bounds default to the
// table's first and last year; inverted bounds are swapped.
type YearRange struct {
	Min int
	Max int
}

func (r YearRange) resolve(t *domain.Table) YearRange {
	first, last, ok := t.YearSpan()
	if !ok {
		return r
	}
	if r.Min == 0 {
		r.Min = first
	}
	if r.Max == 0 {
		r.Max = last
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

// Outlier selects how acute values are capped for display.
type Outlier string

const (
	OutlierNone    Outlier = "none"
	OutlierCap500  Outlier = "cap500"
	OutlierWinsor1 Outlier = "winsor1"
)

// ParseOutlier validates an outlier mode. An empty string selects none.
func ParseOutlier(s string) (Outlier, error) {
	switch o := Outlier(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OutlierNone, nil
	case OutlierNone, OutlierCap500, OutlierWinsor1:
		return o, nil
	default:
		return "", fmt.Errorf("%w: unknown outlier mode %q", ErrInvalidQuery, s)
	}
}

// Apply returns the display values for values.
func (o Outlier) Apply(values []float64) []float64 {
	switch o {
	case OutlierCap500:
		return stats.Cap(values, AcuteCap)
	case OutlierWinsor1:
		return stats.Winsorize(values, WinsorQuantile)
	default:
		return append([]float64(nil), values...)
	}
}

// Thresholds mirrors domain.Thresholds with undefined values as null.
type Thresholds struct {
	Percentile float64  `json:"percentile"`
	Chronic    *float64 `json:"chronic"`
	Acute      *float64 `json:"acute"`
}

func thresholdsView(t domain.Thresholds) Thresholds {
	return Thresholds{Percentile: t.Percentile, Chronic: optional(t.Chronic), Acute: optional(t.Acute)}
}

func (v *Views) excluded(k domain.CountyKey) bool {
	k = lowerKey(k)
	for _, e := range v.exclusions {
		if e == k {
			return true
		}
	}
	return false
}

func checkPercentile(pct float64) error {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return fmt.Errorf("%w: percentile must be between 0 and 100", ErrInvalidQuery)
	}
	return nil
}

func checkTopN(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: top must not be negative", ErrInvalidQuery)
	}
	return nil
}

func lowerKey(k domain.CountyKey) domain.CountyKey {
	return domain.CountyKey{
		State:  strings.ToLower(strings.TrimSpace(k.State)),
		County: strings.ToLower(strings.TrimSpace(k.County)),
	}
}

func optional(v float64) *float64 {
	if !stats.IsFinite(v) {
		return nil
	}
	return &v
}

func medianScore(a domain.CountyAggregate) float64 { return a.MeanMedianAQI }
func maxScore(a domain.CountyAggregate) float64 { return a.MeanMaxAQI }
func severityScore(s domain.ScoredCounty) float64 { return s.Severity }
