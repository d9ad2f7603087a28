package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/aqi-risk-service/internal/dashboard"
)

// intParam returns the named query parameter, or def when it is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", dashboard.ErrInvalidQuery, name)
	}
	return n, nil
}

func yearRange(r *http.Request) (dashboard.YearRange, error) {
	lo, err := intParam(r, "year_min", 0)
	if err != nil {
		return dashboard.YearRange{}, err
	}
	hi, err := intParam(r, "year_max", 0)
	if err != nil {
		return dashboard.YearRange{}, err
	}
	return dashboard.YearRange{Min: lo, Max: hi}, nil
}

func topParam(r *http.Request) (int, error) {
	return intParam(r, "top", dashboard.DefaultTopN)
}

func stateParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("state"))
}

func rankingQuery(r *http.Request) (dashboard.RankingQuery, error) {
	top, err := topParam(r)
	if err != nil {
		return dashboard.RankingQuery{}, err
	}
	return dashboard.RankingQuery{State: stateParam(r), TopN: top}, nil
}

func countyParams(r *http.Request) (state, county string, err error) {
	state = stateParam(r)
	county = strings.TrimSpace(r.URL.Query().Get("county"))
	if state == "" || county == "" {
		return "", "", fmt.Errorf("%w: state and county are required", dashboard.ErrInvalidQuery)
	}
	return state, county, nil
}

// percentileParam returns the requested percentile (0-100), or the
// server's default.
func (s *Server) percentileParam(r *http.Request) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("percentile"))
	if raw == "" {
		return s.percentile, nil
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(pct) || pct < 0 || pct > 100 {
		return 0, fmt.Errorf("%w: percentile must be a number between 0 and 100", dashboard.ErrInvalidQuery)
	}
	return pct, nil
}
