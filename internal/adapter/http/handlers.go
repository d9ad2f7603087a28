package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/aqi-risk-service/internal/dashboard"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/aqi-risk-service/internal/export"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

var errNotLoaded = errors.New("record table has not been loaded yet")

type viewFunc func(t *domain.Table, r *http.Request) (any, error)

type downloadFunc func(t *domain.Table, r *http.Request) (export.Table, error)

// view wraps a JSON view with table lookup, error mapping, and metrics.
func (s *Server) view(name string, fn viewFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer s.observe(name, time.Now())

		t := s.data.Table()
		if t == nil {
			s.fail(w, name, errNotLoaded)
			return
		}
		v, err := fn(t, r)
		if err != nil {
			s.fail(w, name, err)
			return
		}
		s.metrics.ViewRequests.WithLabelValues(name, "ok").Inc()
		sharedobs.WriteJSON(w, http.StatusOK, v)
	}
}

// download wraps a CSV export. The body is encoded before anything is
// written so failures still map to a status code.
func (s *Server) download(name string, fn downloadFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer s.observe(name, time.Now())

		t := s.data.Table()
		if t == nil {
			s.fail(w, name, errNotLoaded)
			return
		}
		tbl, err := fn(t, r)
		if err != nil {
			s.fail(w, name, err)
			return
		}
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, tbl); err != nil {
			s.fail(w, name, err)
			return
		}
		s.metrics.ViewRequests.WithLabelValues(name, "ok").Inc()
		attach(w, "text/csv; charset=utf-8", tbl.FileName(), buf.Bytes())
	}
}

func (s *Server) workbook(w http.ResponseWriter, r *http.Request) {
	const name = "export_xlsx"
	defer s.observe(name, time.Now())

	t := s.data.Table()
	if t == nil {
		s.fail(w, name, errNotLoaded)
		return
	}
	pct, err := s.percentileParam(r)
	if err != nil {
		s.fail(w, name, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.BuildAll(t, pct)); err != nil {
		s.fail(w, name, err)
		return
	}
	s.metrics.ViewRequests.WithLabelValues(name, "ok").Inc()
	attach(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "county_aqi_risk.xlsx", buf.Bytes())
}

func (s *Server) observe(name string, start time.Time) {
	s.metrics.ViewDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

// fail maps err to a status code and writes a JSON error body.
func (s *Server) fail(w http.ResponseWriter, name string, err error) {
	status, outcome := http.StatusInternalServerError, "error"
	switch {
	case errors.Is(err, errNotLoaded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, dashboard.ErrInvalidQuery):
		status, outcome = http.StatusBadRequest, "invalid"
	case errors.Is(err, domain.ErrCountyNotFound), errors.Is(err, export.ErrUnknownExport):
		status, outcome = http.StatusNotFound, "not_found"
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("view failed", "view", name, "error", err)
	}
	s.metrics.ViewRequests.WithLabelValues(name, outcome).Inc()
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}

func attach(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// --- views ---

func (s *Server) years(t *domain.Table, _ *http.Request) (any, error) {
	return s.views.Years(t), nil
}

func (s *Server) states(t *domain.Table, _ *http.Request) (any, error) {
	return s.views.States(t), nil
}

func (s *Server) counties(t *domain.Table, r *http.Request) (any, error) {
	return s.views.Counties(t, r.PathValue("state")), nil
}

func (s *Server) sources(t *domain.Table, _ *http.Request) (any, error) {
	return map[string]any{
		"loaded_at": t.LoadedAt(),
		"records":   t.Len(),
		"sources":   t.Sources(),
	}, nil
}

func (s *Server) overview(t *domain.Table, r *http.Request) (any, error) {
	years, err := yearRange(r)
	if err != nil {
		return nil, err
	}
	top, err := topParam(r)
	if err != nil {
		return nil, err
	}
	pct, err := s.percentileParam(r)
	if err != nil {
		return nil, err
	}
	return s.views.Overview(t, dashboard.OverviewQuery{
		Years:      years,
		State:      stateParam(r),
		TopN:       top,
		Percentile: pct,
	})
}

func (s *Server) chronic(t *domain.Table, r *http.Request) (any, error) {
	q, err := rankingQuery(r)
	if err != nil {
		return nil, err
	}
	return s.views.Chronic(t, q)
}

func (s *Server) acute(t *domain.Table, r *http.Request) (any, error) {
	q, err := rankingQuery(r)
	if err != nil {
		return nil, err
	}
	outlier, err := dashboard.ParseOutlier(r.URL.Query().Get("outlier"))
	if err != nil {
		return nil, err
	}
	return s.views.Acute(t, dashboard.AcuteQuery{State: q.State, TopN: q.TopN, Outlier: outlier})
}

func (s *Server) severity(t *domain.Table, r *http.Request) (any, error) {
	q, err := rankingQuery(r)
	if err != nil {
		return nil, err
	}
	return s.views.Severity(t, q)
}

func (s *Server) doubleJeopardy(t *domain.Table, r *http.Request) (any, error) {
	q, err := rankingQuery(r)
	if err != nil {
		return nil, err
	}
	return s.views.DoubleJeopardy(t, q)
}

func (s *Server) drilldown(t *domain.Table, r *http.Request) (any, error) {
	state, county, err := countyParams(r)
	if err != nil {
		return nil, err
	}
	pct, err := s.percentileParam(r)
	if err != nil {
		return nil, err
	}
	return s.views.Drilldown(t, dashboard.DrilldownQuery{State: state, County: county, Percentile: pct})
}

func (s *Server) heatmap(t *domain.Table, r *http.Request) (any, error) {
	years, err := yearRange(r)
	if err != nil {
		return nil, err
	}
	return s.views.Heatmap(t, dashboard.HeatmapQuery{Years: years, Scope: r.URL.Query().Get("scope")})
}

// --- downloads ---

func (s *Server) countyRows(t *domain.Table, r *http.Request) (export.Table, error) {
	state, county, err := countyParams(r)
	if err != nil {
		return export.Table{}, err
	}
	rows, err := s.views.CountyRows(t, state, county)
	if err != nil {
		return export.Table{}, err
	}
	return export.CountyRows(rows, state, county), nil
}

func (s *Server) exportTable(t *domain.Table, r *http.Request) (export.Table, error) {
	pct, err := s.percentileParam(r)
	if err != nil {
		return export.Table{}, err
	}
	name := strings.TrimSuffix(r.PathValue("name"), ".csv")
	return export.Build(t, name, pct)
}
