// Package csvsource reads EPA annual AQI by county CSV files from local paths
// or http(s) URLs.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/aqi-risk-service/internal/config"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// Reader fetches and parses yearly sources.
type Reader struct {
	httpClient *http.Client
	logger     *slog.Logger
	attempts   int
	backoff    time.Duration
	maxBackoff time.Duration
}

// NewReader creates a Reader whose remote fetches time out after timeout.
// Remote fetches are retried on network errors and 5xx responses.
func NewReader(timeout time.Duration, logger *slog.Logger) *Reader {
	return &Reader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:     logger,
		attempts:   3,
		backoff:    200 * time.Millisecond,
		maxBackoff: 2 * time.Second,
	}
}

// Read loads every row of the source at location. The year is taken from
// the location's "_YYYY.csv" suffix, falling back to the Year column.
func (r *Reader) Read(ctx context.Context, location string) ([]domain.Record, error) {
	body, err := r.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	year, _ := domain.YearFromName(location)
	records, err := Parse(body, year, location)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return records, nil
}

func (r *Reader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !config.IsRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open source: %w", err)
		}
		return f, nil
	}

	backoff := r.backoff
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		body, retryable, err := r.fetch(ctx, location)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || attempt == r.attempts {
			break
		}
		r.logger.Debug("source fetch failed, retrying",
			"source", location, "attempt", attempt, "backoff", backoff, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			return nil, fmt.Errorf("fetch source: %w", ctx.Err())
		}
		backoff = retry.NextBackoff(backoff, r.maxBackoff)
	}
	return nil, lastErr
}

// fetch performs one GET. retryable reports whether a later attempt may succeed.
func (r *Reader) fetch(ctx context.Context, location string) (body io.ReadCloser, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("fetch source: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, resp.StatusCode >= 500, fmt.Errorf("fetch source: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp.Body, false, nil
}

// Parse reads a header row followed by data rows. A row whose field count
// differs from the header, or any other CSV syntax error, fails the whole
// file.
func Parse(rd io.Reader, year int, source string) ([]domain.Record, error) {
	cr := csv.NewReader(rd)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = normalizeHeader(header)
	cr.FieldsPerRecord = len(header)

	var records []domain.Record
	row := make(map[string]string, len(header))
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for i, name := range header {
			row[name] = fields[i]
		}
		records = append(records, domain.ParseRecord(row, year, source))
	}
	return records, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
