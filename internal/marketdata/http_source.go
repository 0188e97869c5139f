package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPSource fetches daily closes from a JSON time-series endpoint:
//
//	GET {BaseURL}/timeseries?symbol=VAS&as_of=2025-01-31&apikey=...
//	{"symbol":"VAS","prices":[{"date":"2025-01-30","close":98.1}, ...]}
type HTTPSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPSource creates an HTTP time-series source with a bounded client timeout.
func NewHTTPSource(baseURL, apiKey string) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ TimeSeriesSource = (*HTTPSource)(nil)

type timeSeriesResponse struct {
	Symbol string `json:"symbol"`
	Prices []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"prices"`
	Error string `json:"error,omitempty"`
}

// Fetch requests the series and returns closes oldest first.
func (s *HTTPSource) Fetch(ctx context.Context, symbol string, asOf time.Time) ([]float64, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	if !asOf.IsZero() {
		q.Set("as_of", asOf.Format("2006-01-02"))
	}
	if s.APIKey != "" {
		q.Set("apikey", s.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/timeseries?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s not found", ErrMissingData, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, string(body))
	}

	var payload timeSeriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: provider error: %s", ErrTransport, payload.Error)
	}

	points := make([]PricePoint, 0, len(payload.Prices))
	for _, p := range payload.Prices {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrDecode, p.Date)
		}
		if p.Close <= 0 {
			return nil, fmt.Errorf("%w: non-positive close on %s", ErrDecode, p.Date)
		}
		points = append(points, PricePoint{Date: d, Close: p.Close})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty series for %s", ErrDecode, symbol)
	}
	return closesUpTo(points, asOf), nil
}
