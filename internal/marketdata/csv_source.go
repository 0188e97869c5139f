package marketdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CSVSource reads daily closing prices from <Dir>/<SYMBOL>.csv.
// Files carry a header row followed by date,close rows (date as YYYY-MM-DD).
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a CSV-backed time-series source.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

var _ TimeSeriesSource = (*CSVSource)(nil)

// Fetch loads the symbol's file and returns closes dated on or before asOf.
func (s *CSVSource) Fetch(ctx context.Context, symbol string, asOf time.Time) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filePath := filepath.Join(s.Dir, strings.ToUpper(symbol)+".csv")
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no price file for %s", ErrMissingData, symbol)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrTransport, filePath, err)
	}
	defer file.Close()

	points, err := readPriceCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return closesUpTo(points, asOf), nil
}

// readPriceCSV parses date,close rows. Malformed rows are skipped; a file with
// no usable rows is a decode failure.
func readPriceCSV(r io.Reader) ([]PricePoint, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrDecode, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: invalid CSV format: expected at least 2 columns", ErrDecode)
	}

	var points []PricePoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read data row: %v", ErrDecode, err)
		}
		if len(record) < 2 {
			continue // Skip malformed rows
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil || closePrice <= 0 {
			continue
		}
		points = append(points, PricePoint{Date: date, Close: closePrice})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no valid price rows", ErrDecode)
	}
	return points, nil
}

// closesUpTo sorts points oldest first and keeps closes on or before asOf.
func closesUpTo(points []PricePoint, asOf time.Time) []float64 {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if !asOf.IsZero() && p.Date.After(asOf) {
			break
		}
		out = append(out, p.Close)
	}
	return out
}
