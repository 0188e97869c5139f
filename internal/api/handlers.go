// Package api exposes the projection engine over HTTP.
//
//	POST /api/projections          run a projection for a JSON or YAML snapshot
//	GET  /api/projections/example  example snapshot to start from
//	GET  /api/formats              report formats for ?format=
//	GET  /healthz                  liveness
//	GET  /metrics                  Prometheus metrics
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rpgo/fire-calculator/internal/calculation"
	"github.com/rpgo/fire-calculator/internal/config"
	"github.com/rpgo/fire-calculator/internal/domain"
	"github.com/rpgo/fire-calculator/internal/marketdata"
	"github.com/rpgo/fire-calculator/internal/output"
)

// maxSnapshotBytes bounds the request body.
const maxSnapshotBytes = 1 << 20

// Runner runs one projection. *calculation.RetirementEngine satisfies it.
type Runner interface {
	Run(ctx context.Context, snap domain.Snapshot) (*domain.RetirementResult, error)
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	Engine  Runner
	Parser  *config.InputParser
	Logger  calculation.Logger
	Timeout time.Duration
}

// NewHandler creates a handler around engine.
func NewHandler(engine Runner, logger calculation.Logger) *Handler {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Handler{
		Engine:  engine,
		Parser:  config.NewInputParser(),
		Logger:  logger,
		Timeout: 2 * time.Minute,
	}
}

// CreateProjection decodes a snapshot and returns its projection.
// The response is JSON unless ?format= names another report format.
func (h *Handler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		writeError(w, http.StatusBadRequest, "unsupported format", output.ErrUnsupportedFormat)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "failed to read snapshot", err)
		return
	}
	snap, err := h.Parser.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot", err)
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	result, err := h.Engine.Run(ctx, *snap)
	if err != nil {
		h.Logger.Warnf("projection failed: %v", err)
		writeEngineError(w, err)
		return
	}

	if formatter.Name() == "json" {
		writeJSON(w, http.StatusOK, result)
		return
	}
	var buf bytes.Buffer
	if err := output.GenerateReport(&buf, result, formatter.Name()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to format result", err)
		return
	}
	w.Header().Set("Content-Type", contentType(formatter))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ExampleSnapshot returns the built-in example snapshot.
func (h *Handler) ExampleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Parser.CreateExampleSnapshot())
}

// ListFormats returns the available report formats.
func (h *Handler) ListFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormatsResponse{
		Formats: output.AvailableFormatterNames(),
		Aliases: output.AvailableFormatAliases(),
	})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// writeEngineError maps engine failures onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var ce *marketdata.CollaboratorError
	switch {
	case errors.As(err, &ce):
		status := http.StatusBadGateway
		if ce.Kind == marketdata.KindMissingData || ce.Kind == marketdata.KindInference {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, ErrorResponse{
			Error:   "forecast acquisition failed",
			Kind:    string(ce.Kind),
			Symbol:  ce.Symbol,
			Details: err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "projection timed out", err)
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "projection cancelled", err)
	default:
		writeError(w, http.StatusInternalServerError, "projection failed", err)
	}
}

func contentType(f output.Formatter) string {
	switch f.Extension() {
	case "csv":
		return "text/csv"
	case "json":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
