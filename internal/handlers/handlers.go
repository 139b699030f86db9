package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"batchcalc/internal/batch"
	"batchcalc/internal/config"
	applog "batchcalc/internal/log"
	"batchcalc/internal/repository"
)

// RequestIDHeader carries the id used to correlate a request with its log lines.
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 1 << 20

var (
	repo       batch.Repository
	calculator *batch.Calculator
	defaults   = config.BatchConfig{ScaleFactor: 100, SampleSize: 5}
)

// Configure installs the shared dependencies used by the HTTP handlers. A nil
// database leaves the data-backed endpoints unavailable.
func Configure(db *gorm.DB, batchCfg config.BatchConfig) {
	if db == nil {
		repo = nil
		calculator = nil
	} else {
		r := repository.New(db)
		repo = r
		calculator = batch.NewCalculator(r)
	}
	if batchCfg.ScaleFactor > 0 {
		defaults.ScaleFactor = batchCfg.ScaleFactor
	}
	if batchCfg.SampleSize > 0 {
		defaults.SampleSize = batchCfg.SampleSize
	}
}

// RequestID attaches a request id to the request context and response headers,
// generating one when the client did not send it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := applog.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func available(w http.ResponseWriter, r *http.Request) bool {
	if calculator == nil || repo == nil {
		applog.Debug(r.Context(), "request without database", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return false
	}
	return true
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeCalculationError maps calculator and repository failures to HTTP statuses.
func writeCalculationError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, batch.ErrSingularSystem):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	case batch.IsCalculationError(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		applog.Error(ctx, "calculation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "calculation failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
