// Package server exposes the poverty guideline calculator over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/poverty-level/internal/config"
	"github.com/iwvelando/poverty-level/internal/report"
	"github.com/iwvelando/poverty-level/pkg/constants"
	"github.com/iwvelando/poverty-level/pkg/format"
	"github.com/iwvelando/poverty-level/pkg/fpl"
	"github.com/iwvelando/poverty-level/pkg/output"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

const shutdownTimeout = 10 * time.Second

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the web UI and guideline API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	return newHandler(logger, maxUploadSize, version).routes()
}

func newHandler(logger *zap.Logger, maxUploadSize int64, version string) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	return &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, now: time.Now}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()

	// Single household calculation
	mux.HandleFunc("/api/guideline", h.handleGuideline)

	// Batch report from an uploaded configuration file
	mux.HandleFunc("/api/report", h.handleReport)

	// Reference table for a year
	mux.HandleFunc("/api/table", h.handleTable)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

// Run serves the API on cfg.Address until ctx is cancelled.
func Run(ctx context.Context, logger *zap.Logger, cfg *Config, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           NewHandler(logger, cfg.UploadSizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down server", zap.String("op", "server.Run"))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

type guidelineRequest struct {
	State           string `json:"state"`
	Year            *int   `json:"year,omitempty"`
	HouseholdSize   int    `json:"householdSize"`
	HouseholdIncome int    `json:"householdIncome"`
	Precision       *int   `json:"precision,omitempty"`
}

type guidelineResponse struct {
	fpl.Result
	GuidelineFormatted string `json:"guidelineFormatted"`
}

type reportResponse struct {
	Results  []report.Result `json:"results"`
	CSV      string          `json:"csv"`
	Warnings []string        `json:"warnings,omitempty"`
	Duration string          `json:"duration"`
}

type tableResponse struct {
	Year   int             `json:"year"`
	Groups []groupResponse `json:"groups"`
}

type groupResponse struct {
	Group            string `json:"group"`
	Sizes            []int  `json:"sizes"`
	AdditionalPerson int    `json:"additionalPerson"`
}

func (h *handler) handleGuideline(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGuideline"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req guidelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	year := h.now().Year()
	if req.Year != nil {
		year = *req.Year
	}
	precision := fpl.DefaultPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	p, err := fpl.NewForYear(req.State, req.HouseholdIncome, req.HouseholdSize, year)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := p.Summary(precision)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.logger.Debug("guideline computed",
		zap.String("op", op),
		zap.String("state", result.State),
		zap.Int("year", result.Year),
		zap.Int("householdSize", result.HouseholdSize),
		zap.Int("guideline", result.Guideline),
	)

	h.writeJSON(w, http.StatusOK, guidelineResponse{
		Result:             result,
		GuidelineFormatted: format.Currency(result.Guideline),
	})
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	results, err := report.EvaluateWithFixedTime(h.logger, *cfg, h.now())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("report computed",
		zap.String("op", op),
		zap.Int("households", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, reportResponse{
		Results:  results,
		CSV:      output.CsvString(results),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleTable(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTable"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	year := constants.LatestSupportedYear
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", raw), op)
			return
		}
		year = parsed
	}

	table, err := fpl.TableForYear(year)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error(), op)
		return
	}

	response := tableResponse{Year: table.Year}
	for _, group := range []fpl.StateGroup{fpl.Contiguous, fpl.Alaska, fpl.Hawaii} {
		guidelines := table.Groups[group]
		response.Groups = append(response.Groups, groupResponse{
			Group:            group.String(),
			Sizes:            append([]int(nil), guidelines.Sizes[:]...),
			AdditionalPerson: guidelines.AdditionalPerson,
		})
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON buffers the encoded payload; nothing is written to w until
// encoding succeeds.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"failed to encode response"}`+"\n")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
