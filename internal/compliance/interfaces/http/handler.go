package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	complianceapp "fueleu-maritime/internal/compliance/application"
	compliance "fueleu-maritime/internal/compliance/domain"
	"fueleu-maritime/internal/observability/metrics"
)

// ComplianceHandler handles compliance balance APIs.
type ComplianceHandler struct {
	service *complianceapp.ComplianceService
}

// NewComplianceHandler constructs a handler.
func NewComplianceHandler(service *complianceapp.ComplianceService) (*ComplianceHandler, error) {
	if service == nil {
		return nil, errors.New("compliance handler: nil service")
	}
	return &ComplianceHandler{service: service}, nil
}

// ServeHTTP handles routes under /api/v1/compliance.
func (h *ComplianceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch path {
	case "/api/v1/compliance/cb":
		h.handleComputeCB(w, r)
	case "/api/v1/compliance/adjusted-cb":
		h.handleAdjustedCB(w, r)
	case "/api/v1/compliance/report.xlsx":
		h.handleReport(w, r, "xlsx")
	case "/api/v1/compliance/report.pdf":
		h.handleReport(w, r, "pdf")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ComplianceHandler) handleComputeCB(w http.ResponseWriter, r *http.Request) {
	year, err := requireYear(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if shipID := r.URL.Query().Get("shipId"); shipID != "" {
		record, err := h.service.ComputeForShip(r.Context(), shipID, year)
		if err != nil {
			respondComplianceError(w, err)
			return
		}
		writeJSON(w, record)
		return
	}

	records, err := h.service.ComputeAll(r.Context(), year)
	if err != nil {
		respondComplianceError(w, err)
		return
	}
	writeJSON(w, records)
}

func (h *ComplianceHandler) handleAdjustedCB(w http.ResponseWriter, r *http.Request) {
	year, err := requireYear(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if shipID := r.URL.Query().Get("shipId"); shipID != "" {
		adjusted, err := h.service.AdjustedForShip(r.Context(), shipID, year)
		if err != nil {
			respondComplianceError(w, err)
			return
		}
		writeJSON(w, adjusted)
		return
	}

	adjusted, err := h.service.AdjustedAll(r.Context(), year)
	if err != nil {
		respondComplianceError(w, err)
		return
	}
	writeJSON(w, adjusted)
}

func (h *ComplianceHandler) handleReport(w http.ResponseWriter, r *http.Request, format string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport(format, result, time.Since(start))
	}()

	year, err := requireYear(r)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.service.AdjustedAll(r.Context(), year)
	if err != nil {
		result = metrics.ResultError
		respondComplianceError(w, err)
		return
	}
	if len(records) == 0 {
		result = metrics.ResultError
		http.Error(w, fmt.Sprintf("no compliance records for year %d", year), http.StatusNotFound)
		return
	}

	var payload []byte
	var contentType, filename string
	switch format {
	case "xlsx":
		payload, err = BuildComplianceXLSX(year, records)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("compliance-%d.xlsx", year)
	case "pdf":
		payload, err = BuildCompliancePDF(year, records)
		contentType = "application/pdf"
		filename = fmt.Sprintf("compliance-%d.pdf", year)
	}
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}

func requireYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, errors.New("year query parameter is required")
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("year must be numeric, got %q", raw)
	}
	return year, nil
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func respondComplianceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, compliance.ErrNoRoutesForYear), errors.Is(err, compliance.ErrShipNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, compliance.ErrInvalidYear):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
