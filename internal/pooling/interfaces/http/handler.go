package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fueleu-maritime/internal/audit"
	poolapp "fueleu-maritime/internal/pooling/application"
	pooling "fueleu-maritime/internal/pooling/domain"
)

// PoolHandler handles pool creation and listing.
type PoolHandler struct {
	service     *poolapp.PoolService
	auditLogger audit.Logger
}

// NewPoolHandler constructs a handler.
func NewPoolHandler(service *poolapp.PoolService, auditLogger audit.Logger) (*PoolHandler, error) {
	if service == nil {
		return nil, errors.New("pool handler: nil service")
	}
	return &PoolHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/v1/pools.
func (h *PoolHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path != "/api/v1/pools" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *PoolHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year    json.RawMessage `json:"year"`
		Members []string        `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(req.Year) == 0 {
		http.Error(w, "year is required", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(strings.Trim(string(req.Year), `"`))
	if err != nil {
		http.Error(w, fmt.Sprintf("year must be numeric, got %s", req.Year), http.StatusBadRequest)
		return
	}
	if req.Members == nil {
		http.Error(w, "members array is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Create(r.Context(), year, req.Members)
	if err != nil {
		respondPoolError(w, err)
		return
	}
	writeJSON(w, result)
	h.logAudit(r, result.PoolID, year, req.Members)
}

func (h *PoolHandler) handleList(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("year must be numeric, got %q", raw), http.StatusBadRequest)
			return
		}
		year = parsed
	}

	pools, err := h.service.List(r.Context(), year)
	if err != nil {
		respondPoolError(w, err)
		return
	}
	if pools == nil {
		pools = []*pooling.Pool{}
	}
	writeJSON(w, pools)
}

func (h *PoolHandler) logAudit(r *http.Request, poolID string, year int, members []string) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{"year": year, "members": members})
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Action:       "pool.create",
		ResourceType: "pool",
		ResourceID:   poolID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func respondPoolError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, pooling.ErrMemberNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, pooling.ErrTooFewMembers):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pooling.ErrNegativePoolSum), errors.Is(err, pooling.ErrAllocationInvariant):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
