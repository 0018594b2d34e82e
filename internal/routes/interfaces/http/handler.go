package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fueleu-maritime/internal/audit"
	routeapp "fueleu-maritime/internal/routes/application"
	routes "fueleu-maritime/internal/routes/domain"
)

// RouteHandler handles route listing, baseline selection and comparison.
type RouteHandler struct {
	service     *routeapp.RouteService
	comparison  *routeapp.ComparisonService
	auditLogger audit.Logger
}

// NewRouteHandler constructs a handler.
func NewRouteHandler(service *routeapp.RouteService, comparison *routeapp.ComparisonService, auditLogger audit.Logger) (*RouteHandler, error) {
	if service == nil {
		return nil, errors.New("route handler: nil service")
	}
	if comparison == nil {
		return nil, errors.New("route handler: nil comparison service")
	}
	return &RouteHandler{service: service, comparison: comparison, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/v1/routes.
func (h *RouteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if path == "/api/v1/routes" && r.Method == http.MethodGet {
		h.handleList(w, r)
		return
	}
	if path == "/api/v1/routes/comparison" && r.Method == http.MethodGet {
		h.handleComparison(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/routes/") && strings.HasSuffix(path, "/baseline") && r.Method == http.MethodPost {
		routeID := strings.TrimSuffix(strings.TrimPrefix(path, "/api/v1/routes/"), "/baseline")
		h.handleSetBaseline(w, r, routeID)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *RouteHandler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := routes.Filter{
		VesselType: r.URL.Query().Get("vesselType"),
		FuelType:   r.URL.Query().Get("fuelType"),
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "year must be numeric", http.StatusBadRequest)
			return
		}
		filter.Year = year
	}

	page, err := parseIntQuery(r, "page")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := parseIntQuery(r, "limit")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if page > 0 && limit > 0 {
		listing, err := h.service.ListPage(r.Context(), filter, page, limit)
		if err != nil {
			respondRouteError(w, err)
			return
		}
		writeJSON(w, listing)
		return
	}

	found, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondRouteError(w, err)
		return
	}
	writeJSON(w, found)
}

func (h *RouteHandler) handleComparison(w http.ResponseWriter, r *http.Request) {
	result, err := h.comparison.CompareAll(r.Context())
	if err != nil {
		respondRouteError(w, err)
		return
	}
	writeJSON(w, result)
}

func (h *RouteHandler) handleSetBaseline(w http.ResponseWriter, r *http.Request, routeID string) {
	if routeID == "" {
		http.Error(w, "routeId is required", http.StatusBadRequest)
		return
	}
	if err := h.service.SetBaseline(r.Context(), routeID); err != nil {
		respondRouteError(w, err)
		return
	}
	writeJSON(w, map[string]any{"routeId": routeID, "isBaseline": true})
	h.logAudit(r, routeID)
}

func (h *RouteHandler) logAudit(r *http.Request, routeID string) {
	if h.auditLogger == nil {
		return
	}
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Action:       "route.set_baseline",
		ResourceType: "route",
		ResourceID:   routeID,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func parseIntQuery(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be numeric")
	}
	return value, nil
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func respondRouteError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, routes.ErrRouteNotFound), errors.Is(err, routes.ErrNoBaseline):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
