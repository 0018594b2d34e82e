package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fueleu-maritime/internal/audit"
	bankingapp "fueleu-maritime/internal/banking/application"
	banking "fueleu-maritime/internal/banking/domain"
)

// BankingHandler handles the surplus banking APIs.
type BankingHandler struct {
	service     *bankingapp.BankingService
	auditLogger audit.Logger
}

// NewBankingHandler constructs a handler.
func NewBankingHandler(service *bankingapp.BankingService, auditLogger audit.Logger) (*BankingHandler, error) {
	if service == nil {
		return nil, errors.New("banking handler: nil service")
	}
	return &BankingHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles routes under /api/v1/banking.
func (h *BankingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/api/v1/banking/bank" && r.Method == http.MethodPost:
		h.handleBank(w, r)
	case path == "/api/v1/banking/apply" && r.Method == http.MethodPost:
		h.handleApply(w, r)
	case path == "/api/v1/banking/available" && r.Method == http.MethodGet:
		h.handleAvailable(w, r)
	case path == "/api/v1/banking/records" && r.Method == http.MethodGet:
		h.handleRecords(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *BankingHandler) handleBank(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShipID string          `json:"shipId"`
		Year   json.RawMessage `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	year, err := parseYearField(req.Year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ShipID == "" {
		http.Error(w, "shipId is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Bank(r.Context(), req.ShipID, year)
	if err != nil {
		respondBankingError(w, err)
		return
	}
	writeJSON(w, result)
	h.logAudit(r, "banking.bank", req.ShipID, map[string]any{"year": year, "amount": result.BankedAmount})
}

func (h *BankingHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShipID string          `json:"shipId"`
		Year   json.RawMessage `json:"year"`
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	year, err := parseYearField(req.Year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	amount, err := parseFloatField(req.Amount, "amount")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ShipID == "" {
		http.Error(w, "shipId is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Apply(r.Context(), req.ShipID, year, amount)
	if err != nil {
		respondBankingError(w, err)
		return
	}
	writeJSON(w, result)
	h.logAudit(r, "banking.apply", req.ShipID, map[string]any{"year": year, "amount": amount})
}

func (h *BankingHandler) handleAvailable(w http.ResponseWriter, r *http.Request) {
	pool, err := h.service.AvailablePool(r.Context())
	if err != nil {
		respondBankingError(w, err)
		return
	}
	writeJSON(w, pool)
}

func (h *BankingHandler) handleRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLedgerFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries, err := h.service.Records(r.Context(), filter)
	if err != nil {
		respondBankingError(w, err)
		return
	}
	if entries == nil {
		entries = []*banking.Entry{}
	}
	writeJSON(w, entries)
}

func (h *BankingHandler) logAudit(r *http.Request, action, shipID string, metadata map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(metadata)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Action:       action,
		ResourceType: "bank_entry",
		ShipID:       shipID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

// LedgerCSVHandler streams the banking ledger as CSV.
type LedgerCSVHandler struct {
	service *bankingapp.BankingService
}

// NewLedgerCSVHandler constructs a handler.
func NewLedgerCSVHandler(service *bankingapp.BankingService) *LedgerCSVHandler {
	return &LedgerCSVHandler{service: service}
}

// ServeHTTP handles GET /api/v1/exports/bank-entries.csv.
func (h *LedgerCSVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	filter, err := parseLedgerFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries, err := h.service.Records(r.Context(), filter)
	if err != nil {
		respondBankingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bank-entries.csv"`)
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"ship_id", "year", "amount_gco2e", "created_at"})
	for _, entry := range entries {
		_ = writer.Write([]string{
			entry.ShipID,
			strconv.Itoa(entry.Year),
			strconv.FormatFloat(entry.AmountGCO2e, 'f', 2, 64),
			entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writer.Flush()
}

func parseLedgerFilter(r *http.Request) (banking.Filter, error) {
	filter := banking.Filter{ShipID: r.URL.Query().Get("shipId")}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return banking.Filter{}, fmt.Errorf("year must be numeric, got %q", raw)
		}
		filter.Year = year
	}
	return filter, nil
}

// parseYearField accepts a JSON number or numeric string.
func parseYearField(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.New("year is required")
	}
	text := strings.Trim(string(raw), `"`)
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("year must be numeric, got %s", raw)
	}
	return year, nil
}

// parseFloatField accepts a JSON number or numeric string.
func parseFloatField(raw json.RawMessage, name string) (float64, error) {
	if len(raw) == 0 {
		return 0, errors.New(name + " is required")
	}
	text := strings.Trim(string(raw), `"`)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric, got %s", name, raw)
	}
	return value, nil
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func respondBankingError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, banking.ErrNoComplianceRecord):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, banking.ErrNonPositiveAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, banking.ErrNonPositiveBalance), errors.Is(err, banking.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
