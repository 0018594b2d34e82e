package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	bankingapp "fueleu-maritime/internal/banking/application"
	banking "fueleu-maritime/internal/banking/domain"
	bankmem "fueleu-maritime/internal/banking/infrastructure/memory"
	compliance "fueleu-maritime/internal/compliance/domain"
	compmem "fueleu-maritime/internal/compliance/infrastructure/memory"
)

func newHandlerFixture(t *testing.T) (*BankingHandler, *compmem.ComplianceRepository) {
	t.Helper()
	bankRepo := bankmem.NewBankRepository()
	compRepo := compmem.NewComplianceRepository()
	svc, err := bankingapp.NewBankingService(bankRepo, compRepo, nil)
	if err != nil {
		t.Fatalf("new banking service: %v", err)
	}
	handler, err := NewBankingHandler(svc, nil)
	if err != nil {
		t.Fatalf("new banking handler: %v", err)
	}
	return handler, compRepo
}

func seedRecord(t *testing.T, repo *compmem.ComplianceRepository, shipID string, year int, cb float64) {
	t.Helper()
	rec := compliance.NewShipCompliance(shipID, year, cb, 90, 5000)
	if err := repo.Upsert(context.Background(), rec); err != nil {
		t.Fatalf("seed compliance: %v", err)
	}
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestBankAcceptsNumericAndStringYear(t *testing.T) {
	for _, body := range []string{
		`{"shipId":"R001","year":2024}`,
		`{"shipId":"R001","year":"2024"}`,
	} {
		handler, compRepo := newHandlerFixture(t)
		seedRecord(t, compRepo, "R001", 2024, 5000)

		rec := postJSON(t, handler, "/api/v1/banking/bank", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("body %s: status %d, want 200 (%s)", body, rec.Code, rec.Body.String())
		}
		var result banking.BankResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if result.BankedAmount != 5000 || result.Year != 2024 {
			t.Fatalf("body %s: result = %+v", body, result)
		}
	}
}

func TestBankRejectsBadYear(t *testing.T) {
	handler, _ := newHandlerFixture(t)

	for _, body := range []string{
		`{"shipId":"R001"}`,
		`{"shipId":"R001","year":"soon"}`,
	} {
		rec := postJSON(t, handler, "/api/v1/banking/bank", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status %d, want 400", body, rec.Code)
		}
	}
}

func TestBankMissingShipReturns400(t *testing.T) {
	handler, _ := newHandlerFixture(t)
	rec := postJSON(t, handler, "/api/v1/banking/bank", `{"year":2024}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestBankStatusByFailure(t *testing.T) {
	handler, compRepo := newHandlerFixture(t)
	seedRecord(t, compRepo, "deficit", 2024, -100)

	rec := postJSON(t, handler, "/api/v1/banking/bank", `{"shipId":"ghost","year":2024}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown ship: status %d, want 404", rec.Code)
	}

	rec = postJSON(t, handler, "/api/v1/banking/bank", `{"shipId":"deficit","year":2024}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("deficit ship: status %d, want 409", rec.Code)
	}
}

func TestApplyAcceptsStringAmount(t *testing.T) {
	handler, compRepo := newHandlerFixture(t)
	seedRecord(t, compRepo, "R001", 2024, 5000)
	seedRecord(t, compRepo, "R003", 2024, -1000)
	if rec := postJSON(t, handler, "/api/v1/banking/bank", `{"shipId":"R001","year":2024}`); rec.Code != http.StatusOK {
		t.Fatalf("bank: status %d (%s)", rec.Code, rec.Body.String())
	}

	rec := postJSON(t, handler, "/api/v1/banking/apply", `{"shipId":"R003","year":"2024","amount":"300"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("apply: status %d (%s)", rec.Code, rec.Body.String())
	}
	var result banking.ApplyResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.CBBefore != -1000 || result.Applied != 300 || result.CBAfter != -700 {
		t.Fatalf("result = %+v", result)
	}
}

func TestApplyErrorStatuses(t *testing.T) {
	handler, compRepo := newHandlerFixture(t)
	seedRecord(t, compRepo, "R003", 2024, -1000)

	rec := postJSON(t, handler, "/api/v1/banking/apply", `{"shipId":"R003","year":2024,"amount":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero amount: status %d, want 400", rec.Code)
	}

	rec = postJSON(t, handler, "/api/v1/banking/apply", `{"shipId":"R003","year":2024,"amount":500}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("empty pool: status %d, want 409", rec.Code)
	}
}

func TestAvailableEndpoint(t *testing.T) {
	handler, compRepo := newHandlerFixture(t)
	seedRecord(t, compRepo, "R001", 2024, 750)
	if rec := postJSON(t, handler, "/api/v1/banking/bank", `{"shipId":"R001","year":2024}`); rec.Code != http.StatusOK {
		t.Fatalf("bank: status %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/banking/available", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var pool banking.PoolBalance
	if err := json.Unmarshal(rec.Body.Bytes(), &pool); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if pool.TotalBanked != 750 || pool.Available != 750 {
		t.Fatalf("pool = %+v", pool)
	}
}

func TestRecordsEmptyLedgerReturnsArray(t *testing.T) {
	handler, _ := newHandlerFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/banking/records", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %s, want []", got)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	handler, _ := newHandlerFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/banking/unknown", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
