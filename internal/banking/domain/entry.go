package banking

import "time"

// Entry is one row of the append-only banking ledger. A positive amount is a
// banked surplus deposit, a negative amount an applied withdrawal. Entries
// are never mutated or deleted.
type Entry struct {
	ShipID      string    `json:"shipId"`
	Year        int       `json:"year"`
	AmountGCO2e float64   `json:"amountGco2eq"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Filter narrows ledger queries. Zero values match everything.
type Filter struct {
	ShipID string
	Year   int
}

// Matches reports whether an entry satisfies the filter.
func (f Filter) Matches(e *Entry) bool {
	if f.ShipID != "" && e.ShipID != f.ShipID {
		return false
	}
	if f.Year != 0 && e.Year != f.Year {
		return false
	}
	return true
}

// PoolBalance is the derived state of the shared banked pool: deposits,
// withdrawals and what remains available. Applied is reported as a positive
// magnitude.
type PoolBalance struct {
	TotalBanked  float64 `json:"totalBanked"`
	TotalApplied float64 `json:"totalApplied"`
	Available    float64 `json:"available"`
}

// BankResult is the outcome of banking a surplus.
type BankResult struct {
	ShipID       string  `json:"shipId"`
	Year         int     `json:"year"`
	BankedAmount float64 `json:"bankedAmount"`
	Message      string  `json:"message"`
}

// ApplyResult is the outcome of applying banked surplus to a ship.
type ApplyResult struct {
	ShipID   string  `json:"shipId"`
	Year     int     `json:"year"`
	CBBefore float64 `json:"cbBefore"`
	Applied  float64 `json:"applied"`
	CBAfter  float64 `json:"cbAfter"`
}
