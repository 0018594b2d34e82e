package banking

import "errors"

var (
	// ErrNoComplianceRecord is returned when the ship has no compliance record
	// to bank from or apply to.
	ErrNoComplianceRecord = errors.New("banking: no compliance record")
	// ErrNonPositiveBalance is returned when banking a zero or negative balance.
	ErrNonPositiveBalance = errors.New("banking: cannot bank non-positive balance")
	// ErrNonPositiveAmount is returned when the apply amount is zero or negative.
	ErrNonPositiveAmount = errors.New("banking: amount must be positive")
	// ErrInsufficientFunds is returned when the apply amount exceeds the
	// available banked pool.
	ErrInsufficientFunds = errors.New("banking: insufficient banked surplus")
	// ErrNilEntry is returned when persisting a nil entry.
	ErrNilEntry = errors.New("banking: nil entry")
)
