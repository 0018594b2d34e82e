package pooling

import "errors"

var (
	// ErrTooFewMembers is returned when a pool has fewer than two members.
	ErrTooFewMembers = errors.New("pooling: a pool needs at least 2 members")
	// ErrMemberNotFound is returned when a member ship has no compliance record.
	ErrMemberNotFound = errors.New("pooling: member compliance record not found")
	// ErrNegativePoolSum is returned when the members' summed balance is negative.
	ErrNegativePoolSum = errors.New("pooling: invalid pool")
	// ErrAllocationInvariant is returned when a member would exit the
	// allocation in a forbidden state.
	ErrAllocationInvariant = errors.New("pooling: allocation invariant violated")
	// ErrNilPool is returned when persisting a nil pool.
	ErrNilPool = errors.New("pooling: nil pool")
)
