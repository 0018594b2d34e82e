package pooling

import (
	"fmt"
	"math"
	"sort"
)

// Allocate runs the greedy pooling allocation over the given members and
// returns them sorted descending by entering balance, with CBAfter populated.
//
// The allocation is deterministic: members are stable-sorted descending by
// CBBefore (ties keep input order), surpluses (CBBefore > 0) cover deficits
// (CBBefore < 0) in that order, each deficit draining surpluses until its
// shortfall is met or the surpluses run dry. The pool total is conserved.
//
// Preconditions checked here: the summed balance must not be negative (zero
// is a valid boundary). Post-allocation the exit rules are re-verified and
// violations fail loudly instead of being clamped, even though the greedy
// scheme cannot produce them under the precondition.
func Allocate(members []Member) ([]Member, error) {
	var total float64
	for _, m := range members {
		total += m.CBBefore
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: pool sum is negative (%.2f)", ErrNegativePoolSum, total)
	}

	out := make([]Member, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CBBefore > out[j].CBBefore
	})
	for i := range out {
		out[i].CBAfter = out[i].CBBefore
	}

	var surplus, deficit []*Member
	for i := range out {
		switch {
		case out[i].CBBefore > 0:
			surplus = append(surplus, &out[i])
		case out[i].CBBefore < 0:
			deficit = append(deficit, &out[i])
		}
	}

	for _, d := range deficit {
		remaining := math.Abs(d.CBBefore)
		for _, s := range surplus {
			if remaining <= 0 {
				break
			}
			if s.CBAfter <= 0 {
				continue
			}
			transfer := math.Min(s.CBAfter, remaining)
			s.CBAfter -= transfer
			d.CBAfter += transfer
			remaining -= transfer
		}
	}

	for _, m := range out {
		if m.CBBefore < 0 && m.CBAfter < m.CBBefore {
			return nil, fmt.Errorf("%w: deficit ship %s would exit worse", ErrAllocationInvariant, m.ShipID)
		}
		if m.CBBefore > 0 && m.CBAfter < 0 {
			return nil, fmt.Errorf("%w: surplus ship %s would exit negative", ErrAllocationInvariant, m.ShipID)
		}
	}

	return out, nil
}
