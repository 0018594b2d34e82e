package pooling

import "time"

// Member is one ship's share of a pool: its balance entering the pool and the
// balance it leaves with.
type Member struct {
	ShipID   string  `json:"shipId"`
	CBBefore float64 `json:"cbBefore"`
	CBAfter  float64 `json:"cbAfter"`
}

// Pool is one completed allocation event for a year. Pools are immutable once
// created and are advisory: creating one does not rewrite the members'
// compliance records.
type Pool struct {
	ID        string    `json:"poolId"`
	Year      int       `json:"year"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalCBBefore sums the members' entering balances.
func (p *Pool) TotalCBBefore() float64 {
	var sum float64
	for _, m := range p.Members {
		sum += m.CBBefore
	}
	return sum
}

// TotalCBAfter sums the members' exiting balances.
func (p *Pool) TotalCBAfter() float64 {
	var sum float64
	for _, m := range p.Members {
		sum += m.CBAfter
	}
	return sum
}
