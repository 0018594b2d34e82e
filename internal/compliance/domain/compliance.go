package compliance

// ShipCompliance is the current compliance balance of a ship for a reporting
// year. Identity: shipId + year, one record per pair; recomputing or applying
// banked surplus overwrites the stored balance.
type ShipCompliance struct {
	ShipID          string  `json:"shipId"`
	Year            int     `json:"year"`
	CBgCO2e         float64 `json:"cbGco2eq"`
	GHGIntensity    float64 `json:"ghgIntensity"`
	FuelConsumption float64 `json:"fuelConsumption"`
	IsSurplus       bool    `json:"isSurplus"`
}

// NewShipCompliance builds a compliance record from a computed balance,
// rounding the stored balance to two decimals.
func NewShipCompliance(shipID string, year int, cb, ghgIntensity, fuelConsumption float64) *ShipCompliance {
	return &ShipCompliance{
		ShipID:          shipID,
		Year:            year,
		CBgCO2e:         Round2(cb),
		GHGIntensity:    ghgIntensity,
		FuelConsumption: fuelConsumption,
		IsSurplus:       cb > 0,
	}
}

// WithBalance returns a copy carrying a new balance with the surplus flag
// rederived.
func (c *ShipCompliance) WithBalance(cb float64) *ShipCompliance {
	copy := *c
	copy.CBgCO2e = cb
	copy.IsSurplus = cb > 0
	return &copy
}

// AdjustedBalance is a ship's balance after its own banked surplus is taken
// into account. BankedAvailable sums only that ship's ledger entries, which is
// deliberately narrower than the global pool checked when applying.
type AdjustedBalance struct {
	ShipID          string  `json:"shipId"`
	Year            int     `json:"year"`
	OriginalCB      float64 `json:"originalCB"`
	BankedAvailable float64 `json:"bankedAvailable"`
	AdjustedCB      float64 `json:"adjustedCB"`
	IsSurplus       bool    `json:"isSurplus"`
}
