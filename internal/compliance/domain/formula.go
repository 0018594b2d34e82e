package compliance

import "github.com/shopspring/decimal"

const (
	// ReferenceIntensity is the fleet-wide reference GHG intensity in gCO2e/MJ.
	ReferenceIntensity = 91.16

	// TargetIntensity2025 is the 2025 target: 2% below reference.
	TargetIntensity2025 = 89.3368

	// MJPerTonne converts fuel mass in tonnes to energy in scope in MJ.
	MJPerTonne = 41000.0
)

// TargetIntensity returns the regulatory target GHG intensity in gCO2e/MJ for
// a reporting year. All years currently resolve to the 2025 target; the year
// is kept in the signature so a per-year reduction schedule can slot in later.
func TargetIntensity(year int) float64 {
	_ = year
	return TargetIntensity2025
}

// Balance computes the compliance balance in gCO2e:
//
//	CB = (target - actual) x fuelConsumption x MJPerTonne
//
// Positive means surplus, negative means deficit.
func Balance(ghgIntensity, fuelConsumption float64, year int) float64 {
	return (TargetIntensity(year) - ghgIntensity) * fuelConsumption * MJPerTonne
}

// PercentDiff returns the percentage difference of comparison against
// baseline. A zero baseline yields zero rather than an error.
func PercentDiff(comparison, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (comparison/baseline - 1) * 100
}

// IsCompliant reports whether a GHG intensity meets the target for the year.
// The boundary is inclusive.
func IsCompliant(ghgIntensity float64, year int) bool {
	return ghgIntensity <= TargetIntensity(year)
}

// Round2 rounds to two decimal places. Decimal arithmetic avoids the binary
// float drift of round(x*100)/100 on persisted balances.
func Round2(x float64) float64 {
	rounded, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return rounded
}
