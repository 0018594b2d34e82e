package compliance

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func TestTargetIntensityFlatAcrossYears(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025, 2026, 2030} {
		if got := TargetIntensity(year); got != TargetIntensity2025 {
			t.Fatalf("year %d: got %v, want %v", year, got, TargetIntensity2025)
		}
	}
}

func TestBalanceSign(t *testing.T) {
	cases := []struct {
		name string
		ghg  float64
		want int
	}{
		{"below target is surplus", 88.0, 1},
		{"well below target is surplus", 65.3, 1},
		{"above target is deficit", 94.2, -1},
		{"just above target is deficit", 89.3369, -1},
		{"exact target is zero", TargetIntensity2025, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cb := Balance(tc.ghg, 5000, 2025)
			switch tc.want {
			case 1:
				if cb <= 0 {
					t.Fatalf("expected surplus, got %v", cb)
				}
			case -1:
				if cb >= 0 {
					t.Fatalf("expected deficit, got %v", cb)
				}
			case 0:
				if math.Abs(cb) > epsilon {
					t.Fatalf("expected zero balance, got %v", cb)
				}
			}
		})
	}
}

func TestBalanceLinearInFuel(t *testing.T) {
	single := Balance(88.0, 4000, 2024)
	double := Balance(88.0, 8000, 2024)
	if math.Abs(double-2*single) > epsilon {
		t.Fatalf("cb(2f) = %v, want 2*cb(f) = %v", double, 2*single)
	}
}

func TestPercentDiff(t *testing.T) {
	if got := PercentDiff(91.0, 91.0); math.Abs(got) > epsilon {
		t.Fatalf("identical intensities: got %v, want 0", got)
	}
	if got := PercentDiff(88.0, 0); got != 0 {
		t.Fatalf("zero baseline: got %v, want 0", got)
	}
	if got := PercentDiff(88.0, 91.0); got >= 0 {
		t.Fatalf("cleaner route should be negative, got %v", got)
	}
	got := PercentDiff(110, 100)
	if math.Abs(got-10) > epsilon {
		t.Fatalf("got %v, want 10", got)
	}
}

func TestIsCompliantBoundaryInclusive(t *testing.T) {
	if !IsCompliant(89.3368, 2025) {
		t.Fatal("exactly on target must be compliant")
	}
	if IsCompliant(89.3369, 2025) {
		t.Fatal("just above target must not be compliant")
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{274044000.004, 274044000.0},
		{1.005, 1.01},
		{-1.005, -1.01},
		{-123.4567, -123.46},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); math.Abs(got-tc.want) > epsilon {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
