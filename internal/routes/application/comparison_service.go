package application

import (
	"context"
	"errors"
	"time"

	compliance "fueleu-maritime/internal/compliance/domain"
	"fueleu-maritime/internal/observability/metrics"
	routes "fueleu-maritime/internal/routes/domain"
)

// BaselineView echoes the baseline route with its compliance flags.
type BaselineView struct {
	RouteID      string  `json:"routeId"`
	VesselType   string  `json:"vesselType"`
	FuelType     string  `json:"fuelType"`
	Year         int     `json:"year"`
	GHGIntensity float64 `json:"ghgIntensity"`
	Target       float64 `json:"target"`
	Compliant    bool    `json:"compliant"`
}

// RouteComparison is one route measured against the baseline.
type RouteComparison struct {
	RouteID      string  `json:"routeId"`
	VesselType   string  `json:"vesselType"`
	FuelType     string  `json:"fuelType"`
	Year         int     `json:"year"`
	GHGIntensity float64 `json:"ghgIntensity"`
	PercentDiff  float64 `json:"percentDiff"`
	Compliant    bool    `json:"compliant"`
	Target       float64 `json:"target"`
}

// ComparisonResult is the full baseline comparison.
type ComparisonResult struct {
	Baseline    BaselineView      `json:"baseline"`
	Comparisons []RouteComparison `json:"comparisons"`
}

// ComparisonService compares every route against the designated baseline.
type ComparisonService struct {
	repo routes.Repository
}

// NewComparisonService constructs a service.
func NewComparisonService(repo routes.Repository) (*ComparisonService, error) {
	if repo == nil {
		return nil, errors.New("comparison service: nil repo")
	}
	return &ComparisonService{repo: repo}, nil
}

// CompareAll computes the percent difference and compliance flag of every
// non-baseline route against the baseline. The baseline is excluded from the
// comparison list by route id.
func (s *ComparisonService) CompareAll(ctx context.Context) (*ComparisonResult, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveComparison(result, time.Since(start))
	}()

	baseline, err := s.repo.FindBaseline(ctx)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if baseline == nil {
		result = metrics.ResultError
		return nil, routes.ErrNoBaseline
	}

	all, err := s.repo.Find(ctx, routes.Filter{})
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	comparisons := make([]RouteComparison, 0, len(all))
	for _, route := range all {
		if route.RouteID == baseline.RouteID {
			continue
		}
		diff := compliance.PercentDiff(route.GHGIntensity, baseline.GHGIntensity)
		comparisons = append(comparisons, RouteComparison{
			RouteID:      route.RouteID,
			VesselType:   route.VesselType,
			FuelType:     route.FuelType,
			Year:         route.Year,
			GHGIntensity: route.GHGIntensity,
			PercentDiff:  compliance.Round2(diff),
			Compliant:    compliance.IsCompliant(route.GHGIntensity, route.Year),
			Target:       compliance.TargetIntensity(route.Year),
		})
	}

	return &ComparisonResult{
		Baseline: BaselineView{
			RouteID:      baseline.RouteID,
			VesselType:   baseline.VesselType,
			FuelType:     baseline.FuelType,
			Year:         baseline.Year,
			GHGIntensity: baseline.GHGIntensity,
			Target:       compliance.TargetIntensity(baseline.Year),
			Compliant:    compliance.IsCompliant(baseline.GHGIntensity, baseline.Year),
		},
		Comparisons: comparisons,
	}, nil
}
