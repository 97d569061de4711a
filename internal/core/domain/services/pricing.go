package services

import (
	"errors"
	"fmt"
	"math"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/pkg/errs"
)

// PricingConfig holds every rate the price formula uses. It is injected into the
// engine at construction so rates change through configuration, not code.
type PricingConfig struct {
	BaseRate   float64
	PerKmRate  float64
	PerKgRate  float64
	Surcharges map[delivery.PackageType]float64
}

// DefaultPricingConfig returns the stock tariff: base 50, 5 per km, 10 per kg and
// surcharges 0/20/50/75/100 from Small to Electronics.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		BaseRate:  50,
		PerKmRate: 5,
		PerKgRate: 10,
		Surcharges: map[delivery.PackageType]float64{
			delivery.Small:       0,
			delivery.Medium:      20,
			delivery.Large:       50,
			delivery.Fragile:     75,
			delivery.Electronics: 100,
		},
	}
}

// Validate checks that rates are non-negative, that every package type has a
// surcharge and that surcharges never decrease along the package type tiers.
func (c PricingConfig) Validate() error {
	var errList []error
	for name, v := range map[string]float64{"baseRate": c.BaseRate, "perKmRate": c.PerKmRate, "perKgRate": c.PerKgRate} {
		if !isNonNegative(v) {
			errList = append(errList, errs.NewValueIsOutOfRangeError(name, v, 0, "unbounded"))
		}
	}

	previous := 0.0
	for _, pt := range delivery.PackageTypes() {
		s, ok := c.Surcharges[pt]
		switch {
		case !ok:
			errList = append(errList, errs.NewValueIsRequiredError("surcharge."+pt.String()))
			continue
		case !isNonNegative(s):
			errList = append(errList, errs.NewValueIsOutOfRangeError("surcharge."+pt.String(), s, 0, "unbounded"))
			continue
		case s < previous:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("surcharge."+pt.String(),
				fmt.Errorf("%.2f is lower than the previous tier (%.2f)", s, previous)))
		}
		previous = math.Max(previous, s)
	}
	return errors.Join(errList...)
}

// PriceBreakdown exposes every additive term of a quote. TotalPrice is the sum of
// the rounded components.
type PriceBreakdown struct {
	BaseRate         float64              `json:"base_rate"`
	DistanceKm       float64              `json:"distance_km"`
	DistanceCost     float64              `json:"distance_cost"`
	WeightKg         float64              `json:"weight_kg"`
	WeightCost       float64              `json:"weight_cost"`
	PackageType      delivery.PackageType `json:"package_type"`
	PackageSurcharge float64              `json:"package_surcharge"`
	TotalPrice       float64              `json:"total_price"`
}

// PricingEngine computes delivery prices:
//
//	base + distance × per_km + weight × per_kg + surcharge[package type]
//
// Distance and weight are clamped to zero before multiplication, so a price is never
// below the base rate. The engine is stateless once built and safe for concurrent use.
type PricingEngine struct {
	cfg PricingConfig
}

// NewPricingEngine validates cfg and copies the surcharge table.
//
// Example:
//
//	engine, err := services.NewPricingEngine(services.DefaultPricingConfig())
//	price := engine.CalculatePrice(100, 5, delivery.Medium) // 620
func NewPricingEngine(cfg PricingConfig) (*PricingEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	surcharges := make(map[delivery.PackageType]float64, len(cfg.Surcharges))
	for k, v := range cfg.Surcharges {
		surcharges[k] = v
	}
	cfg.Surcharges = surcharges
	return &PricingEngine{cfg: cfg}, nil
}

// BaseRate is the price floor.
func (e *PricingEngine) BaseRate() float64 {
	return e.cfg.BaseRate
}

// CalculatePrice returns the total of Breakdown for the same inputs.
func (e *PricingEngine) CalculatePrice(distanceKm, weightKg float64, packageType delivery.PackageType) float64 {
	return e.Breakdown(distanceKm, weightKg, packageType).TotalPrice
}

// Breakdown itemizes a quote. It has no side effects and may be called freely for
// what-if quotes. An unknown package type carries no surcharge.
func (e *PricingEngine) Breakdown(distanceKm, weightKg float64, packageType delivery.PackageType) PriceBreakdown {
	distanceKm = clamp(distanceKm)
	weightKg = clamp(weightKg)

	b := PriceBreakdown{
		BaseRate:         round2(e.cfg.BaseRate),
		DistanceKm:       round2(distanceKm),
		DistanceCost:     round2(distanceKm * e.cfg.PerKmRate),
		WeightKg:         round2(weightKg),
		WeightCost:       round2(weightKg * e.cfg.PerKgRate),
		PackageType:      packageType,
		PackageSurcharge: round2(e.cfg.Surcharges[packageType]),
	}
	b.TotalPrice = round2(b.BaseRate + b.DistanceCost + b.WeightCost + b.PackageSurcharge)
	return b
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
