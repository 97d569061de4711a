package services

import (
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// Quoter puts distance and price together for the booking, edit and estimate flows.
type Quoter struct {
	distances *DistanceCalculator
	pricing   *PricingEngine
}

// NewQuoter combines a distance calculator with a pricing engine.
func NewQuoter(distances *DistanceCalculator, pricing *PricingEngine) *Quoter {
	return &Quoter{distances: distances, pricing: pricing}
}

// Estimate itemizes a what-if quote. It fails with ErrDistanceUnknown when a place
// cannot be resolved.
func (q *Quoter) Estimate(pickup, dropoff kernel.Place, weightKg float64, pt delivery.PackageType) (PriceBreakdown, error) {
	km, ok := q.distances.Calculate(pickup, dropoff)
	if !ok {
		return PriceBreakdown{}, ErrDistanceUnknown
	}
	return q.pricing.Breakdown(km, weightKg, pt), nil
}

// QuoteBooking prices a new delivery. An unresolvable route is priced at zero
// distance; resolved reports which case applied.
func (q *Quoter) QuoteBooking(details delivery.Details) (quote delivery.Quote, resolved bool) {
	km, resolved := q.distances.Calculate(details.PickupPlace, details.DeliveryPlace)
	return delivery.Quote{
		DistanceKm: km,
		Price:      q.pricing.CalculatePrice(km, details.WeightKg, details.PackageType),
	}, resolved
}

// Requote recomputes the price after an edit. The distance is derived again only when
// a place changed and the new route resolves; otherwise the stored distance is kept.
// Nothing happens when the edit did not affect the price.
func (q *Quoter) Requote(d *delivery.Delivery, edit delivery.EditResult, now time.Time) error {
	if !edit.PriceAffected {
		return nil
	}
	km := d.DistanceKm()
	if edit.PlacesChanged {
		if resolved, ok := q.distances.Calculate(d.PickupPlace(), d.DeliveryPlace()); ok {
			km = resolved
		}
	}
	return d.Reprice(delivery.Quote{
		DistanceKm: km,
		Price:      q.pricing.CalculatePrice(km, d.WeightKg(), d.PackageType()),
	}, now)
}
