package services

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
)

// ErrDistanceUnknown signals that at least one side of a route could not be placed on
// the map. Estimates refuse the quote; bookings fall back to zero distance.
var ErrDistanceUnknown = errors.New("distance cannot be resolved for the given locations")

// pincodePrefixLength is the length of the sorting-district prefix of a pincode.
const pincodePrefixLength = 3

// Locator maps location identifiers to coordinates. Lookups report ok=false when the
// identifier is unknown.
type Locator interface {
	LocateCity(city, state string) (kernel.Coordinates, bool)
	LocatePincode(pincode string) (kernel.Coordinates, bool)
	LocatePincodePrefix(prefix string) (kernel.Coordinates, bool)
}

// DistanceCalculator estimates road distance between two places.
//
// Each place is resolved in order of precision: the (city, state) pair when both are
// present, then the exact pincode, then the pincode's sorting-district prefix. The
// great-circle distance between the two points is multiplied by the road factor and
// rounded to two decimals. The same inputs always give the same result.
type DistanceCalculator struct {
	locator    Locator
	roadFactor float64
}

// NewDistanceCalculator builds a calculator. A road factor below 1 is raised to 1.
func NewDistanceCalculator(locator Locator, roadFactor float64) *DistanceCalculator {
	if roadFactor < 1 {
		roadFactor = 1
	}
	return &DistanceCalculator{locator: locator, roadFactor: roadFactor}
}

// Calculate returns the distance in km, or ok=false when either place cannot be
// resolved. It never returns an error.
func (c *DistanceCalculator) Calculate(pickup, dropoff kernel.Place) (float64, bool) {
	from, ok := c.Resolve(pickup)
	if !ok {
		return 0, false
	}
	to, ok := c.Resolve(dropoff)
	if !ok {
		return 0, false
	}
	return round2(from.DistanceKm(to) * c.roadFactor), true
}

// Resolve places p on the map.
func (c *DistanceCalculator) Resolve(p kernel.Place) (kernel.Coordinates, bool) {
	if p.HasCityState() {
		if coords, ok := c.locator.LocateCity(p.City(), p.State()); ok {
			return coords, true
		}
	}
	if p.HasPincode() {
		if coords, ok := c.locator.LocatePincode(p.Pincode()); ok {
			return coords, true
		}
		if coords, ok := c.locator.LocatePincodePrefix(p.Pincode()[:pincodePrefixLength]); ok {
			return coords, true
		}
	}
	return kernel.Coordinates{}, false
}
