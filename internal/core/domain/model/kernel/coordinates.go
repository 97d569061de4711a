package kernel

import (
	"errors"
	"math"

	"logistics/internal/pkg/errs"
)

const earthRadiusKm = 6371.0

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	lat float64
	lon float64
}

// NewCoordinates validates latitude in [-90, 90] and longitude in [-180, 180].
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	var latErr, lonErr error
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		latErr = errs.NewValueIsOutOfRangeError("latitude", lat, -90, 90)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		lonErr = errs.NewValueIsOutOfRangeError("longitude", lon, -180, 180)
	}
	if err := errors.Join(latErr, lonErr); err != nil {
		return Coordinates{}, err
	}
	return Coordinates{lat: lat, lon: lon}, nil
}

// Lat returns the latitude in degrees.
func (c Coordinates) Lat() float64 { return c.lat }

// Lon returns the longitude in degrees.
func (c Coordinates) Lon() float64 { return c.lon }

// DistanceKm returns the great-circle (haversine) distance to other in kilometres.
// The result is symmetric and zero for identical points.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	lat1, lat2 := toRadians(c.lat), toRadians(other.lat)
	dLat := lat2 - lat1
	dLon := toRadians(other.lon - c.lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
