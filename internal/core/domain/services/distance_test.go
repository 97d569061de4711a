package services_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLocator struct {
	cities   map[string]kernel.Coordinates
	pincodes map[string]kernel.Coordinates
	prefixes map[string]kernel.Coordinates
}

func (s stubLocator) LocateCity(city, state string) (kernel.Coordinates, bool) {
	c, ok := s.cities[city+", "+state]
	return c, ok
}

func (s stubLocator) LocatePincode(pincode string) (kernel.Coordinates, bool) {
	c, ok := s.pincodes[pincode]
	return c, ok
}

func (s stubLocator) LocatePincodePrefix(prefix string) (kernel.Coordinates, bool) {
	c, ok := s.prefixes[prefix]
	return c, ok
}

func coords(t *testing.T, lat, lon float64) kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lon)
	require.NoError(t, err)
	return c
}

func mustPlace(t *testing.T, pin, city, state string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace(pin, city, state)
	require.NoError(t, err)
	return p
}

func testLocator(t *testing.T) stubLocator {
	return stubLocator{
		cities: map[string]kernel.Coordinates{
			"Bengaluru, Karnataka": coords(t, 12.9716, 77.5946),
			"Chennai, Tamil Nadu":  coords(t, 13.0827, 80.2707),
		},
		pincodes: map[string]kernel.Coordinates{
			"560001": coords(t, 12.98, 77.60),
			"600001": coords(t, 13.09, 80.28),
		},
		prefixes: map[string]kernel.Coordinates{
			"400": coords(t, 19.0760, 72.8777),
		},
	}
}

func TestDistanceCalculator_Calculate(t *testing.T) {
	calc := services.NewDistanceCalculator(testLocator(t), 1.25)
	blr := mustPlace(t, "", "Bengaluru", "Karnataka")
	maa := mustPlace(t, "", "Chennai", "Tamil Nadu")

	t.Run("city_pair", func(t *testing.T) {
		km, ok := calc.Calculate(blr, maa)

		require.True(t, ok)
		assert.InDelta(t, 290*1.25, km, 8)
	})

	t.Run("deterministic_and_symmetric", func(t *testing.T) {
		a, _ := calc.Calculate(blr, maa)
		b, _ := calc.Calculate(blr, maa)
		c, _ := calc.Calculate(maa, blr)

		assert.Equal(t, a, b)
		assert.Equal(t, a, c)
	})

	t.Run("city_state_takes_precedence_over_pincode", func(t *testing.T) {
		withPin := mustPlace(t, "600001", "Bengaluru", "Karnataka")

		km, ok := calc.Calculate(blr, withPin)

		require.True(t, ok)
		assert.Zero(t, km)
	})

	t.Run("pincode_then_prefix", func(t *testing.T) {
		exact := mustPlace(t, "560001", "", "")
		prefixOnly := mustPlace(t, "400099", "", "")

		km, ok := calc.Calculate(exact, prefixOnly)

		require.True(t, ok)
		assert.Greater(t, km, 800.0)
	})

	t.Run("unknown_city_falls_back_to_pincode", func(t *testing.T) {
		p := mustPlace(t, "560001", "Atlantis", "Nowhere")

		_, ok := calc.Calculate(p, maa)

		assert.True(t, ok)
	})

	t.Run("unresolvable", func(t *testing.T) {
		for _, p := range []kernel.Place{
			{},
			mustPlace(t, "999999", "", ""),
			mustPlace(t, "", "Atlantis", "Nowhere"),
		} {
			km, ok := calc.Calculate(blr, p)

			assert.False(t, ok)
			assert.Zero(t, km)
		}
	})

	t.Run("road_factor_floor", func(t *testing.T) {
		straight := services.NewDistanceCalculator(testLocator(t), 0)
		unit := services.NewDistanceCalculator(testLocator(t), 1)

		a, _ := straight.Calculate(blr, maa)
		b, _ := unit.Calculate(blr, maa)

		assert.Equal(t, a, b)
	})
}
