package kernel

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// PincodeLength is the number of digits in a postal index number.
const PincodeLength = 6

// Place holds the location identifiers of one end of a delivery: a postal code and/or
// a (city, state) pair. It is what the distance calculation resolves, as opposed to
// the free-text address shown to drivers.
//
// Any subset may be empty; an empty Place is valid and simply cannot be resolved.
// City and state are only meaningful together.
//
// Example:
//
//	pickup, err := kernel.NewPlace("560001", "Bengaluru", "Karnataka")
//	if err != nil {
//	    return err
//	}
//	pickup.HasCityState() // true
type Place struct {
	pincode string
	city    string
	state   string
}

// NewPlace trims and validates the identifiers. A non-empty pincode must be exactly
// PincodeLength digits; a city without a state (or the reverse) is rejected.
func NewPlace(pincode, city, state string) (Place, error) {
	p := Place{}
	if err := errors.Join(
		p.setPincode(pincode),
		p.setCityState(city, state),
	); err != nil {
		return Place{}, err
	}
	return p, nil
}

// Pincode returns the postal code, or "" when unknown.
func (p Place) Pincode() string { return p.pincode }

// City returns the city name as supplied (trimmed).
func (p Place) City() string { return p.city }

// State returns the state name as supplied (trimmed).
func (p Place) State() string { return p.state }

// HasPincode reports whether a postal code is present.
func (p Place) HasPincode() bool { return p.pincode != "" }

// HasCityState reports whether both city and state are present.
func (p Place) HasCityState() bool { return p.city != "" && p.state != "" }

// IsEmpty reports whether no identifier is present.
func (p Place) IsEmpty() bool { return !p.HasPincode() && !p.HasCityState() }

// IsEqual compares places case-insensitively on city and state.
func (p Place) IsEqual(other Place) bool {
	return p.pincode == other.pincode &&
		strings.EqualFold(p.city, other.city) &&
		strings.EqualFold(p.state, other.state)
}

// String renders the place for logs, e.g. "Bengaluru, Karnataka 560001".
func (p Place) String() string {
	switch {
	case p.HasCityState() && p.HasPincode():
		return fmt.Sprintf("%s, %s %s", p.city, p.state, p.pincode)
	case p.HasCityState():
		return fmt.Sprintf("%s, %s", p.city, p.state)
	default:
		return p.pincode
	}
}

func (p *Place) setPincode(pincode string) error {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return nil
	}
	if len(pincode) != PincodeLength {
		return errs.NewValueIsInvalidErrorWithCause("pincode",
			fmt.Errorf("%q must have %d digits", pincode, PincodeLength))
	}
	for _, r := range pincode {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("pincode",
				fmt.Errorf("%q must contain digits only", pincode))
		}
	}
	p.pincode = pincode
	return nil
}

func (p *Place) setCityState(city, state string) error {
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	if (city == "") != (state == "") {
		return errs.NewValueIsRequiredErrorWithCause("city/state",
			errors.New("city and state must be supplied together"))
	}
	p.city, p.state = city, state
	return nil
}
