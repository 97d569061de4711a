package delivery

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	trackingNumberPrefix    = "LS"
	trackingNumberHexDigits = 10
)

var trackingNumberPattern = regexp.MustCompile(`^LS[0-9A-F]{10}$`)

// TrackingNumber is the public identifier of a delivery: "LS" followed by ten
// upper-case hexadecimal characters. It is assigned at booking and never changes.
type TrackingNumber struct {
	value string
}

// NewTrackingNumber draws ten hex characters from a random UUID. Uniqueness is not
// guaranteed here; the booking flow regenerates on collision.
func NewTrackingNumber() TrackingNumber {
	id := uuid.New()
	digits := strings.ToUpper(hex.EncodeToString(id[:]))[:trackingNumberHexDigits]
	return TrackingNumber{value: trackingNumberPrefix + digits}
}

// TrackingNumberFromString validates s. Lower-case hex is accepted and normalized.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if !trackingNumberPattern.MatchString(normalized) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber", fmt.Errorf("%q does not match LS + %d hex characters", s, trackingNumberHexDigits),
		)
	}
	return TrackingNumber{value: normalized}, nil
}

func (t TrackingNumber) String() string { return t.value }

// IsZero reports whether the tracking number is unset.
func (t TrackingNumber) IsZero() bool { return t.value == "" }

// MarshalText renders the tracking number as a plain JSON string.
func (t TrackingNumber) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}
