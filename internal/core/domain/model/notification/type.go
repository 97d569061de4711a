package notification

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Type is the visual severity of a notification.
type Type int

const (
	UnknownType Type = iota
	Info
	Warning
	Important
	Success
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType: "unknown",
		Info:        "info",
		Warning:     "warning",
		Important:   "important",
		Success:     "success",
	}
}

// ParseType converts "info", "warning", "important" or "success" to a Type.
func ParseType(s string) (Type, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for t, str := range getTypeStrings() {
		if t != UnknownType && str == needle {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a notification type", s))
}

func (t Type) Validate() error {
	if t < Info || t > Success {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a notification type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
