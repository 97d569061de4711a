package ticket

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Priority orders tickets in the agent queue. New tickets default to Medium.
type Priority int

const (
	UnknownPriority Priority = iota
	Low
	Medium
	High
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		UnknownPriority: "Unknown",
		Low:             "Low",
		Medium:          "Medium",
		High:            "High",
	}
}

// ParsePriority converts "low", "Medium" or "HIGH" to a Priority.
func ParsePriority(s string) (Priority, error) {
	needle := strings.TrimSpace(s)
	for _, p := range []Priority{Low, Medium, High} {
		if strings.EqualFold(p.String(), needle) {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not Low, Medium or High", s))
}

func (p Priority) Validate() error {
	if p < Low || p > High {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Category describes what went wrong with a delivery.
type Category int

const (
	UnknownCategory Category = iota
	Damaged
	Lost
	Late
	Quality
	Other
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		UnknownCategory: "Unknown",
		Damaged:         "Damaged",
		Lost:            "Lost",
		Late:            "Late",
		Quality:         "Quality",
		Other:           "Other",
	}
}

// ParseCategory converts a category name to a Category, ignoring case.
func ParseCategory(s string) (Category, error) {
	needle := strings.TrimSpace(s)
	for _, c := range []Category{Damaged, Lost, Late, Quality, Other} {
		if strings.EqualFold(c.String(), needle) {
			return c, nil
		}
	}
	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause(
		"category", fmt.Errorf("%q is not one of Damaged, Lost, Late, Quality, Other", s),
	)
}

func (c Category) Validate() error {
	if c < Damaged || c > Other {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
