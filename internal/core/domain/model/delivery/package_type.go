package delivery

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// PackageType classifies a parcel for pricing. The declaration order is the surcharge
// tier order: a later type never costs less than an earlier one.
type PackageType int

const (
	UnknownPackageType PackageType = iota
	Small
	Medium
	Large
	Fragile
	Electronics
)

func getPackageTypeStrings() map[PackageType]string {
	return map[PackageType]string{
		UnknownPackageType: "Unknown",
		Small:              "Small",
		Medium:             "Medium",
		Large:              "Large",
		Fragile:            "Fragile",
		Electronics:        "Electronics",
	}
}

// PackageTypes lists the valid package types in surcharge tier order.
func PackageTypes() []PackageType {
	return []PackageType{Small, Medium, Large, Fragile, Electronics}
}

// ParsePackageType converts a name such as "fragile" to a PackageType.
func ParsePackageType(s string) (PackageType, error) {
	needle := strings.TrimSpace(s)
	for _, pt := range PackageTypes() {
		if strings.EqualFold(pt.String(), needle) {
			return pt, nil
		}
	}
	return UnknownPackageType, errs.NewValueIsInvalidErrorWithCause(
		"packageType", fmt.Errorf("%q is not one of Small, Medium, Large, Fragile, Electronics", s),
	)
}

// Validate rejects UnknownPackageType and out-of-range values.
func (p PackageType) Validate() error {
	if p < Small || p > Electronics {
		return errs.NewValueIsInvalidErrorWithCause("packageType", fmt.Errorf("%d is not a valid package type", p))
	}
	return nil
}

func (p PackageType) String() string {
	if str, ok := getPackageTypeStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// MarshalText lets package types appear by name in JSON payloads.
func (p PackageType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
