package queries

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// MinEstimateWeightKg is the lightest parcel the estimate accepts.
const MinEstimateWeightKg = 0.1

var ErrEstimatePriceQueryIsNotConstructed = errors.New(
	"EstimatePriceQuery must be created via NewEstimatePriceQuery constructor",
)

// EstimatePriceQuery is a what-if quote before booking. Both places need a pincode and
// a (city, state) pair.
type EstimatePriceQuery struct { //nolint:recvcheck //using for validation
	pickup      kernel.Place
	dropoff     kernel.Place
	weightKg    float64
	packageType delivery.PackageType

	guard guard.ConstructorGuard
}

func NewEstimatePriceQuery(
	pickup, dropoff kernel.Place,
	weightKg float64,
	packageType delivery.PackageType,
) (EstimatePriceQuery, error) {
	var errList []error
	if !pickup.HasPincode() || !pickup.HasCityState() {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("pickup",
			fmt.Errorf("pincode, city and state are all required")))
	}
	if !dropoff.HasPincode() || !dropoff.HasCityState() {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("delivery",
			fmt.Errorf("pincode, city and state are all required")))
	}
	if weightKg < MinEstimateWeightKg {
		errList = append(errList, errs.NewValueIsOutOfRangeError("weight", weightKg, MinEstimateWeightKg, "unbounded"))
	}
	errList = append(errList, packageType.Validate())
	if err := errors.Join(errList...); err != nil {
		return EstimatePriceQuery{}, err
	}

	return EstimatePriceQuery{
		pickup:      pickup,
		dropoff:     dropoff,
		weightKg:    weightKg,
		packageType: packageType,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q EstimatePriceQuery) Validate() error {
	return q.guard.Validate(ErrEstimatePriceQueryIsNotConstructed)
}

func (q EstimatePriceQuery) Pickup() kernel.Place              { return q.pickup }
func (q EstimatePriceQuery) Dropoff() kernel.Place             { return q.dropoff }
func (q EstimatePriceQuery) WeightKg() float64                 { return q.weightKg }
func (q EstimatePriceQuery) PackageType() delivery.PackageType { return q.packageType }

// EstimatePriceQueryHandler quotes without touching the database.
type EstimatePriceQueryHandler struct {
	quoter *services.Quoter
}

func NewEstimatePriceQueryHandler(quoter *services.Quoter) EstimatePriceQueryHandler {
	return EstimatePriceQueryHandler{quoter: quoter}
}

// Handle returns the itemized quote, or services.ErrDistanceUnknown when a place
// cannot be resolved.
func (h EstimatePriceQueryHandler) Handle(query EstimatePriceQuery) (services.PriceBreakdown, error) {
	if err := query.Validate(); err != nil {
		return services.PriceBreakdown{}, err
	}
	return h.quoter.Estimate(query.Pickup(), query.Dropoff(), query.WeightKg(), query.PackageType())
}
