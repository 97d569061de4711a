package delivery

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not built by NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrPickupAddressIsRequired is returned for an empty pickup address.
	ErrPickupAddressIsRequired = errs.NewValueIsRequiredError("pickupAddress")
	// ErrDeliveryAddressIsRequired is returned for an empty delivery address.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("deliveryAddress")
	// ErrPickupDateIsRequired is returned for a zero pickup date.
	ErrPickupDateIsRequired = errs.NewValueIsRequiredError("pickupDate")
)

const (
	reasonEditAfterPickup   = "cannot edit delivery after pickup"
	reasonCancelAfterPickup = "cannot cancel delivery after pickup"
)

// Details are the customer-supplied booking fields. Every field except the places is
// required; places may be partially filled and only feed the distance calculation.
type Details struct {
	PickupAddress   string
	DeliveryAddress string
	PickupPlace     kernel.Place
	DeliveryPlace   kernel.Place
	WeightKg        float64
	PackageType     PackageType
	PickupDate      time.Time
}

// Quote is the priced distance attached to a delivery.
type Quote struct {
	DistanceKm float64
	Price      float64
}

// Patch carries an edit. Nil fields are left untouched.
type Patch struct {
	PickupAddress   *string
	DeliveryAddress *string
	PickupPlace     *kernel.Place
	DeliveryPlace   *kernel.Place
	WeightKg        *float64
	PackageType     *PackageType
	PickupDate      *time.Time
}

// EditResult tells the caller whether the quote must be recomputed.
type EditResult struct {
	// PriceAffected is set when an address, place, weight or package type changed.
	PriceAffected bool
	// PlacesChanged is set when a pickup or delivery place changed, so the distance
	// has to be derived again instead of reusing the stored one.
	PlacesChanged bool
}

// Delivery is the aggregate root of a booked shipment.
//
// Invariants:
//   - The tracking number is assigned at construction and never changes
//   - The customer may edit or cancel only while the status is Pending or Scheduled
//   - The delivery date is stamped the first time the status becomes Delivered and
//     is never overwritten
//   - Only the assigned driver may move a delivery, and only to Out for Delivery,
//     Delivered or Cancelled
//
// Every state transition records a domain event that is dispatched after the
// surrounding unit of work commits.
type Delivery struct {
	kernel.EventRecorder

	id              kernel.UUID
	customerID      kernel.UUID
	driverID        kernel.UUID
	status          Status
	trackingNumber  TrackingNumber
	pickupAddress   string
	deliveryAddress string
	pickupPlace     kernel.Place
	deliveryPlace   kernel.Place
	weightKg        float64
	packageType     PackageType
	pickupDate      time.Time
	deliveryDate    *time.Time
	distanceKm      float64
	price           float64
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewDelivery books a delivery in Pending status and records a CreatedEvent.
//
// Parameters:
//   - id: identifier of the new delivery
//   - customerID: the booking customer, who owns the delivery
//   - trackingNumber: a freshly generated tracking number
//   - details: booking fields
//   - quote: distance and price computed by the pricing engine
//   - now: booking time
//
// Returns all field errors joined, so callers can report every problem at once.
//
// Example:
//
//	d, err := delivery.NewDelivery(kernel.NewUUID(), customerID, delivery.NewTrackingNumber(),
//	    details, delivery.Quote{DistanceKm: 100, Price: 620}, time.Now())
func NewDelivery(
	id, customerID kernel.UUID,
	trackingNumber TrackingNumber,
	details Details,
	quote Quote,
	now time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setCustomerID(customerID),
		d.setTrackingNumber(trackingNumber),
		d.setDetails(details),
		d.setQuote(quote),
	); err != nil {
		return nil, err
	}

	d.Record(CreatedEvent{
		BaseEvent:       kernel.NewBaseEvent(CreatedEventName, now),
		DeliveryID:      d.id,
		CustomerID:      d.customerID,
		TrackingNumber:  d.trackingNumber,
		PickupAddress:   d.pickupAddress,
		DeliveryAddress: d.deliveryAddress,
		PickupDate:      d.pickupDate,
		Price:           d.price,
	})

	return d, nil
}

// Snapshot is the persisted state of a delivery, used by RestoreDelivery.
type Snapshot struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	DriverID       kernel.UUID
	Status         Status
	TrackingNumber TrackingNumber
	Details        Details
	DeliveryDate   *time.Time
	Quote          Quote
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreDelivery rebuilds a delivery from storage without raising events.
func RestoreDelivery(s Snapshot) (*Delivery, error) {
	d := &Delivery{
		driverID:  s.DriverID,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}
	if s.DeliveryDate != nil {
		date := *s.DeliveryDate
		d.deliveryDate = &date
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setCustomerID(s.CustomerID),
		d.setStatus(s.Status),
		d.setTrackingNumber(s.TrackingNumber),
		d.setDetails(s.Details),
		d.setQuote(s.Quote),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate reports whether the delivery was built through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID                { return d.id }
func (d *Delivery) CustomerID() kernel.UUID        { return d.customerID }
func (d *Delivery) Status() Status                 { return d.status }
func (d *Delivery) TrackingNumber() TrackingNumber { return d.trackingNumber }
func (d *Delivery) PickupAddress() string          { return d.pickupAddress }
func (d *Delivery) DeliveryAddress() string        { return d.deliveryAddress }
func (d *Delivery) PickupPlace() kernel.Place      { return d.pickupPlace }
func (d *Delivery) DeliveryPlace() kernel.Place    { return d.deliveryPlace }
func (d *Delivery) WeightKg() float64              { return d.weightKg }
func (d *Delivery) PackageType() PackageType       { return d.packageType }
func (d *Delivery) PickupDate() time.Time          { return d.pickupDate }
func (d *Delivery) DistanceKm() float64            { return d.distanceKm }
func (d *Delivery) Price() float64                 { return d.price }
func (d *Delivery) CreatedAt() time.Time           { return d.createdAt }
func (d *Delivery) UpdatedAt() time.Time           { return d.updatedAt }

// DriverID returns the assigned driver, or the zero UUID when none is assigned.
func (d *Delivery) DriverID() kernel.UUID { return d.driverID }

// HasDriver reports whether a driver is assigned.
func (d *Delivery) HasDriver() bool { return !d.driverID.IsZero() }

// DeliveryDate returns when the delivery was completed, or nil.
func (d *Delivery) DeliveryDate() *time.Time {
	if d.deliveryDate == nil {
		return nil
	}
	date := *d.deliveryDate
	return &date
}

// Details returns the current booking fields.
func (d *Delivery) Details() Details {
	return Details{
		PickupAddress:   d.pickupAddress,
		DeliveryAddress: d.deliveryAddress,
		PickupPlace:     d.pickupPlace,
		DeliveryPlace:   d.deliveryPlace,
		WeightKg:        d.weightKg,
		PackageType:     d.packageType,
		PickupDate:      d.pickupDate,
	}
}

// IsOwnedBy reports whether customerID booked the delivery.
func (d *Delivery) IsOwnedBy(customerID kernel.UUID) bool {
	return d.customerID.IsEqual(customerID)
}

// IsAssignedTo reports whether driverID is the assigned driver.
func (d *Delivery) IsAssignedTo(driverID kernel.UUID) bool {
	return d.HasDriver() && d.driverID.IsEqual(driverID)
}

// Edit applies a customer patch.
//
// Business rules:
//   - Only the owning customer may edit (AccessDeniedError otherwise)
//   - Only Pending or Scheduled deliveries can be edited (StateConflictError otherwise)
//   - On any error the delivery is left unchanged
//
// The returned EditResult says whether the caller must re-quote. Re-quoting is done
// by the pricing services and applied with Reprice.
func (d *Delivery) Edit(customerID kernel.UUID, patch Patch, now time.Time) (EditResult, error) {
	if !d.IsOwnedBy(customerID) {
		return EditResult{}, errs.NewAccessDeniedError("customer", "edit another customer's delivery")
	}
	if !d.status.IsBeforePickup() {
		return EditResult{}, errs.NewStateConflictError("delivery", reasonEditAfterPickup)
	}

	current := d.Details()
	next := current
	if patch.PickupAddress != nil {
		next.PickupAddress = *patch.PickupAddress
	}
	if patch.DeliveryAddress != nil {
		next.DeliveryAddress = *patch.DeliveryAddress
	}
	if patch.PickupPlace != nil {
		next.PickupPlace = *patch.PickupPlace
	}
	if patch.DeliveryPlace != nil {
		next.DeliveryPlace = *patch.DeliveryPlace
	}
	if patch.WeightKg != nil {
		next.WeightKg = *patch.WeightKg
	}
	if patch.PackageType != nil {
		next.PackageType = *patch.PackageType
	}
	if patch.PickupDate != nil {
		next.PickupDate = *patch.PickupDate
	}

	candidate := *d
	if err := candidate.setDetails(next); err != nil {
		return EditResult{}, err
	}
	next = candidate.Details()

	result := EditResult{
		PlacesChanged: !next.PickupPlace.IsEqual(current.PickupPlace) ||
			!next.DeliveryPlace.IsEqual(current.DeliveryPlace),
	}
	result.PriceAffected = result.PlacesChanged ||
		next.PickupAddress != current.PickupAddress ||
		next.DeliveryAddress != current.DeliveryAddress ||
		next.WeightKg != current.WeightKg ||
		next.PackageType != current.PackageType

	if result.PriceAffected || !next.PickupDate.Equal(current.PickupDate) {
		_ = d.setDetails(next)
		d.updatedAt = now
	}
	return result, nil
}

// Reprice stores a recomputed quote after an edit.
func (d *Delivery) Reprice(quote Quote, now time.Time) error {
	if err := d.setQuote(quote); err != nil {
		return err
	}
	d.updatedAt = now
	return nil
}

// Cancel is the customer's cancellation. It is allowed only before pickup and records
// a CancelledEvent.
func (d *Delivery) Cancel(customerID kernel.UUID, now time.Time) error {
	if !d.IsOwnedBy(customerID) {
		return errs.NewAccessDeniedError("customer", "cancel another customer's delivery")
	}
	if !d.status.IsBeforePickup() {
		return errs.NewStateConflictError("delivery", reasonCancelAfterPickup)
	}
	if err := CanTransition(d.status, Cancelled, ActorCustomer); err != nil {
		return err
	}

	d.status = Cancelled
	d.updatedAt = now
	d.Record(CancelledEvent{
		BaseEvent:      kernel.NewBaseEvent(CancelledEventName, now),
		DeliveryID:     d.id,
		CustomerID:     d.customerID,
		TrackingNumber: d.trackingNumber,
	})
	return nil
}

// AssignDriver attaches a driver. A Pending delivery advances to Scheduled; any other
// non-terminal status is kept.
//
// Returns:
//   - ValueIsInvalidError when the candidate does not have the driver role
//   - StateConflictError when the delivery is already Delivered or Cancelled
//
// Assigning the driver that is already assigned to a Scheduled (or later) delivery
// changes nothing and records no event.
func (d *Delivery) AssignDriver(driver *user.User, now time.Time) error {
	if err := driver.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if driver.Role() != user.Driver {
		return errs.NewValueIsInvalidErrorWithCause("driverId",
			fmt.Errorf("user %s has role %s, not driver", driver.ID(), driver.Role()))
	}
	if d.status.IsTerminal() {
		return errs.NewStateConflictError("delivery",
			fmt.Sprintf("cannot assign a driver to a %s delivery", strings.ToLower(d.status.String())))
	}
	if d.IsAssignedTo(driver.ID()) && d.status != Pending {
		return nil
	}

	d.driverID = driver.ID()
	if d.status == Pending {
		if err := CanTransition(Pending, Scheduled, ActorSystem); err != nil {
			return err
		}
		d.status = Scheduled
	}
	d.updatedAt = now

	d.Record(DriverAssignedEvent{
		BaseEvent:      kernel.NewBaseEvent(DriverAssignedEventName, now),
		DeliveryID:     d.id,
		CustomerID:     d.customerID,
		DriverID:       d.driverID,
		TrackingNumber: d.trackingNumber,
		Status:         d.status,
	})
	return nil
}

// ChangeStatus moves the delivery on behalf of an admin or driver.
//
// Business rules:
//   - A driver must be the assigned driver (AccessDeniedError otherwise)
//   - A driver may only request Out for Delivery, Delivered or Cancelled
//   - Re-asserting the current status is a no-op: (false, nil), no event
//   - Everything else must be an edge of the transition table for actor
//   - Entering Delivered stamps the delivery date unless it is already set
//
// Returns whether the status changed.
func (d *Delivery) ChangeStatus(actor Actor, actorID kernel.UUID, to Status, now time.Time) (bool, error) {
	if err := to.Validate(); err != nil {
		return false, err
	}

	if actor == ActorDriver {
		if !d.IsAssignedTo(actorID) {
			return false, errs.NewAccessDeniedError("driver", "update a delivery assigned to someone else")
		}
		if !driverTargets[to] {
			return false, errs.NewStateConflictError("delivery", fmt.Sprintf(
				"drivers may only set %s, got %s", describe([]Status{OutForDelivery, Delivered, Cancelled}), to))
		}
	}

	if to == d.status {
		return false, nil
	}
	if err := CanTransition(d.status, to, actor); err != nil {
		return false, err
	}

	from := d.status
	d.status = to
	if to == Delivered && d.deliveryDate == nil {
		stamp := now
		d.deliveryDate = &stamp
	}
	d.updatedAt = now

	d.Record(StatusChangedEvent{
		BaseEvent:      kernel.NewBaseEvent(StatusChangedEventName, now),
		DeliveryID:     d.id,
		CustomerID:     d.customerID,
		DriverID:       d.driverID,
		TrackingNumber: d.trackingNumber,
		From:           from,
		To:             to,
		Actor:          actor,
	})
	return true, nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	d.customerID = id
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setTrackingNumber(tn TrackingNumber) error {
	if tn.IsZero() {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	d.trackingNumber = tn
	return nil
}

func (d *Delivery) setDetails(details Details) error {
	var errList []error

	pickup := strings.TrimSpace(details.PickupAddress)
	if pickup == "" {
		errList = append(errList, ErrPickupAddressIsRequired)
	}
	dropoff := strings.TrimSpace(details.DeliveryAddress)
	if dropoff == "" {
		errList = append(errList, ErrDeliveryAddressIsRequired)
	}
	if math.IsNaN(details.WeightKg) || math.IsInf(details.WeightKg, 0) || details.WeightKg < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("weightKg", details.WeightKg, 0, "unbounded"))
	}
	if err := details.PackageType.Validate(); err != nil {
		errList = append(errList, err)
	}
	if details.PickupDate.IsZero() {
		errList = append(errList, ErrPickupDateIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	d.pickupAddress = pickup
	d.deliveryAddress = dropoff
	d.pickupPlace = details.PickupPlace
	d.deliveryPlace = details.DeliveryPlace
	d.weightKg = details.WeightKg
	d.packageType = details.PackageType
	d.pickupDate = details.PickupDate
	return nil
}

func (d *Delivery) setQuote(q Quote) error {
	var errList []error
	if math.IsNaN(q.DistanceKm) || q.DistanceKm < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("distanceKm", q.DistanceKm, 0, "unbounded"))
	}
	if math.IsNaN(q.Price) || q.Price < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("price", q.Price, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	d.distanceKm = q.DistanceKm
	d.price = q.Price
	return nil
}
