package delivery_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func place(t *testing.T, pin, city, state string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace(pin, city, state)
	require.NoError(t, err)
	return p
}

func validDetails(t *testing.T) delivery.Details {
	return delivery.Details{
		PickupAddress:   "12 MG Road",
		DeliveryAddress: "4 Anna Salai",
		PickupPlace:     place(t, "560001", "Bengaluru", "Karnataka"),
		DeliveryPlace:   place(t, "600002", "Chennai", "Tamil Nadu"),
		WeightKg:        5,
		PackageType:     delivery.Medium,
		PickupDate:      bookedAt.Add(24 * time.Hour),
	}
}

func newDelivery(t *testing.T, customerID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), customerID, delivery.NewTrackingNumber(),
		validDetails(t), delivery.Quote{DistanceKm: 100, Price: 620}, bookedAt)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func newDriver(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "driver@example.com", "hash", "Dev", user.Driver, bookedAt)
	require.NoError(t, err)
	return u
}

func TestNewDelivery(t *testing.T) {
	t.Run("pending_with_created_event", func(t *testing.T) {
		// Given
		customerID := kernel.NewUUID()
		tn := delivery.NewTrackingNumber()

		// When
		d, err := delivery.NewDelivery(kernel.NewUUID(), customerID, tn, validDetails(t),
			delivery.Quote{DistanceKm: 100, Price: 620}, bookedAt)

		// Then
		require.NoError(t, err)
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, tn, d.TrackingNumber())
		assert.False(t, d.HasDriver())
		assert.Nil(t, d.DeliveryDate())
		assert.InDelta(t, 620, d.Price(), 1e-9)

		events := d.DomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(delivery.CreatedEvent)
		require.True(t, ok)
		assert.True(t, created.CustomerID.IsEqual(customerID))
		assert.Equal(t, delivery.CreatedEventName, created.EventName())
	})

	t.Run("joins_field_errors", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), kernel.UUID{}, delivery.TrackingNumber{},
			delivery.Details{WeightKg: -1}, delivery.Quote{Price: -5}, bookedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, delivery.ErrPickupAddressIsRequired)
		assert.ErrorIs(t, err, delivery.ErrPickupDateIsRequired)
	})
}

func TestDelivery_Edit(t *testing.T) {
	t.Run("weight_change_affects_price_but_not_places", func(t *testing.T) {
		// Given
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		weight := 8.0

		// When
		res, err := d.Edit(customerID, delivery.Patch{WeightKg: &weight}, bookedAt.Add(time.Hour))

		// Then
		require.NoError(t, err)
		assert.True(t, res.PriceAffected)
		assert.False(t, res.PlacesChanged)
		assert.InDelta(t, 8, d.WeightKg(), 1e-9)
		assert.Equal(t, bookedAt.Add(time.Hour), d.UpdatedAt())
	})

	t.Run("address_change_without_place_keeps_places", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		addr := "77 Brigade Road"

		res, err := d.Edit(customerID, delivery.Patch{PickupAddress: &addr}, bookedAt)

		require.NoError(t, err)
		assert.True(t, res.PriceAffected)
		assert.False(t, res.PlacesChanged)
	})

	t.Run("new_place_is_flagged", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		p := place(t, "400001", "Mumbai", "Maharashtra")

		res, err := d.Edit(customerID, delivery.Patch{DeliveryPlace: &p}, bookedAt)

		require.NoError(t, err)
		assert.True(t, res.PlacesChanged)
		assert.True(t, d.DeliveryPlace().IsEqual(p))
	})

	t.Run("pickup_date_only", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		date := bookedAt.Add(72 * time.Hour)

		res, err := d.Edit(customerID, delivery.Patch{PickupDate: &date}, bookedAt.Add(time.Minute))

		require.NoError(t, err)
		assert.False(t, res.PriceAffected)
		assert.Equal(t, date, d.PickupDate())
		assert.Equal(t, bookedAt.Add(time.Minute), d.UpdatedAt())
	})

	t.Run("invalid_patch_leaves_delivery_unchanged", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		before := d.Details()
		blank := "  "
		weight := -3.0

		_, err := d.Edit(customerID, delivery.Patch{PickupAddress: &blank, WeightKg: &weight}, bookedAt)

		require.Error(t, err)
		assert.Equal(t, before, d.Details())
	})

	t.Run("other_customer_is_denied", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		weight := 1.0

		_, err := d.Edit(kernel.NewUUID(), delivery.Patch{WeightKg: &weight}, bookedAt)

		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("after_pickup_is_a_conflict", func(t *testing.T) {
		// Given
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		driver := newDriver(t)
		require.NoError(t, d.AssignDriver(driver, bookedAt))
		_, err := d.ChangeStatus(delivery.ActorDriver, driver.ID(), delivery.OutForDelivery, bookedAt)
		require.NoError(t, err)
		before := d.Details()
		weight := 1.0

		// When
		_, err = d.Edit(customerID, delivery.Patch{WeightKg: &weight}, bookedAt)

		// Then
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Contains(t, err.Error(), "cannot edit delivery after pickup")
		assert.Equal(t, before, d.Details())
	})
}

func TestDelivery_Cancel(t *testing.T) {
	t.Run("pending_and_scheduled_can_be_cancelled", func(t *testing.T) {
		customerID := kernel.NewUUID()
		pending := newDelivery(t, customerID)
		scheduled := newDelivery(t, customerID)
		require.NoError(t, scheduled.AssignDriver(newDriver(t), bookedAt))
		scheduled.ClearDomainEvents()

		for _, d := range []*delivery.Delivery{pending, scheduled} {
			require.NoError(t, d.Cancel(customerID, bookedAt))
			assert.Equal(t, delivery.Cancelled, d.Status())
			require.Len(t, d.DomainEvents(), 1)
			assert.Equal(t, delivery.CancelledEventName, d.DomainEvents()[0].EventName())
		}
	})

	t.Run("after_pickup_is_a_conflict", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		_, err := d.ChangeStatus(delivery.ActorAdmin, kernel.NewUUID(), delivery.OutForDelivery, bookedAt)
		require.NoError(t, err)
		d.ClearDomainEvents()

		err = d.Cancel(customerID, bookedAt)

		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Contains(t, err.Error(), "cannot cancel delivery after pickup")
		assert.Equal(t, delivery.OutForDelivery, d.Status())
		assert.Empty(t, d.DomainEvents())
	})

	t.Run("other_customer_is_denied", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())

		assert.ErrorIs(t, d.Cancel(kernel.NewUUID(), bookedAt), errs.ErrAccessDenied)
	})
}

func TestDelivery_AssignDriver(t *testing.T) {
	t.Run("pending_becomes_scheduled", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		driver := newDriver(t)

		require.NoError(t, d.AssignDriver(driver, bookedAt))

		assert.Equal(t, delivery.Scheduled, d.Status())
		assert.True(t, d.IsAssignedTo(driver.ID()))
		require.Len(t, d.DomainEvents(), 1)
		ev := d.DomainEvents()[0].(delivery.DriverAssignedEvent)
		assert.Equal(t, delivery.Scheduled, ev.Status)
		assert.True(t, ev.DriverID.IsEqual(driver.ID()))
	})

	t.Run("out_for_delivery_keeps_status", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		_, err := d.ChangeStatus(delivery.ActorAdmin, kernel.NewUUID(), delivery.OutForDelivery, bookedAt)
		require.NoError(t, err)

		require.NoError(t, d.AssignDriver(newDriver(t), bookedAt))

		assert.Equal(t, delivery.OutForDelivery, d.Status())
	})

	t.Run("same_driver_twice_is_silent", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		driver := newDriver(t)
		require.NoError(t, d.AssignDriver(driver, bookedAt))
		d.ClearDomainEvents()

		require.NoError(t, d.AssignDriver(driver, bookedAt))

		assert.Empty(t, d.DomainEvents())
	})

	t.Run("candidate_must_be_a_driver", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		customer, _ := user.NewUser(kernel.NewUUID(), "c@example.com", "hash", "Cara", user.Customer, bookedAt)

		err := d.AssignDriver(customer, bookedAt)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, d.HasDriver())
	})

	t.Run("terminal_is_a_conflict", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := newDelivery(t, customerID)
		require.NoError(t, d.Cancel(customerID, bookedAt))

		assert.ErrorIs(t, d.AssignDriver(newDriver(t), bookedAt), errs.ErrStateConflict)
	})
}

func TestDelivery_ChangeStatus(t *testing.T) {
	t.Run("delivered_stamps_date_once", func(t *testing.T) {
		// Given
		d := newDelivery(t, kernel.NewUUID())
		admin := kernel.NewUUID()
		first := bookedAt.Add(48 * time.Hour)

		// When
		changed, err := d.ChangeStatus(delivery.ActorAdmin, admin, delivery.Delivered, first)
		require.NoError(t, err)
		again, err := d.ChangeStatus(delivery.ActorAdmin, admin, delivery.Delivered, first.Add(time.Hour))
		require.NoError(t, err)

		// Then
		assert.True(t, changed)
		assert.False(t, again)
		require.NotNil(t, d.DeliveryDate())
		assert.Equal(t, first, *d.DeliveryDate())
		assert.Len(t, d.DomainEvents(), 1)
	})

	t.Run("delivered_date_survives_correction_and_redelivery", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		admin := kernel.NewUUID()
		first := bookedAt.Add(48 * time.Hour)
		_, _ = d.ChangeStatus(delivery.ActorAdmin, admin, delivery.Delivered, first)
		_, _ = d.ChangeStatus(delivery.ActorAdmin, admin, delivery.OutForDelivery, first.Add(time.Hour))

		_, err := d.ChangeStatus(delivery.ActorAdmin, admin, delivery.Delivered, first.Add(2*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, first, *d.DeliveryDate())
	})

	t.Run("driver_cannot_set_scheduled", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		driver := newDriver(t)
		require.NoError(t, d.AssignDriver(driver, bookedAt))
		d.ClearDomainEvents()

		changed, err := d.ChangeStatus(delivery.ActorDriver, driver.ID(), delivery.Scheduled, bookedAt)

		assert.False(t, changed)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Empty(t, d.DomainEvents())
	})

	t.Run("driver_must_be_assigned", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		require.NoError(t, d.AssignDriver(newDriver(t), bookedAt))

		_, err := d.ChangeStatus(delivery.ActorDriver, kernel.NewUUID(), delivery.OutForDelivery, bookedAt)

		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("driver_cannot_reopen_terminal", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		driver := newDriver(t)
		require.NoError(t, d.AssignDriver(driver, bookedAt))
		_, err := d.ChangeStatus(delivery.ActorDriver, driver.ID(), delivery.Delivered, bookedAt)
		require.NoError(t, err)

		_, err = d.ChangeStatus(delivery.ActorDriver, driver.ID(), delivery.Cancelled, bookedAt)

		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, delivery.Delivered, d.Status())
	})

	t.Run("event_carries_transition", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())
		driver := newDriver(t)
		require.NoError(t, d.AssignDriver(driver, bookedAt))
		d.ClearDomainEvents()

		_, err := d.ChangeStatus(delivery.ActorDriver, driver.ID(), delivery.Delivered, bookedAt)
		require.NoError(t, err)

		ev := d.DomainEvents()[0].(delivery.StatusChangedEvent)
		assert.Equal(t, delivery.Scheduled, ev.From)
		assert.Equal(t, delivery.Delivered, ev.To)
		assert.Equal(t, delivery.ActorDriver, ev.Actor)
		assert.True(t, ev.IsCompletion())
	})

	t.Run("invalid_status", func(t *testing.T) {
		d := newDelivery(t, kernel.NewUUID())

		_, err := d.ChangeStatus(delivery.ActorAdmin, kernel.NewUUID(), delivery.Status(42), bookedAt)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreDelivery(t *testing.T) {
	delivered := bookedAt.Add(time.Hour)
	s := delivery.Snapshot{
		ID:             kernel.NewUUID(),
		CustomerID:     kernel.NewUUID(),
		DriverID:       kernel.NewUUID(),
		Status:         delivery.Delivered,
		TrackingNumber: delivery.NewTrackingNumber(),
		Details:        validDetails(t),
		DeliveryDate:   &delivered,
		Quote:          delivery.Quote{DistanceKm: 12.5, Price: 182.5},
		CreatedAt:      bookedAt,
		UpdatedAt:      delivered,
	}

	d, err := delivery.RestoreDelivery(s)

	require.NoError(t, err)
	assert.NoError(t, d.Validate())
	assert.Empty(t, d.DomainEvents())
	assert.Equal(t, delivery.Delivered, d.Status())
	assert.True(t, d.IsAssignedTo(s.DriverID))
	assert.Equal(t, delivered, *d.DeliveryDate())

	_, err = delivery.RestoreDelivery(delivery.Snapshot{})
	assert.Error(t, err)

	var zero *delivery.Delivery
	assert.ErrorIs(t, zero.Validate(), delivery.ErrDeliveryIsNotConstructed)
}
