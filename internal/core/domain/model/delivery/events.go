package delivery

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

const (
	CreatedEventName        = "delivery.created"
	DriverAssignedEventName = "delivery.driver_assigned"
	StatusChangedEventName  = "delivery.status_changed"
	CancelledEventName      = "delivery.cancelled"
)

// CreatedEvent is raised when a customer books a delivery.
type CreatedEvent struct {
	kernel.BaseEvent
	DeliveryID      kernel.UUID    `json:"delivery_id"`
	CustomerID      kernel.UUID    `json:"customer_id"`
	TrackingNumber  TrackingNumber `json:"tracking_number"`
	PickupAddress   string         `json:"pickup_address"`
	DeliveryAddress string         `json:"delivery_address"`
	PickupDate      time.Time      `json:"pickup_date"`
	Price           float64        `json:"price"`
}

// DriverAssignedEvent is raised when an admin assigns (or replaces) the driver.
type DriverAssignedEvent struct {
	kernel.BaseEvent
	DeliveryID     kernel.UUID    `json:"delivery_id"`
	CustomerID     kernel.UUID    `json:"customer_id"`
	DriverID       kernel.UUID    `json:"driver_id"`
	TrackingNumber TrackingNumber `json:"tracking_number"`
	Status         Status         `json:"status"`
}

// StatusChangedEvent is raised by admin and driver status updates. Re-asserting the
// current status raises nothing.
type StatusChangedEvent struct {
	kernel.BaseEvent
	DeliveryID     kernel.UUID    `json:"delivery_id"`
	CustomerID     kernel.UUID    `json:"customer_id"`
	DriverID       kernel.UUID    `json:"driver_id"`
	TrackingNumber TrackingNumber `json:"tracking_number"`
	From           Status         `json:"from"`
	To             Status         `json:"to"`
	Actor          Actor          `json:"actor"`
}

// IsCompletion reports whether the change delivered the parcel.
func (e StatusChangedEvent) IsCompletion() bool {
	return e.To == Delivered
}

// CancelledEvent is raised when the customer cancels before pickup.
type CancelledEvent struct {
	kernel.BaseEvent
	DeliveryID     kernel.UUID    `json:"delivery_id"`
	CustomerID     kernel.UUID    `json:"customer_id"`
	TrackingNumber TrackingNumber `json:"tracking_number"`
}
