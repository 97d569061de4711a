package ports

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

// DeliveryRepository persists delivery aggregates.
type DeliveryRepository interface {
	// Add stores a new delivery. A duplicate tracking number yields errs.ErrAlreadyExists.
	Add(ctx context.Context, d *delivery.Delivery) error

	// Update persists the current state. Concurrent writers race; the last write wins.
	Update(ctx context.Context, d *delivery.Delivery) error

	// Get returns the delivery or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// ExistsByTrackingNumber is used by booking to regenerate colliding tracking numbers.
	ExistsByTrackingNumber(ctx context.Context, tn delivery.TrackingNumber) (bool, error)
}
