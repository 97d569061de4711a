package review

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ErrDeliveryIsRequired is returned when a review is built without its delivery.
var ErrDeliveryIsRequired = errs.NewValueIsRequiredError("deliveryId")

// Review is a customer's rating of one of their deliveries. Storage keeps at most one
// review per (delivery, user).
type Review struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	userID     kernel.UUID
	rating     int
	comment    string
	createdAt  time.Time
}

// NewReview lets the owner of d rate it.
//
// Returns:
//   - AccessDeniedError when userID did not book the delivery
//   - ValueIsOutOfRangeError when rating is outside 1..5
func NewReview(id kernel.UUID, d *delivery.Delivery, userID kernel.UUID, rating int, comment string, now time.Time) (*Review, error) {
	if err := d.Validate(); err != nil {
		return nil, ErrDeliveryIsRequired
	}
	if !d.IsOwnedBy(userID) {
		return nil, errs.NewAccessDeniedError("customer", "review another customer's delivery")
	}
	return RestoreReview(id, d.ID(), userID, rating, comment, now)
}

// RestoreReview rebuilds a review from storage.
func RestoreReview(id, deliveryID, userID kernel.UUID, rating int, comment string, createdAt time.Time) (*Review, error) {
	var ratingErr error
	if rating < MinRating || rating > MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	if err := errors.Join(id.Validate(), deliveryID.Validate(), userID.Validate(), ratingErr); err != nil {
		return nil, err
	}
	return &Review{
		id:         id,
		deliveryID: deliveryID,
		userID:     userID,
		rating:     rating,
		comment:    strings.TrimSpace(comment),
		createdAt:  createdAt,
	}, nil
}

func (r *Review) ID() kernel.UUID         { return r.id }
func (r *Review) DeliveryID() kernel.UUID { return r.deliveryID }
func (r *Review) UserID() kernel.UUID     { return r.userID }
func (r *Review) Rating() int             { return r.rating }
func (r *Review) Comment() string         { return r.comment }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }
