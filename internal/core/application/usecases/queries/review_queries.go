package queries

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListMyReviewsQueryIsNotConstructed = errors.New(
		"ListMyReviewsQuery must be created via NewListMyReviewsQuery constructor",
	)
	ErrListDeliveryReviewsQueryIsNotConstructed = errors.New(
		"ListDeliveryReviewsQuery must be created via NewListDeliveryReviewsQuery constructor",
	)
)

// UnknownTrackingNumber stands in for the tracking number of a delivery that no longer
// exists.
const UnknownTrackingNumber = "Unknown"

// AnonymousReviewer stands in for the name of a reviewer whose account is gone.
const AnonymousReviewer = "Anonymous"

// MyReviewView is one of the viewer's own reviews.
type MyReviewView struct {
	ID             kernel.UUID `json:"id"`
	DeliveryID     kernel.UUID `json:"delivery_id"`
	TrackingNumber string      `json:"tracking_number"`
	Rating         int         `json:"rating"`
	Comment        string      `json:"comment"`
	CreatedAt      time.Time   `json:"created_at"`
}

// DeliveryReviewView is a review as shown publicly on a delivery.
type DeliveryReviewView struct {
	ID        kernel.UUID `json:"id"`
	UserName  string      `json:"user_name"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"created_at"`
}

type ListMyReviewsQuery struct { //nolint:recvcheck //using for validation
	viewer Viewer

	guard guard.ConstructorGuard
}

func NewListMyReviewsQuery(viewer Viewer) (ListMyReviewsQuery, error) {
	if err := viewer.Validate(); err != nil {
		return ListMyReviewsQuery{}, err
	}
	return ListMyReviewsQuery{viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMyReviewsQuery) Validate() error {
	return q.guard.Validate(ErrListMyReviewsQueryIsNotConstructed)
}

func (q ListMyReviewsQuery) Viewer() Viewer { return q.viewer }

// ListDeliveryReviewsQuery is public.
type ListDeliveryReviewsQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListDeliveryReviewsQuery(deliveryID kernel.UUID) (ListDeliveryReviewsQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return ListDeliveryReviewsQuery{}, err
	}
	return ListDeliveryReviewsQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListDeliveryReviewsQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveryReviewsQueryIsNotConstructed)
}

func (q ListDeliveryReviewsQuery) DeliveryID() kernel.UUID { return q.deliveryID }

type ReviewQueryHandler struct {
	db     *gorm.DB
	policy *services.Policy
}

func NewReviewQueryHandler(db *gorm.DB, policy *services.Policy) ReviewQueryHandler {
	return ReviewQueryHandler{db: db, policy: policy}
}

// HandleMine lists the viewer's reviews, newest first.
func (h ReviewQueryHandler) HandleMine(ctx context.Context, query ListMyReviewsQuery) ([]MyReviewView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Viewer().Role, services.ActionReviewDelivery); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.delivery_id,
			COALESCE(d.tracking_number, ?),
			r.rating,
			r.comment,
			r.created_at
		FROM reviews r
		LEFT JOIN deliveries d ON d.id = r.delivery_id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC, r.id
	`, UnknownTrackingNumber, query.Viewer().ID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]MyReviewView, 0)
	for rows.Next() {
		var (
			view           MyReviewView
			id, deliveryID uuid.UUID
		)
		err = rows.Scan(&id, &deliveryID, &view.TrackingNumber, &view.Rating, &view.Comment, &view.CreatedAt)
		if err != nil {
			return nil, err
		}
		if view.ID, err = toID(id); err != nil {
			return nil, err
		}
		if view.DeliveryID, err = toID(deliveryID); err != nil {
			return nil, err
		}
		view.CreatedAt = view.CreatedAt.UTC()
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// HandleForDelivery lists the reviews of a delivery, newest first. An unknown delivery
// is ObjectNotFoundError.
func (h ReviewQueryHandler) HandleForDelivery(
	ctx context.Context,
	query ListDeliveryReviewsQuery,
) ([]DeliveryReviewView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var exists bool
	err := db.Raw("SELECT EXISTS (SELECT 1 FROM deliveries WHERE id = ?)", query.DeliveryID().Bytes()).
		Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("deliveryID", query.DeliveryID())
	}

	rows, err := db.Raw(`
		SELECT
			r.id,
			COALESCE(u.name, ?),
			r.rating,
			r.comment,
			r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.delivery_id = ?
		ORDER BY r.created_at DESC, r.id
	`, AnonymousReviewer, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]DeliveryReviewView, 0)
	for rows.Next() {
		var (
			view DeliveryReviewView
			id   uuid.UUID
		)
		if err = rows.Scan(&id, &view.UserName, &view.Rating, &view.Comment, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = toID(id); err != nil {
			return nil, err
		}
		view.CreatedAt = view.CreatedAt.UTC()
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
