package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrTrackDeliveryQueryIsNotConstructed = errors.New(
		"TrackDeliveryQuery must be created via NewTrackDeliveryQuery constructor",
	)
	ErrTrackByPhoneQueryIsNotConstructed = errors.New(
		"TrackByPhoneQuery must be created via NewTrackByPhoneQuery constructor",
	)
)

// TrackingView is the public projection of a delivery. It carries no identities and
// no price.
type TrackingView struct {
	TrackingNumber  string     `json:"tracking_number"`
	Status          string     `json:"status"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	PackageType     string     `json:"package_type"`
	WeightKg        float64    `json:"weight"`
	PickupDate      time.Time  `json:"pickup_date"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

const trackingViewSelect = `
	SELECT
		d.tracking_number,
		d.status,
		d.pickup_address,
		d.delivery_address,
		d.package_type,
		d.weight_kg,
		d.pickup_date,
		d.delivery_date,
		d.created_at,
		d.updated_at
	FROM deliveries d
`

// TrackDeliveryQuery looks a delivery up by tracking number. No authentication.
type TrackDeliveryQuery struct { //nolint:recvcheck //using for validation
	trackingNumber delivery.TrackingNumber

	guard guard.ConstructorGuard
}

// NewTrackDeliveryQuery normalizes the tracking number to upper case. A string that
// cannot be a tracking number is reported as not found, the same as an unknown one.
func NewTrackDeliveryQuery(trackingNumber string) (TrackDeliveryQuery, error) {
	tn, err := delivery.TrackingNumberFromString(trackingNumber)
	if err != nil {
		return TrackDeliveryQuery{}, errs.NewObjectNotFoundErrorWithCause(
			"trackingNumber", strings.TrimSpace(trackingNumber), err,
		)
	}
	return TrackDeliveryQuery{trackingNumber: tn, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrTrackDeliveryQueryIsNotConstructed)
}

func (q TrackDeliveryQuery) TrackingNumber() delivery.TrackingNumber { return q.trackingNumber }

// TrackByPhoneQuery lists every delivery booked by the account with the given contact
// number. No authentication.
type TrackByPhoneQuery struct { //nolint:recvcheck //using for validation
	phone string

	guard guard.ConstructorGuard
}

func NewTrackByPhoneQuery(phone string) (TrackByPhoneQuery, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return TrackByPhoneQuery{}, errs.NewValueIsRequiredError("phone")
	}
	return TrackByPhoneQuery{phone: phone, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackByPhoneQuery) Validate() error {
	return q.guard.Validate(ErrTrackByPhoneQueryIsNotConstructed)
}

func (q TrackByPhoneQuery) Phone() string { return q.phone }

// TrackDeliveryQueryHandler serves both public tracking lookups.
type TrackDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewTrackDeliveryQueryHandler(db *gorm.DB) TrackDeliveryQueryHandler {
	return TrackDeliveryQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown tracking number.
func (h TrackDeliveryQueryHandler) Handle(ctx context.Context, query TrackDeliveryQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Raw(trackingViewSelect+" WHERE d.tracking_number = ?", query.TrackingNumber().String()).
		Rows()
	if err != nil {
		return TrackingView{}, err
	}
	views, err := collectTrackingViews(rows)
	if err != nil {
		return TrackingView{}, err
	}
	if len(views) == 0 {
		return TrackingView{}, errs.NewObjectNotFoundError("trackingNumber", query.TrackingNumber())
	}
	return views[0], nil
}

// HandleByPhone returns the deliveries newest first. An unknown number yields an
// empty list.
func (h TrackDeliveryQueryHandler) HandleByPhone(ctx context.Context, query TrackByPhoneQuery) ([]TrackingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(trackingViewSelect+`
		JOIN users u ON u.id = d.customer_id
		WHERE u.contact_number = ?
		ORDER BY d.created_at DESC, d.id
	`, query.Phone()).Rows()
	if err != nil {
		return nil, err
	}
	return collectTrackingViews(rows)
}

func collectTrackingViews(rows *sql.Rows) ([]TrackingView, error) {
	defer rows.Close()

	views := make([]TrackingView, 0)
	for rows.Next() {
		var (
			view                         TrackingView
			status, packageType          int
			deliveryDate                 sql.NullTime
			pickupDate, created, updated time.Time
		)
		err := rows.Scan(
			&view.TrackingNumber,
			&status,
			&view.PickupAddress,
			&view.DeliveryAddress,
			&packageType,
			&view.WeightKg,
			&pickupDate,
			&deliveryDate,
			&created,
			&updated,
		)
		if err != nil {
			return nil, err
		}
		view.Status = delivery.Status(status).String()
		view.PackageType = delivery.PackageType(packageType).String()
		view.PickupDate = pickupDate.UTC()
		view.DeliveryDate = toOptionalTime(deliveryDate)
		view.CreatedAt = created.UTC()
		view.UpdatedAt = updated.UTC()
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
