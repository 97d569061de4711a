package queries

import (
	"database/sql"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PlaceView is one end of a delivery route.
type PlaceView struct {
	Pincode string `json:"pincode,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

// DeliveryView is the full read model of a delivery, as shown to its owner, its driver
// and admins. CustomerName and CustomerEmail come from the users table.
type DeliveryView struct {
	ID              kernel.UUID  `json:"id"`
	TrackingNumber  string       `json:"tracking_number"`
	CustomerID      kernel.UUID  `json:"user_id"`
	CustomerName    string       `json:"user_name"`
	CustomerEmail   string       `json:"user_email"`
	DriverID        *kernel.UUID `json:"driver_id,omitempty"`
	Status          string       `json:"status"`
	PickupAddress   string       `json:"pickup_address"`
	DeliveryAddress string       `json:"delivery_address"`
	PickupPlace     PlaceView    `json:"pickup_place"`
	DeliveryPlace   PlaceView    `json:"delivery_place"`
	WeightKg        float64      `json:"weight"`
	PackageType     string       `json:"package_type"`
	PickupDate      time.Time    `json:"pickup_date"`
	DeliveryDate    *time.Time   `json:"delivery_date,omitempty"`
	DistanceKm      float64      `json:"distance_km"`
	Price           float64      `json:"price"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

const deliveryViewSelect = `
	SELECT
		d.id,
		d.tracking_number,
		d.customer_id,
		COALESCE(u.name, ''),
		COALESCE(u.email, ''),
		d.driver_id,
		d.status,
		d.pickup_address,
		d.delivery_address,
		d.pickup_pincode,
		d.pickup_city,
		d.pickup_state,
		d.delivery_pincode,
		d.delivery_city,
		d.delivery_state,
		d.weight_kg,
		d.package_type,
		d.pickup_date,
		d.delivery_date,
		d.distance_km,
		d.price,
		d.created_at,
		d.updated_at
	FROM deliveries d
	LEFT JOIN users u ON u.id = d.customer_id
`

func scanDeliveryView(rows *sql.Rows) (DeliveryView, error) {
	var (
		view                         DeliveryView
		id, customerID               uuid.UUID
		driverID                     uuid.NullUUID
		status, packageType          int
		deliveryDate                 sql.NullTime
		pickupDate, created, updated time.Time
	)
	err := rows.Scan(
		&id,
		&view.TrackingNumber,
		&customerID,
		&view.CustomerName,
		&view.CustomerEmail,
		&driverID,
		&status,
		&view.PickupAddress,
		&view.DeliveryAddress,
		&view.PickupPlace.Pincode,
		&view.PickupPlace.City,
		&view.PickupPlace.State,
		&view.DeliveryPlace.Pincode,
		&view.DeliveryPlace.City,
		&view.DeliveryPlace.State,
		&view.WeightKg,
		&packageType,
		&pickupDate,
		&deliveryDate,
		&view.DistanceKm,
		&view.Price,
		&created,
		&updated,
	)
	if err != nil {
		return DeliveryView{}, err
	}

	if view.ID, err = toID(id); err != nil {
		return DeliveryView{}, err
	}
	if view.CustomerID, err = toID(customerID); err != nil {
		return DeliveryView{}, err
	}
	if view.DriverID, err = toOptionalID(driverID); err != nil {
		return DeliveryView{}, err
	}
	view.Status = delivery.Status(status).String()
	view.PackageType = delivery.PackageType(packageType).String()
	view.PickupDate = pickupDate.UTC()
	view.DeliveryDate = toOptionalTime(deliveryDate)
	view.CreatedAt = created.UTC()
	view.UpdatedAt = updated.UTC()
	return view, nil
}

func collectDeliveryViews(rows *sql.Rows) ([]DeliveryView, error) {
	defer rows.Close()

	views := make([]DeliveryView, 0)
	for rows.Next() {
		view, err := scanDeliveryView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
