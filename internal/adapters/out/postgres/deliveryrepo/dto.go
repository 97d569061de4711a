// Package deliveryrepo persists delivery aggregates.
package deliveryrepo

import (
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the deliveries table. Enums are stored as their integer values and
// the two places are embedded with pickup_ and delivery_ prefixes.
type DeliveryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	Status          int        `gorm:"not null;index"`
	TrackingNumber  string     `gorm:"size:12;not null;uniqueIndex:idx_deliveries_tracking_number"`
	PickupAddress   string     `gorm:"not null"`
	DeliveryAddress string     `gorm:"not null"`
	PickupPlace     PlaceDTO   `gorm:"embedded;embeddedPrefix:pickup_"`
	DeliveryPlace   PlaceDTO   `gorm:"embedded;embeddedPrefix:delivery_"`
	WeightKg        float64    `gorm:"not null"`
	PackageType     int        `gorm:"not null"`
	PickupDate      time.Time  `gorm:"not null"`
	DeliveryDate    *time.Time
	DistanceKm      float64   `gorm:"not null"`
	Price           float64   `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// PlaceDTO holds the location identifiers of one end of a delivery.
type PlaceDTO struct {
	Pincode string `gorm:"size:6"`
	City    string `gorm:"size:100"`
	State   string `gorm:"size:100"`
}

func placeFromDomain(p kernel.Place) PlaceDTO {
	return PlaceDTO{Pincode: p.Pincode(), City: p.City(), State: p.State()}
}

func (p PlaceDTO) toDomain() (kernel.Place, error) {
	return kernel.NewPlace(p.Pincode, p.City, p.State)
}

func optionalID(id kernel.UUID) *uuid.UUID {
	if id.IsZero() {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:              d.ID().Bytes(),
		CustomerID:      d.CustomerID().Bytes(),
		DriverID:        optionalID(d.DriverID()),
		Status:          int(d.Status()),
		TrackingNumber:  d.TrackingNumber().String(),
		PickupAddress:   d.PickupAddress(),
		DeliveryAddress: d.DeliveryAddress(),
		PickupPlace:     placeFromDomain(d.PickupPlace()),
		DeliveryPlace:   placeFromDomain(d.DeliveryPlace()),
		WeightKg:        d.WeightKg(),
		PackageType:     int(d.PackageType()),
		PickupDate:      d.PickupDate(),
		DeliveryDate:    d.DeliveryDate(),
		DistanceKm:      d.DistanceKm(),
		Price:           d.Price(),
		CreatedAt:       d.CreatedAt(),
		UpdatedAt:       d.UpdatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	var driverID kernel.UUID
	if dto.DriverID != nil {
		if driverID, err = kernel.UUIDFromBytes(dto.DriverID[:]); err != nil {
			return nil, err
		}
	}
	tn, err := delivery.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}
	pickup, err := dto.PickupPlace.toDomain()
	if err != nil {
		return nil, err
	}
	dropoff, err := dto.DeliveryPlace.toDomain()
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.Snapshot{
		ID:             id,
		CustomerID:     customerID,
		DriverID:       driverID,
		Status:         delivery.Status(dto.Status),
		TrackingNumber: tn,
		Details: delivery.Details{
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
			PickupPlace:     pickup,
			DeliveryPlace:   dropoff,
			WeightKg:        dto.WeightKg,
			PackageType:     delivery.PackageType(dto.PackageType),
			PickupDate:      dto.PickupDate,
		},
		DeliveryDate: dto.DeliveryDate,
		Quote:        delivery.Quote{DistanceKm: dto.DistanceKm, Price: dto.Price},
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
