package deliveryrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerrs"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add saves a new delivery. The unique tracking number index backs up the
// regenerate-on-collision loop of the booking command.
func (r *GormDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsDuplicate(err) {
			return errs.NewAlreadyExistsError("trackingNumber", dto.TrackingNumber)
		}
		return err
	}
	return nil
}

// Update overwrites every column, including cleared optional ones.
func (r *GormDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliveryID", d.ID())
	}
	return nil
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryID", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormDeliveryRepository) ExistsByTrackingNumber(ctx context.Context, tn delivery.TrackingNumber) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("tracking_number = ?", tn.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
