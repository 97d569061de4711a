package reviewrepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/pgerrs"
	"logistics/internal/core/domain/model/review"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReviewRepository implements ports.ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Add stores the review. A second review of the same delivery by the same customer
// yields errs.ErrAlreadyExists.
func (r *GormReviewRepository) Add(ctx context.Context, rv *review.Review) error {
	if rv == nil {
		return errs.NewValueIsRequiredError("review")
	}

	dto := fromDomain(rv)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsDuplicate(err) {
			return errs.NewAlreadyExistsError("review", rv.DeliveryID())
		}
		return err
	}
	return nil
}
