// Package reviewrepo persists delivery reviews.
package reviewrepo

import (
	"time"

	"logistics/internal/core/domain/model/review"

	"github.com/google/uuid"
)

// ReviewDTO is the reviews table. A customer reviews a delivery at most once.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_delivery_user,priority:1"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_delivery_user,priority:2;index"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(r *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         r.ID().Bytes(),
		DeliveryID: r.DeliveryID().Bytes(),
		UserID:     r.UserID().Bytes(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}
