package ports

import (
	"context"

	"logistics/internal/core/domain/model/review"
)

// ReviewRepository persists delivery reviews. A second review of the same delivery by
// the same user yields errs.ErrAlreadyExists.
type ReviewRepository interface {
	Add(ctx context.Context, r *review.Review) error
}
