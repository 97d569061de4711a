package ticket

import (
	"strings"
	"time"

	"logistics/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is the customer's rating of how a resolved ticket was handled.
type Feedback struct {
	rating      int
	comment     string
	submittedAt time.Time
}

// NewFeedback validates the rating range.
func NewFeedback(rating int, comment string, submittedAt time.Time) (Feedback, error) {
	if rating < MinRating || rating > MaxRating {
		return Feedback{}, errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	return Feedback{rating: rating, comment: strings.TrimSpace(comment), submittedAt: submittedAt}, nil
}

func (f Feedback) Rating() int            { return f.rating }
func (f Feedback) Comment() string        { return f.comment }
func (f Feedback) SubmittedAt() time.Time { return f.submittedAt }
