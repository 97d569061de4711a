package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateReviewCommandIsNotConstructed = errors.New(
	"CreateReviewCommand must be created via NewCreateReviewCommand constructor",
)

// CreateReviewCommand is a customer rating one of their deliveries.
type CreateReviewCommand struct { //nolint:recvcheck //using for validation
	caller     Caller
	reviewID   kernel.UUID
	deliveryID kernel.UUID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

func NewCreateReviewCommand(
	caller Caller,
	reviewID, deliveryID kernel.UUID,
	rating int,
	comment string,
) (CreateReviewCommand, error) {
	if err := errors.Join(caller.Validate(), reviewID.Validate(), deliveryID.Validate()); err != nil {
		return CreateReviewCommand{}, err
	}
	return CreateReviewCommand{
		caller:     caller,
		reviewID:   reviewID,
		deliveryID: deliveryID,
		rating:     rating,
		comment:    strings.TrimSpace(comment),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReviewCommand) Validate() error {
	return c.guard.Validate(ErrCreateReviewCommandIsNotConstructed)
}

func (c CreateReviewCommand) Caller() Caller          { return c.caller }
func (c CreateReviewCommand) ReviewID() kernel.UUID   { return c.reviewID }
func (c CreateReviewCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CreateReviewCommand) Rating() int             { return c.rating }
func (c CreateReviewCommand) Comment() string         { return c.comment }
