package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()
	customer := newAccount(t, user.Customer)

	setup := func(d *delivery.Delivery) (*MockUoW, *MockReviewRepository) {
		deliveries := new(MockDeliveryRepository)
		deliveries.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
		reviews := new(MockReviewRepository)
		uow := new(MockUoW)
		uow.On("DeliveryRepository").Return(deliveries)
		uow.On("ReviewRepository").Return(reviews)
		return uow, reviews
	}

	t.Run("owner_reviews_a_delivery", func(t *testing.T) {
		// Given
		ctx := t.Context()
		d := deliveryIn(t, customer.ID(), kernel.NewUUID(), delivery.Delivered)
		uow, reviews := setup(d)
		reviews.On("Add", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil).Once()
		transactional(uow)
		cmd, err := commands.NewCreateReviewCommand(callerOf(customer), kernel.NewUUID(), d.ID(), 5, " On time ")
		require.NoError(t, err)

		// When
		r, err := commands.NewCreateReviewCommandHandler(reviewFactory{uow}, policy).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 5, r.Rating())
		assert.Equal(t, "On time", r.Comment())
		assert.Equal(t, d.ID(), r.DeliveryID())
		reviews.AssertExpectations(t)
	})

	t.Run("second_review_is_rejected_by_storage", func(t *testing.T) {
		ctx := t.Context()
		d := deliveryIn(t, customer.ID(), kernel.NewUUID(), delivery.Delivered)
		uow, reviews := setup(d)
		reviews.On("Add", mock.Anything, mock.Anything).
			Return(errs.NewAlreadyExistsError("deliveryId", d.ID())).Once()
		aborted(uow)
		cmd, _ := commands.NewCreateReviewCommand(callerOf(customer), kernel.NewUUID(), d.ID(), 4, "")

		_, err := commands.NewCreateReviewCommandHandler(reviewFactory{uow}, policy).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	})

	t.Run("someone_elses_delivery_is_denied", func(t *testing.T) {
		ctx := t.Context()
		d := deliveryIn(t, kernel.NewUUID(), kernel.UUID{}, delivery.Pending)
		uow, reviews := setup(d)
		aborted(uow)
		cmd, _ := commands.NewCreateReviewCommand(callerOf(customer), kernel.NewUUID(), d.ID(), 4, "")

		_, err := commands.NewCreateReviewCommandHandler(reviewFactory{uow}, policy).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		reviews.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("rating_out_of_range", func(t *testing.T) {
		ctx := t.Context()
		d := deliveryIn(t, customer.ID(), kernel.UUID{}, delivery.Pending)
		uow, _ := setup(d)
		aborted(uow)
		cmd, _ := commands.NewCreateReviewCommand(callerOf(customer), kernel.NewUUID(), d.ID(), 6, "")

		_, err := commands.NewCreateReviewCommandHandler(reviewFactory{uow}, policy).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
