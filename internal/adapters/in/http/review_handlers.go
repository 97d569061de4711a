package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateReview handles POST /api/v1/reviews. One review per delivery and customer.
func (s *Server) CreateReview(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	deliveryID, err := bodyID("delivery_id", req.DeliveryID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateReviewCommand(caller, kernel.NewUUID(), deliveryID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	r, err := s.commands.CreateReview.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newReviewResponse(r))
}

// ListMyReviews handles GET /api/v1/reviews.
func (s *Server) ListMyReviews(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListMyReviewsQuery(viewer)
	if err != nil {
		return err
	}
	views, err := s.queries.Reviews.HandleMine(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListDeliveryReviews handles GET /api/v1/deliveries/:id/reviews.
func (s *Server) ListDeliveryReviews(c echo.Context) error {
	deliveryID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListDeliveryReviewsQuery(deliveryID)
	if err != nil {
		return err
	}
	views, err := s.queries.Reviews.HandleForDelivery(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}
