package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateDelivery handles POST /api/v1/deliveries - books a delivery for the caller.
func (s *Server) CreateDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createDeliveryRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	details, err := req.toDetails()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDeliveryCommand(caller, kernel.NewUUID(), details)
	if err != nil {
		return err
	}
	d, err := s.commands.CreateDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newDeliveryResponse(d))
}

// ListMyDeliveries handles GET /api/v1/deliveries?status=.
func (s *Server) ListMyDeliveries(c echo.Context) error {
	return s.listDeliveries(c, queries.OwnDeliveries)
}

// ListAllDeliveries handles GET /api/v1/admin/deliveries?status=.
func (s *Server) ListAllDeliveries(c echo.Context) error {
	return s.listDeliveries(c, queries.AllDeliveries)
}

// ListDriverDeliveries handles GET /api/v1/driver/deliveries?status=.
func (s *Server) ListDriverDeliveries(c echo.Context) error {
	return s.listDeliveries(c, queries.AssignedDeliveries)
}

func (s *Server) listDeliveries(c echo.Context, scope queries.DeliveryScope) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListDeliveriesQuery(viewer, scope, c.QueryParam("status"))
	if err != nil {
		return err
	}
	deliveries, err := s.queries.ListDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deliveries)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetDeliveryQuery(viewer, deliveryID)
	if err != nil {
		return err
	}
	view, err := s.queries.GetDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// EditDelivery handles PUT /api/v1/deliveries/:id. Only Pending and Scheduled
// deliveries can be edited; changing a price-affecting field re-quotes the delivery.
func (s *Server) EditDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req editDeliveryRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewEditDeliveryCommand(caller, deliveryID, patch)
	if err != nil {
		return err
	}
	d, err := s.commands.EditDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(d))
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryCommand(caller, deliveryID)
	if err != nil {
		return err
	}
	d, err := s.commands.CancelDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(d))
}

// SetDeliveryStatus handles PUT /api/v1/admin/delivery/:id and
// PUT /api/v1/driver/deliveries/:id/status. Which transitions are allowed depends on
// the caller's role.
func (s *Server) SetDeliveryStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	status, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(caller, deliveryID, status)
	if err != nil {
		return err
	}
	d, err := s.commands.ChangeDeliveryStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(d))
}

// AssignDriver handles POST /api/v1/admin/delivery/:id/assign-driver.
func (s *Server) AssignDriver(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req assignDriverRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	driverID, err := bodyID("driver_id", req.DriverID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(caller, deliveryID, driverID)
	if err != nil {
		return err
	}
	d, err := s.commands.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(d))
}

// TrackDelivery handles GET /api/v1/track/:tracking_number.
func (s *Server) TrackDelivery(c echo.Context) error {
	query, err := queries.NewTrackDeliveryQuery(c.Param("tracking_number"))
	if err != nil {
		return err
	}
	view, err := s.queries.Track.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// TrackByPhone handles GET /api/v1/track-by-phone/:phone.
func (s *Server) TrackByPhone(c echo.Context) error {
	query, err := queries.NewTrackByPhoneQuery(c.Param("phone"))
	if err != nil {
		return err
	}
	views, err := s.queries.Track.HandleByPhone(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// EstimatePrice handles POST /api/v1/estimate-price.
func (s *Server) EstimatePrice(c echo.Context) error {
	var req estimatePriceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	pickup, err := req.PickupPlace.toPlace()
	if err != nil {
		return err
	}
	dropoff, err := req.DeliveryPlace.toPlace()
	if err != nil {
		return err
	}
	packageType, err := delivery.ParsePackageType(req.PackageType)
	if err != nil {
		return err
	}

	query, err := queries.NewEstimatePriceQuery(pickup, dropoff, req.Weight, packageType)
	if err != nil {
		return err
	}
	breakdown, err := s.queries.EstimatePrice.Handle(query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, breakdown)
}
