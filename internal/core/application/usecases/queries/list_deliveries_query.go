package queries

import (
	"errors"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// DeliveryScope selects whose deliveries a listing returns.
type DeliveryScope int

const (
	// OwnDeliveries lists the deliveries booked by the viewer.
	OwnDeliveries DeliveryScope = iota + 1
	// AllDeliveries lists every delivery. Admin only.
	AllDeliveries
	// AssignedDeliveries lists the deliveries assigned to the viewer as driver.
	AssignedDeliveries
)

func (s DeliveryScope) action() (services.Action, error) {
	switch s {
	case OwnDeliveries:
		return services.ActionViewOwnDeliveries, nil
	case AllDeliveries:
		return services.ActionViewAnyDelivery, nil
	case AssignedDeliveries:
		return services.ActionDriveDelivery, nil
	default:
		return "", errs.NewValueIsInvalidError("scope")
	}
}

// ListDeliveriesQuery lists deliveries newest first, optionally narrowed to one status.
//
// Example:
//
//	query, err := NewListDeliveriesQuery(viewer, OwnDeliveries, "Pending")
//	if err != nil {
//	    return err
//	}
//	deliveries, err := handler.Handle(ctx, query)
type ListDeliveriesQuery struct { //nolint:recvcheck //using for validation
	viewer Viewer
	scope  DeliveryScope
	status *delivery.Status

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery builds a listing. An empty status means every status.
func NewListDeliveriesQuery(viewer Viewer, scope DeliveryScope, status string) (ListDeliveriesQuery, error) {
	var errList []error
	errList = append(errList, viewer.Validate())
	if _, err := scope.action(); err != nil {
		errList = append(errList, err)
	}

	var filter *delivery.Status
	if status != "" {
		parsed, err := delivery.ParseStatus(status)
		if err != nil {
			errList = append(errList, err)
		}
		filter = &parsed
	}
	if err := errors.Join(errList...); err != nil {
		return ListDeliveriesQuery{}, err
	}

	return ListDeliveriesQuery{
		viewer: viewer,
		scope:  scope,
		status: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) Viewer() Viewer       { return q.viewer }
func (q ListDeliveriesQuery) Scope() DeliveryScope { return q.scope }

// Status returns the status filter, or nil when every status is listed.
func (q ListDeliveriesQuery) Status() *delivery.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}
