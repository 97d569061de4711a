package queries

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery reads one delivery. The owner, the assigned driver and admins may
// read it; anyone else gets AccessDeniedError.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	viewer     Viewer
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(viewer Viewer, deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := errors.Join(viewer.Validate(), deliveryID.Validate()); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{viewer: viewer, deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) Viewer() Viewer          { return q.viewer }
func (q GetDeliveryQuery) DeliveryID() kernel.UUID { return q.deliveryID }

type GetDeliveryQueryHandler struct {
	db     *gorm.DB
	policy *services.Policy
}

func NewGetDeliveryQueryHandler(db *gorm.DB, policy *services.Policy) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db, policy: policy}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}
	viewer := query.Viewer()
	seesAll := h.policy.Allows(viewer.Role, services.ActionViewAnyDelivery)
	ownsOrDrives := h.policy.Allows(viewer.Role, services.ActionViewOwnDeliveries) ||
		h.policy.Allows(viewer.Role, services.ActionDriveDelivery)
	if !seesAll && !ownsOrDrives {
		return DeliveryView{}, errs.NewAccessDeniedError(viewer.Role.String(), string(services.ActionViewOwnDeliveries))
	}

	rows, err := h.db.WithContext(ctx).Raw(deliveryViewSelect+" WHERE d.id = ?", query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return DeliveryView{}, err
	}
	views, err := collectDeliveryViews(rows)
	if err != nil {
		return DeliveryView{}, err
	}
	if len(views) == 0 {
		return DeliveryView{}, errs.NewObjectNotFoundError("deliveryID", query.DeliveryID())
	}

	view := views[0]
	isDriver := view.DriverID != nil && view.DriverID.IsEqual(viewer.ID)
	if !seesAll && !view.CustomerID.IsEqual(viewer.ID) && !isDriver {
		return DeliveryView{}, errs.NewAccessDeniedError("user "+viewer.ID.String(), "view delivery "+view.ID.String())
	}
	return view, nil
}
