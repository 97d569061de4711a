package queries

import (
	"context"
	"strings"

	"logistics/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListDeliveriesQueryHandler serves the customer, admin and driver delivery lists.
type ListDeliveriesQueryHandler struct {
	db     *gorm.DB
	policy *services.Policy
}

func NewListDeliveriesQueryHandler(db *gorm.DB, policy *services.Policy) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db, policy: policy}
}

// Handle returns the deliveries in scope, newest first. The viewer's role must allow
// the scope.
func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	action, err := query.Scope().action()
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(query.Viewer().Role, action); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	switch query.Scope() {
	case OwnDeliveries:
		conditions = append(conditions, "d.customer_id = ?")
		args = append(args, query.Viewer().ID.Bytes())
	case AssignedDeliveries:
		conditions = append(conditions, "d.driver_id = ?")
		args = append(args, query.Viewer().ID.Bytes())
	case AllDeliveries:
	}
	if status := query.Status(); status != nil {
		conditions = append(conditions, "d.status = ?")
		args = append(args, int(*status))
	}

	statement := deliveryViewSelect
	if len(conditions) > 0 {
		statement += " WHERE " + strings.Join(conditions, " AND ")
	}
	statement += " ORDER BY d.created_at DESC, d.id"

	rows, err := h.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	return collectDeliveryViews(rows)
}
