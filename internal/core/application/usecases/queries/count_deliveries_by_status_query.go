package queries

import (
	"context"

	"logistics/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// CountDeliveriesByStatusQueryHandler counts deliveries per lifecycle status. Every
// valid status is present in the result, with zero when no delivery has it.
type CountDeliveriesByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountDeliveriesByStatusQueryHandler(db *gorm.DB) CountDeliveriesByStatusQueryHandler {
	return CountDeliveriesByStatusQueryHandler{db: db}
}

func (h CountDeliveriesByStatusQueryHandler) Handle(ctx context.Context) (map[delivery.Status]int64, error) {
	counts := make(map[delivery.Status]int64, len(delivery.Statuses()))
	for _, s := range delivery.Statuses() {
		counts[s] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM deliveries
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if s := delivery.Status(status); s.Validate() == nil {
			counts[s] = count
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
