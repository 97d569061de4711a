package services_test

import (
	"testing"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Authorize(t *testing.T) {
	p := services.DefaultPolicy()

	tests := []struct {
		role    user.Role
		action  services.Action
		allowed bool
	}{
		{user.Customer, services.ActionBookDelivery, true},
		{user.Customer, services.ActionAssignDriver, false},
		{user.Admin, services.ActionAssignDriver, true},
		{user.Admin, services.ActionBookDelivery, false},
		{user.Driver, services.ActionDriveDelivery, true},
		{user.Driver, services.ActionSetDeliveryStatus, false},
		{user.SupportAgent, services.ActionTakeTicket, true},
		{user.SupportAgent, services.ActionReassignTicket, false},
		{user.Customer, services.ActionReadInternalNotes, false},
		{user.Customer, services.ActionManageNotifications, true},
		{user.UnknownRole, services.ActionManageNotifications, false},
	}
	for _, tt := range tests {
		t.Run(tt.role.String()+"_"+string(tt.action), func(t *testing.T) {
			err := p.Authorize(tt.role, tt.action)

			assert.Equal(t, tt.allowed, p.Allows(tt.role, tt.action))
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrAccessDenied)
			}
		})
	}
}
