package delivery_test

import (
	"testing"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range delivery.Statuses() {
		parsed, err := delivery.ParseStatus(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := delivery.ParseStatus(" out for delivery ")
	require.NoError(t, err)
	assert.Equal(t, delivery.OutForDelivery, parsed)

	_, err = delivery.ParseStatus("In Transit")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Predicates(t *testing.T) {
	tests := []struct {
		status       delivery.Status
		terminal     bool
		beforePickup bool
	}{
		{delivery.Pending, false, true},
		{delivery.Scheduled, false, true},
		{delivery.OutForDelivery, false, false},
		{delivery.Delivered, true, false},
		{delivery.Cancelled, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.beforePickup, tt.status.IsBeforePickup())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	assert.Error(t, delivery.UnknownStatus.Validate())
	assert.Error(t, delivery.Status(99).Validate())
	assert.Equal(t, "Unknown", delivery.Status(99).String())
}

func TestParsePackageType(t *testing.T) {
	pt, err := delivery.ParsePackageType("electronics")
	require.NoError(t, err)
	assert.Equal(t, delivery.Electronics, pt)

	_, err = delivery.ParsePackageType("Crate")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Error(t, delivery.UnknownPackageType.Validate())
}
