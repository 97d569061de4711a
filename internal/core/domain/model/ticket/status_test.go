package ticket_test

import (
	"testing"

	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanMoveTo(t *testing.T) {
	allowed := map[ticket.Status][]ticket.Status{
		ticket.Open:       {ticket.InProgress, ticket.OnHold, ticket.Resolved, ticket.Closed},
		ticket.InProgress: {ticket.OnHold, ticket.Resolved, ticket.Closed},
		ticket.OnHold:     {ticket.InProgress, ticket.Resolved, ticket.Closed},
		ticket.Resolved:   {ticket.InProgress, ticket.Closed},
	}

	for _, from := range ticket.Statuses() {
		for _, to := range ticket.Statuses() {
			err := from.CanMoveTo(to)
			if contains(allowed[from], to) {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, errs.ErrStateConflict, "%s -> %s", from, to)
			}
		}
	}
}

func contains(list []ticket.Status, s ticket.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestParseHelpers(t *testing.T) {
	s, err := ticket.ParseStatus("on hold")
	require.NoError(t, err)
	assert.Equal(t, ticket.OnHold, s)

	p, err := ticket.ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, ticket.High, p)

	c, err := ticket.ParseCategory("lost")
	require.NoError(t, err)
	assert.Equal(t, ticket.Lost, c)

	_, err = ticket.ParseStatus("Reopened")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = ticket.ParsePriority("urgent")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = ticket.ParseCategory("weather")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
