package dispatch_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type directory struct {
	users   []*user.User
	listErr error
}

func (d *directory) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	for _, u := range d.users {
		if u.ID().IsEqual(id) {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("userID", id)
}

func (d *directory) ListByRole(_ context.Context, role user.Role) ([]*user.User, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	var out []*user.User
	for _, u := range d.users {
		if u.Role() == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// store behaves like the table with its (recipient_id, event_id) unique index.
type store struct {
	records []*notification.Notification
	calls   int
}

func (s *store) AddMany(_ context.Context, ns []*notification.Notification) (int, error) {
	s.calls++
	inserted := 0
	for _, n := range ns {
		if s.has(n.Recipient().ID, n.EventID()) {
			continue
		}
		s.records = append(s.records, n)
		inserted++
	}
	return inserted, nil
}

func (s *store) has(recipientID, eventID kernel.UUID) bool {
	for _, r := range s.records {
		if r.Recipient().ID.IsEqual(recipientID) && r.EventID().IsEqual(eventID) {
			return true
		}
	}
	return false
}

func (s *store) recipients() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Recipient().ID)
	}
	return out
}

type mailerMock struct{ mock.Mock }

func (m *mailerMock) Send(ctx context.Context, msg ports.Email) error {
	return m.Called(ctx, msg).Error(0)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, event kernel.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func newUser(t *testing.T, email string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), email, "$2a$10$hash", "Test "+role.String(), role, testNow)
	require.NoError(t, err)
	u.ClearDomainEvents()
	return u
}

func newApprovedAgent(t *testing.T, email string) *user.User {
	t.Helper()
	u := newUser(t, email, user.SupportAgent)
	_, err := u.Approve(testNow)
	require.NoError(t, err)
	u.ClearDomainEvents()
	return u
}
