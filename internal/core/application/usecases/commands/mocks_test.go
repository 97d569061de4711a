package commands_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/review"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
func (m *MockUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	args := m.Called(ctx, role)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}
func (m *MockDeliveryRepository) ExistsByTrackingNumber(ctx context.Context, tn delivery.TrackingNumber) (bool, error) {
	args := m.Called(ctx, tn)
	return args.Bool(0), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *ticket.Ticket) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*ticket.Ticket)
	return t, args.Error(1)
}
func (m *MockTicketRepository) AddNote(ctx context.Context, n *ticket.InternalNote) error {
	return m.Called(ctx, n).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) AddMany(ctx context.Context, ns []*notification.Notification) (int, error) {
	args := m.Called(ctx, ns)
	return args.Int(0), args.Error(1)
}
func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}
func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, recipientID, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

// MockUoW satisfies every narrow unit of work of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}
func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}
func (m *MockUoW) TicketRepository() ports.TicketRepository {
	return m.Called().Get(0).(ports.TicketRepository)
}
func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}
func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	return m.Called().Get(0).(ports.ReviewRepository)
}

type userFactory struct{ uow *MockUoW }

func (f userFactory) Create() commands.UserUoW { return f.uow }

type deliveryFactory struct{ uow *MockUoW }

func (f deliveryFactory) Create() commands.DeliveryUoW { return f.uow }

type ticketFactory struct{ uow *MockUoW }

func (f ticketFactory) Create() commands.TicketUoW { return f.uow }

type notificationFactory struct{ uow *MockUoW }

func (f notificationFactory) Create() commands.NotificationUoW { return f.uow }

type reviewFactory struct{ uow *MockUoW }

func (f reviewFactory) Create() commands.ReviewUoW { return f.uow }

// panicFactory fails the test if a handler opens a unit of work.
type panicFactory struct{ t *testing.T }

func (f panicFactory) Create() commands.DeliveryUoW {
	f.t.Fatal("unit of work must not be created")
	return nil
}

type recordingDispatcher struct {
	events []kernel.DomainEvent
}

func (d *recordingDispatcher) Dispatch(_ context.Context, events ...kernel.DomainEvent) {
	d.events = append(d.events, events...)
}

func (d *recordingDispatcher) names() []string {
	out := make([]string, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.EventName())
	}
	return out
}

// transactional expects a committed unit of work. The deferred rollback is always called.
func transactional(uow *MockUoW) {
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
}

// aborted expects a unit of work that is rolled back without commit.
func aborted(uow *MockUoW) {
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}
func (m *mockHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Issue(u *user.User) (ports.TokenPair, error) {
	args := m.Called(u)
	return args.Get(0).(ports.TokenPair), args.Error(1)
}

// cityLocator knows a handful of cities; everything else is unknown.
type cityLocator map[string]kernel.Coordinates

func (l cityLocator) LocateCity(city, state string) (kernel.Coordinates, bool) {
	c, ok := l[city+"|"+state]
	return c, ok
}

func (l cityLocator) LocatePincode(string) (kernel.Coordinates, bool) {
	return kernel.Coordinates{}, false
}

func (l cityLocator) LocatePincodePrefix(string) (kernel.Coordinates, bool) {
	return kernel.Coordinates{}, false
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newQuoter(t *testing.T) *services.Quoter {
	t.Helper()
	delhi, err := kernel.NewCoordinates(28.6139, 77.2090)
	require.NoError(t, err)
	jaipur, err := kernel.NewCoordinates(26.9124, 75.7873)
	require.NoError(t, err)

	pricing, err := services.NewPricingEngine(services.DefaultPricingConfig())
	require.NoError(t, err)
	locator := cityLocator{"New Delhi|Delhi": delhi, "Jaipur|Rajasthan": jaipur}
	return services.NewQuoter(services.NewDistanceCalculator(locator, 1), pricing)
}

func newAccount(t *testing.T, role user.Role) *user.User {
	t.Helper()
	id := kernel.NewUUID()
	u, err := user.NewUser(id, id.String()[:8]+"@example.com", "$2a$10$hash", "Test "+role.String(), role, testNow)
	require.NoError(t, err)
	if role == user.SupportAgent {
		_, err = u.Approve(testNow)
		require.NoError(t, err)
	}
	u.ClearDomainEvents()
	return u
}

func callerOf(u *user.User) commands.Caller {
	return commands.Caller{ID: u.ID(), Role: u.Role()}
}

func place(t *testing.T, city, state string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace("", city, state)
	require.NoError(t, err)
	return p
}

func bookingDetails(t *testing.T) delivery.Details {
	t.Helper()
	return delivery.Details{
		PickupAddress:   "12 Janpath",
		DeliveryAddress: "4 MI Road",
		PickupPlace:     place(t, "Unknown Town", "Nowhere"),
		DeliveryPlace:   place(t, "Jaipur", "Rajasthan"),
		WeightKg:        5,
		PackageType:     delivery.Medium,
		PickupDate:      testNow.Add(24 * time.Hour),
	}
}

func deliveryIn(t *testing.T, customerID, driverID kernel.UUID, status delivery.Status) *delivery.Delivery {
	t.Helper()
	d, err := delivery.RestoreDelivery(delivery.Snapshot{
		ID:             kernel.NewUUID(),
		CustomerID:     customerID,
		DriverID:       driverID,
		Status:         status,
		TrackingNumber: delivery.NewTrackingNumber(),
		Details:        bookingDetails(t),
		Quote:          delivery.Quote{DistanceKm: 100, Price: 620},
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	})
	require.NoError(t, err)
	return d
}

func ticketIn(t *testing.T, customerID, agentID kernel.UUID, status ticket.Status) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.RestoreTicket(ticket.Snapshot{
		ID:          kernel.NewUUID(),
		CustomerID:  customerID,
		AgentID:     agentID,
		Subject:     "Parcel is late",
		Description: "It was due yesterday",
		Category:    ticket.Late,
		Status:      status,
		Priority:    ticket.Medium,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	})
	require.NoError(t, err)
	return tk
}
