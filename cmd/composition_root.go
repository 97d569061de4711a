package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/email"
	"logistics/internal/adapters/out/geo"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/rabbitmq"
	"logistics/internal/adapters/out/security"
	"logistics/internal/core/application/dispatch"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	metrics   *metrics.Metrics
	policy    *services.Policy
	quoter    *services.Quoter
	tokens    *security.JWTService
	hasher    *security.BcryptHasher
	publisher ports.EventPublisher
	events    *dispatch.Hooks
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, reg prometheus.Registerer, logger *slog.Logger) (*CompositionRoot, error) {
	m, err := metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	gazetteer, err := geo.LoadFile(cfg.GazetteerPath)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer: %w", err)
	}
	tariff, err := cfg.Pricing.Tariff()
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}
	engine, err := services.NewPricingEngine(tariff)
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}

	tokens, err := security.NewJWTService(security.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		metrics:    m,
		policy:     services.DefaultPolicy(),
		quoter:     services.NewQuoter(services.NewDistanceCalculator(gazetteer, cfg.Pricing.RoadFactor), engine),
		tokens:     tokens,
		hasher:     security.NewBcryptHasher(cfg.BcryptCost),
		publisher:  newPublisher(cfg.RabbitMQ, logger),
	}

	directory := userDirectory{factory: c.uowFactory}
	c.events = dispatch.NewHooks(logger, m.HookFailures,
		dispatch.NewNotificationHook(directory, notificationStore{factory: c.uowFactory}, m.NotificationsCreated),
		dispatch.NewEmailHook(directory, newMailer(cfg.SMTP, logger)),
		dispatch.NewBrokerHook(c.publisher),
	)
	return c, nil
}

func newMailer(cfg SMTPConfig, logger *slog.Logger) ports.Mailer {
	if cfg.Host == "" {
		return email.NewLogMailer(logger)
	}
	return email.NewSMTPMailer(email.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	})
}

// newPublisher dials the broker. The broker is a side channel, so an unreachable broker
// is logged and events are dropped instead of failing startup.
func newPublisher(cfg RabbitMQConfig, logger *slog.Logger) ports.EventPublisher {
	if cfg.URL == "" {
		return rabbitmq.NopPublisher{}
	}
	publisher, err := rabbitmq.Dial(cfg.URL, cfg.Exchange)
	if err != nil {
		logger.Warn("rabbitmq unavailable, events will not be published", "error", err)
		return rabbitmq.NopPublisher{}
	}
	return publisher
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	if p, ok := c.publisher.(*rabbitmq.Publisher); ok {
		return p.Close()
	}
	return nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics { return c.metrics }

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateCommandHandlers(), c.CreateQueryHandlers(), c.tokens)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		queries.NewCountDeliveriesByStatusQueryHandler(c.gormDB),
		c.metrics.DeliveriesByStatus,
		c.cfg.BacklogSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCommandHandlers() httpin.CommandHandlers {
	var users commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	var deliveries commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	var tickets commands.TicketUoWFactory = FuncTicketUoWFactory(func() commands.TicketUoW {
		return c.uowFactory.Create()
	})
	var notifications commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	var reviews commands.ReviewUoWFactory = FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})

	return httpin.CommandHandlers{
		RegisterUser:         commands.NewRegisterUserCommandHandler(users, c.hasher, c.events),
		Login:                commands.NewLoginCommandHandler(users, c.hasher, c.tokens),
		UpdateProfile:        commands.NewUpdateProfileCommandHandler(users, c.policy),
		SetUserRole:          commands.NewSetUserRoleCommandHandler(users, c.policy),
		ApproveAgent:         commands.NewApproveAgentCommandHandler(users, c.policy, c.events),
		CreateDelivery:       commands.NewCreateDeliveryCommandHandler(deliveries, c.policy, c.quoter, c.events),
		EditDelivery:         commands.NewEditDeliveryCommandHandler(deliveries, c.policy, c.quoter),
		CancelDelivery:       commands.NewCancelDeliveryCommandHandler(deliveries, c.policy, c.events),
		AssignDriver:         commands.NewAssignDriverCommandHandler(deliveries, c.policy, c.events),
		ChangeDeliveryStatus: commands.NewChangeDeliveryStatusCommandHandler(deliveries, c.policy, c.events),
		MarkNotificationRead: commands.NewMarkNotificationReadCommandHandler(notifications, c.policy),
		MarkAllRead:          commands.NewMarkAllNotificationsReadCommandHandler(notifications, c.policy),
		DeleteNotification:   commands.NewDeleteNotificationCommandHandler(notifications, c.policy),
		CreateTicket:         commands.NewCreateTicketCommandHandler(tickets, c.policy, c.events),
		SelfAssignTicket:     commands.NewSelfAssignTicketCommandHandler(tickets, c.policy, c.events),
		ReassignTicket:       commands.NewReassignTicketCommandHandler(tickets, c.policy, c.events),
		UpdateTicketStatus:   commands.NewUpdateTicketStatusCommandHandler(tickets, c.policy, c.events),
		AddInternalNote:      commands.NewAddInternalNoteCommandHandler(tickets, c.policy),
		SubmitFeedback:       commands.NewSubmitFeedbackCommandHandler(tickets, c.policy, c.events),
		CreateReview:         commands.NewCreateReviewCommandHandler(reviews, c.policy),
	}
}

func (c *CompositionRoot) CreateQueryHandlers() httpin.QueryHandlers {
	users := queries.NewUserQueryHandler(c.gormDB, c.policy)
	return httpin.QueryHandlers{
		ListDeliveries: queries.NewListDeliveriesQueryHandler(c.gormDB, c.policy),
		GetDelivery:    queries.NewGetDeliveryQueryHandler(c.gormDB, c.policy),
		Track:          queries.NewTrackDeliveryQueryHandler(c.gormDB),
		EstimatePrice:  queries.NewEstimatePriceQueryHandler(c.quoter),
		Users:          users,
		Notifications:  queries.NewNotificationQueryHandler(c.gormDB, c.policy),
		Tickets:        queries.NewTicketQueryHandler(c.gormDB, c.policy),
		Reviews:        queries.NewReviewQueryHandler(c.gormDB, c.policy),
		CurrentRole:    users,
	}
}

// userDirectory reads accounts outside of any transaction; hooks run after commit.
type userDirectory struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (d userDirectory) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return d.factory.Create().UserRepository().Get(ctx, id)
}

func (d userDirectory) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	return d.factory.Create().UserRepository().ListByRole(ctx, role)
}

type notificationStore struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (s notificationStore) AddMany(ctx context.Context, ns []*notification.Notification) (int, error) {
	return s.factory.Create().NotificationRepository().AddMany(ctx, ns)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncTicketUoWFactory func() commands.TicketUoW

func (f FuncTicketUoWFactory) Create() commands.TicketUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}
