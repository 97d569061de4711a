package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/delivery"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// DefaultBacklogSchedule refreshes the gauge every 30 seconds.
const DefaultBacklogSchedule = "*/30 * * * * *"

const backlogTimeout = 10 * time.Second

// StatusCounter counts deliveries per status.
type StatusCounter interface {
	Handle(ctx context.Context) (map[delivery.Status]int64, error)
}

// DeliveryBacklogJob publishes the number of deliveries in each status as a gauge.
// It only reads.
type DeliveryBacklogJob struct {
	counter  StatusCounter
	gauge    *prometheus.GaugeVec
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliveryBacklogJob creates the job. An empty schedule uses DefaultBacklogSchedule;
// schedules have a seconds field.
func NewDeliveryBacklogJob(
	counter StatusCounter,
	gauge *prometheus.GaugeVec,
	schedule string,
	logger *slog.Logger,
) *DeliveryBacklogJob {
	if schedule == "" {
		schedule = DefaultBacklogSchedule
	}
	return &DeliveryBacklogJob{
		counter:  counter,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "delivery_backlog_job"),
	}
}

// Start schedules the job and runs it once right away, so the gauge is populated before
// the first tick.
func (j *DeliveryBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.Run()
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery backlog job started", "schedule", j.schedule)
	return nil
}

// Run refreshes the gauge once. A failed count leaves the previous values in place.
func (j *DeliveryBacklogJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), backlogTimeout)
	defer cancel()

	counts, err := j.counter.Handle(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery backlog job failed", "error", err)
		return
	}
	for _, status := range delivery.Statuses() {
		j.gauge.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *DeliveryBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery backlog job stopped")
}
