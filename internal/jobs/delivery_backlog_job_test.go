package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"logistics/internal/core/domain/model/delivery"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statusCounterMock struct {
	mock.Mock
}

func (m *statusCounterMock) Handle(ctx context.Context) (map[delivery.Status]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[delivery.Status]int64)
	return counts, args.Error(1)
}

func newGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "deliveries_by_status"}, []string{"status"})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeliveryBacklogJob_Run(t *testing.T) {
	t.Run("publishes_every_status", func(t *testing.T) {
		// Given
		counter := &statusCounterMock{}
		counter.On("Handle", mock.Anything).Return(map[delivery.Status]int64{
			delivery.Pending:   3,
			delivery.Delivered: 7,
		}, nil).Once()
		gauge := newGauge()
		job := NewDeliveryBacklogJob(counter, gauge, "", discardLogger())

		// When
		job.Run()

		// Then
		assert.InDelta(t, 3, testutil.ToFloat64(gauge.WithLabelValues(delivery.Pending.String())), 0)
		assert.InDelta(t, 7, testutil.ToFloat64(gauge.WithLabelValues(delivery.Delivered.String())), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(gauge.WithLabelValues(delivery.Cancelled.String())), 0)
		assert.Equal(t, len(delivery.Statuses()), testutil.CollectAndCount(gauge))
		counter.AssertExpectations(t)
	})

	t.Run("failed_count_keeps_previous_values", func(t *testing.T) {
		// Given
		counter := &statusCounterMock{}
		counter.On("Handle", mock.Anything).Return(map[delivery.Status]int64{delivery.Scheduled: 2}, nil).Once()
		counter.On("Handle", mock.Anything).Return(nil, errors.New("db down")).Once()
		gauge := newGauge()
		job := NewDeliveryBacklogJob(counter, gauge, "", discardLogger())

		// When
		job.Run()
		job.Run()

		// Then
		assert.InDelta(t, 2, testutil.ToFloat64(gauge.WithLabelValues(delivery.Scheduled.String())), 0)
		counter.AssertExpectations(t)
	})
}

func TestDeliveryBacklogJob_Start(t *testing.T) {
	t.Run("invalid_schedule_fails", func(t *testing.T) {
		job := NewDeliveryBacklogJob(&statusCounterMock{}, newGauge(), "every now and then", discardLogger())

		require.Error(t, job.Start())
	})

	t.Run("start_refreshes_immediately", func(t *testing.T) {
		// Given
		counter := &statusCounterMock{}
		counter.On("Handle", mock.Anything).Return(map[delivery.Status]int64{delivery.OutForDelivery: 1}, nil)
		gauge := newGauge()
		manager := NewJobManager(counter, gauge, "0 0 0 1 1 *", discardLogger())

		// When
		require.NoError(t, manager.StartAll())
		manager.StopAll()

		// Then
		assert.InDelta(t, 1, testutil.ToFloat64(gauge.WithLabelValues(delivery.OutForDelivery.String())), 0)
	})
}
