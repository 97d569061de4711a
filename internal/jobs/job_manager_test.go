package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j *recordingJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j *recordingJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("starts_in_order_and_stops_in_reverse", func(t *testing.T) {
		// Given
		var log []string
		jm := &JobManager{}
		jm.register("first", &recordingJob{name: "first", log: &log})
		jm.register("second", &recordingJob{name: "second", log: &log})

		// When
		require.NoError(t, jm.StartAll())
		jm.StopAll()

		// Then
		assert.Equal(t, []string{"start first", "start second", "stop second", "stop first"}, log)
	})

	t.Run("failed_start_stops_running_jobs", func(t *testing.T) {
		// Given
		var log []string
		jm := &JobManager{}
		jm.register("first", &recordingJob{name: "first", log: &log})
		jm.register("second", &recordingJob{name: "second", startErr: errors.New("boom"), log: &log})

		// When
		err := jm.StartAll()

		// Then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "second job")
		assert.Equal(t, []string{"start first", "start second", "stop first"}, log)
	})

	t.Run("wires_backlog_job", func(t *testing.T) {
		// Given
		counter := &statusCounterMock{}

		// When
		jm := NewJobManager(counter, newGauge(), DefaultBacklogSchedule, discardLogger())

		// Then
		require.Len(t, jm.jobs, 1)
		assert.IsType(t, &DeliveryBacklogJob{}, jm.jobs[0])
	})
}
