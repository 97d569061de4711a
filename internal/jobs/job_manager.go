package jobs

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type scheduledJob interface {
	Start() error
	Stop()
}

// JobManager owns the background jobs of the service. Jobs start in registration
// order and stop in reverse.
type JobManager struct {
	jobs  []scheduledJob
	names []string
}

// NewJobManager wires the delivery backlog job.
func NewJobManager(
	counter StatusCounter,
	deliveriesByStatus *prometheus.GaugeVec,
	backlogSchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	jm.register("delivery backlog", NewDeliveryBacklogJob(counter, deliveriesByStatus, backlogSchedule, logger))
	return jm
}

func (jm *JobManager) register(name string, job scheduledJob) {
	jm.jobs = append(jm.jobs, job)
	jm.names = append(jm.names, name)
}

// StartAll starts every job. If one fails, the jobs already running are stopped
// before the error is returned.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				jm.jobs[j].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
	}
	return nil
}

// StopAll stops every job and waits for running executions to finish.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
