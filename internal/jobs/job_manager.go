package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	orderBacklogJob *OrderBacklogJob
}

func NewJobManager(backlogReader BacklogReader, backlogSchedule string, logger *zap.Logger) *JobManager {
	return &JobManager{
		orderBacklogJob: NewOrderBacklogJob(backlogReader, backlogSchedule, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.orderBacklogJob.Start(); err != nil {
		return fmt.Errorf("failed to start order backlog job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.orderBacklogJob.Stop()
}
