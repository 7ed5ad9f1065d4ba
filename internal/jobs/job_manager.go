package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the scheduled jobs of the service together.
type JobManager struct {
	busStatsJob *BusStatsJob
}

func NewJobManager(bus StatsSource, busStatsSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		busStatsJob: NewBusStatsJob(bus, busStatsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.busStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start bus stats job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.busStatsJob.Stop()
}
