package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/pkg/eventbus"

	"github.com/robfig/cron/v3"
)

// DefaultBusStatsSchedule runs the job once a minute, on second zero.
const DefaultBusStatsSchedule = "0 * * * * *"

// StatsSource is the part of the event bus the job reads.
type StatsSource interface {
	Stats() eventbus.Stats
}

// BusStatsJob periodically logs the event bus counters so that slow SSE
// clients (dropped events) and leaked subscriptions show up in the logs.
type BusStatsJob struct {
	source   StatsSource
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	lastDropped uint64
}

// NewBusStatsJob creates the job. An empty schedule falls back to DefaultBusStatsSchedule.
// Schedules use the six-field cron syntax with seconds.
func NewBusStatsJob(source StatsSource, schedule string, logger *slog.Logger) *BusStatsJob {
	if schedule == "" {
		schedule = DefaultBusStatsSchedule
	}
	return &BusStatsJob{
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "bus_stats_job"),
	}
}

// Start schedules the job. It fails when the schedule cannot be parsed.
func (j *BusStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Bus stats job started", "schedule", j.schedule)
	return nil
}

// Run takes one snapshot and logs it. Growth of the drop counter since the
// previous run is reported as a warning.
func (j *BusStatsJob) Run(ctx context.Context) {
	stats := j.source.Stats()

	level := slog.LevelInfo
	newlyDropped := stats.Dropped - min(j.lastDropped, stats.Dropped)
	if newlyDropped > 0 {
		level = slog.LevelWarn
	}
	j.lastDropped = stats.Dropped

	j.logger.Log(ctx, level, "Event bus stats",
		"topics", stats.Topics,
		"subscribers", stats.Subscribers,
		"published", stats.Published,
		"dropped", stats.Dropped,
		"dropped_since_last_run", newlyDropped,
	)
}

// Stop stops scheduling and waits for a running snapshot to finish.
func (j *BusStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Bus stats job stopped")
}
