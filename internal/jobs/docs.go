// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3 with the seconds field enabled,
// so schedules have six fields ("0 * * * * *" is once a minute).
//
// # Available Jobs
//
//   - BusStatsJob logs event bus counters: topics, subscribers, published
//     events and events dropped for slow listeners. A growing drop counter is
//     logged as a warning.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(bus, cfg.BusStatsSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
