// Package jobs runs scheduled background tasks on github.com/robfig/cron/v3.
//
// The only job is OrderBacklogJob, which refreshes the unclaimed and in-flight
// order gauges. Jobs never change business state: assignment happens only when
// a courier asks for it.
//
//	manager := jobs.NewJobManager(backlogHandler, "*/30 * * * * *", logger)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
package jobs
