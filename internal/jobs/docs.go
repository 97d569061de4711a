// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and never change domain
// state.
//
// # Available Jobs
//
// 1. DeliveryBacklogJob - counts deliveries per status and publishes the counts as the
// deliveries_by_status gauge. Runs every 30 seconds unless configured otherwise.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countHandler, m.DeliveriesByStatus, cfg.BacklogSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and the gauge keeps its previous values. An invalid
// schedule makes StartAll fail.
package jobs
