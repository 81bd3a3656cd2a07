// services/scheduler.go
package services

import (
	"log"
	"time"

	"tricky-turns-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartMaintenanceScheduler runs the periodic housekeeping jobs: purging
// expired admin sessions and flipping contests through their lifecycle as
// their start/end windows pass.
func StartMaintenanceScheduler(admins *AdminService, contests *ContestService) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 10 minutes: drop expired admin sessions
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			purged, err := admins.PurgeExpiredSessions()
			if err != nil {
				log.Printf("[Scheduler] session purge failed: %v", err)
				return
			}
			if purged > 0 {
				log.Printf("[Scheduler] purged %d expired admin session(s)", purged)
			}
		}),
	)

	// Every minute: contest window transitions
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now().UTC()

			res := contests.DB.Model(&models.Contest{}).
				Where("status = ? AND start_at <= ? AND end_at > ?", models.ContestStatusScheduled, now, now).
				Update("status", models.ContestStatusActive)
			if res.Error != nil {
				log.Printf("[Scheduler] contest activation failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("✅ Activated %d contest(s)", res.RowsAffected)
			}

			res = contests.DB.Model(&models.Contest{}).
				Where("status = ? AND end_at <= ?", models.ContestStatusActive, now).
				Update("status", models.ContestStatusFinished)
			if res.Error != nil {
				log.Printf("[Scheduler] contest completion failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("✅ Finished %d contest(s)", res.RowsAffected)
			}
		}),
	)
}
