package jobs

import (
	"database/sql"
	"time"

	"toolrental-backend/internal/clock"
	"toolrental-backend/internal/config"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository/postgres"
	"toolrental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
	clock    clock.Clock
}

// Services holds the notification channels jobs report through
type Services struct {
	Email service.EmailService
	Push  service.PushService
}

func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config, clk clock.Clock) *JobRunner {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
		clock:    clk,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// today is the current calendar day in the rental business timezone.
func (jr *JobRunner) today() domain.Date {
	return clock.Today(jr.clock, jr.config.Location())
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithJob(jobName)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed", "elapsed_ms", time.Since(start).Milliseconds())
}

// RunAllDailyJobs runs every daily job in order (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.ExpireStalePendingBookings()
	jr.SendBookingReminders()
}
