package jobs

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"anamola-backend/internal/config"
	"anamola-backend/internal/domain"
	"anamola-backend/internal/logger"
	"anamola-backend/internal/repository"
	"anamola-backend/internal/repository/postgres"
	"anamola-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.EventStatusSweep()
	jr.SendRenewalReminders()
}

// EventStatusSweep advances event statuses past their start and end dates.
func (jr *JobRunner) EventStatusSweep() {
	jr.runWithRecovery("EventStatusSweep", func() {
		ctx := context.Background()
		now := time.Now().UTC().Format(time.RFC3339)

		updated, err := jr.store.Events.SweepStatuses(ctx, now)
		if err != nil {
			logger.Error("Event status sweep failed", "error", err)
			return
		}
		logger.Info("Event statuses swept", "updated", updated)
	})
}

// renewalDueAfter is how long a completed membership stays current before a
// reminder goes out.
const renewalDueAfter = 11 * 30 * 24 * time.Hour

// SendRenewalReminders emails active members whose latest completed
// membership payment is older than the renewal window.
func (jr *JobRunner) SendRenewalReminders() {
	jr.runWithRecovery("SendRenewalReminders", func() {
		ctx := context.Background()

		members, err := jr.store.Members.List(ctx)
		if err != nil {
			logger.Error("Failed to list members for renewal reminders", "error", err)
			return
		}

		cutoff := time.Now().UTC().Add(-renewalDueAfter)
		sent := 0
		for _, m := range members {
			if m.MembershipStatus != domain.MembershipStatusActive {
				continue
			}

			latest, err := jr.store.Memberships.LatestByMember(ctx, m.ID)
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			if err != nil {
				logger.Error("Failed to load latest membership", "member_id", m.ID, "error", err)
				continue
			}
			if latest.PaymentStatus != domain.PaymentStatusCompleted || latest.PaymentDate == "" {
				continue
			}

			paidAt, err := time.Parse(time.RFC3339, latest.PaymentDate)
			if err != nil || paidAt.After(cutoff) {
				continue
			}

			if err := jr.services.Email.SendRenewalReminder(ctx, m.Email, m.FullName); err != nil {
				logger.Error("Failed to send renewal reminder", "member_id", m.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Renewal reminders sent", "count", sent)
	})
}
