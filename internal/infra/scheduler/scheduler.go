package scheduler

import (
	"context"
	"fmt"
	"time"

	"birthday_reminder/internal/app" // For ReminderService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type ReminderScheduler struct {
	cronEngine  *cron.Cron
	reminderSvc app.ReminderService
	logger      *logrus.Entry
	cronSpec    string
	runTimeout  time.Duration
}

func NewReminderScheduler(
	reminderSvc app.ReminderService,
	logger *logrus.Entry,
	location *time.Location, // cron fires in the job's timezone, not the server's
	cronSpec string, // e.g., "0 9 * * *" (9 AM daily)
	runTimeout time.Duration,
) *ReminderScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &ReminderScheduler{
		cronEngine: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		reminderSvc: reminderSvc,
		logger:      logger,
		cronSpec:    cronSpec,
		runTimeout:  runTimeout,
	}
}

// Start registers the daily job and starts the cron engine. ctx bounds every run.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily birthday reminders.")
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("could not add daily reminder cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Reminder scheduler started.")
	return nil
}

// runOnce logs a failed run instead of exiting, so the next day still fires.
func (s *ReminderScheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	summary, err := s.reminderSvc.RunDaily(runCtx)
	if err != nil {
		s.logger.WithError(err).Error("Daily birthday reminder run failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"date":    summary.Day.Stamp,
		"sent":    summary.Sent,
		"skipped": summary.Skipped,
	}).Info("Daily birthday reminder run completed")
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
