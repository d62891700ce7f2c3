// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/domain/notifier"
	"birthday_reminder/internal/infra/clock"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReminderService runs the daily birthday reminder.
type ReminderService interface {
	// RunDaily notifies every owner with a birthday today, at most once per owner per day.
	// The first failing call aborts the run; owners after it are not processed.
	RunDaily(ctx context.Context) (Summary, error)
}

// Summary describes what a run did.
type Summary struct {
	Day     birthday.Day
	Matched int // birthday rows for today
	Owners  int // distinct owners among them
	Sent    int
	Skipped int // already notified today
}

// OwnerGroup is the set of names one owner is reminded about.
type OwnerGroup struct {
	Owner birthday.OwnerID
	Names []string
}

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	repo     birthday.Repository
	notifier notifier.Client
	clock    clock.Clock
	location *time.Location
	logger   *logrus.Entry
}

func NewReminderServiceImpl(
	repo birthday.Repository,
	nc notifier.Client,
	clk clock.Clock,
	location *time.Location, // "today" is computed here, never in the host zone
	logger *logrus.Entry,
) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		repo:     repo,
		notifier: nc,
		clock:    clk,
		location: location,
		logger:   logger,
	}
}

func (s *ReminderServiceImpl) RunDaily(ctx context.Context) (Summary, error) {
	today := birthday.DayOf(s.clock.Now(), s.location)
	summary := Summary{Day: today}
	runLogger := s.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"date":   today.Stamp,
	})
	runLogger.Info("Starting daily birthday reminder run")

	birthdays, err := s.repo.ListByDay(ctx, today.Month, today.Day)
	if err != nil {
		return summary, errors.Wrapf(err, "fetching birthdays for %s", today.Display)
	}
	summary.Matched = len(birthdays)
	if len(birthdays) == 0 {
		runLogger.Info("No birthdays today.")
		return summary, nil
	}

	groups := GroupByOwner(birthdays)
	summary.Owners = len(groups)
	runLogger.WithFields(logrus.Fields{"birthdays": len(birthdays), "owners": len(groups)}).Info("Found birthdays for today")

	for _, g := range groups {
		sent, err := s.remindOwner(ctx, runLogger.WithField("owner_user_id", g.Owner.String()), today, g)
		if err != nil {
			return summary, err
		}
		if sent {
			summary.Sent++
		} else {
			summary.Skipped++
		}
	}

	runLogger.WithFields(logrus.Fields{"sent": summary.Sent, "skipped": summary.Skipped}).Info("Daily birthday reminder run finished")
	return summary, nil
}

// remindOwner checks the sent log, then sends, then logs the send. A crash between the
// send and the log write leads to a duplicate message on the next run.
func (s *ReminderServiceImpl) remindOwner(ctx context.Context, log *logrus.Entry, today birthday.Day, g OwnerGroup) (bool, error) {
	already, err := s.repo.HasSent(ctx, g.Owner, today.Stamp)
	if err != nil {
		return false, errors.Wrapf(err, "checking sent log for owner %s", g.Owner)
	}
	if already {
		log.Infof("Already sent to %s for %s, skipping.", g.Owner, today.Stamp)
		return false, nil
	}

	channelID, err := s.notifier.OpenDirectChannel(ctx, g.Owner.String())
	if err != nil {
		return false, errors.Wrapf(err, "opening direct channel for owner %s", g.Owner)
	}

	message := FormatMessage(today, g.Names)
	if err := s.notifier.Send(ctx, channelID, message); err != nil {
		return false, errors.Wrapf(err, "sending reminder to owner %s", g.Owner)
	}

	entry := birthday.SentLogEntry{OwnerID: g.Owner, YYYYMMDD: today.Stamp}
	if err := s.repo.RecordSent(ctx, entry); err != nil {
		return false, errors.Wrapf(err, "recording reminder for owner %s", g.Owner)
	}

	log.WithField("channel_id", channelID).Infof("Sent reminder to %s: %s", g.Owner, message)
	return true, nil
}

// GroupByOwner groups names by owner in order of each owner's first row.
// Names inside a group are sorted so the message text is stable across runs.
func GroupByOwner(birthdays []birthday.Birthday) []OwnerGroup {
	index := make(map[birthday.OwnerID]int)
	var groups []OwnerGroup
	for _, b := range birthdays {
		i, ok := index[b.OwnerID]
		if !ok {
			i = len(groups)
			index[b.OwnerID] = i
			groups = append(groups, OwnerGroup{Owner: b.OwnerID})
		}
		groups[i].Names = append(groups[i].Names, b.Name)
	}
	for i := range groups {
		slices.Sort(groups[i].Names)
	}
	return groups
}

// FormatMessage builds the reminder text, e.g. "🎉 Today (06/01) is: Alice, Bob".
func FormatMessage(today birthday.Day, names []string) string {
	return fmt.Sprintf("🎉 Today (%s) is: %s", today.Display, strings.Join(names, ", "))
}
