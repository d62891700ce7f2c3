package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"birthday_reminder/internal/domain/birthday"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for registration
var ErrOwnerMissing = fmt.Errorf("missing user information")

type RegistrationService struct {
	repo   birthday.Repository
	logger *logrus.Entry
}

func NewRegistrationService(repo birthday.Repository, logger *logrus.Entry) *RegistrationService {
	return &RegistrationService{repo: repo, logger: logger}
}

// AddBirthday validates a name and an MM/DD string and upserts the birthday for owner.
// Adding the same name twice replaces the stored date.
func (s *RegistrationService) AddBirthday(ctx context.Context, owner birthday.OwnerID, name, mmdd string) (birthday.Birthday, error) {
	name = strings.TrimSpace(name)
	mmdd = strings.TrimSpace(mmdd)

	if name == "" {
		return birthday.Birthday{}, birthday.ErrNameMissing
	}
	if utf8.RuneCountInString(name) > birthday.MaxNameLength {
		return birthday.Birthday{}, birthday.ErrNameTooLong
	}
	if mmdd == "" {
		return birthday.Birthday{}, birthday.ErrBirthdayMissing
	}
	if owner == "" {
		return birthday.Birthday{}, ErrOwnerMissing
	}

	month, day, err := birthday.ParseMonthDay(mmdd)
	if err != nil {
		return birthday.Birthday{}, err
	}

	b := birthday.Birthday{OwnerID: owner, Name: name, Month: month, Day: day}
	if err := s.repo.Upsert(ctx, b); err != nil {
		s.logger.WithError(err).WithField("owner_user_id", owner.String()).Error("Failed to save birthday")
		return birthday.Birthday{}, fmt.Errorf("failed to save birthday: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"owner_user_id": owner.String(),
		"month":         month,
		"day":           day,
	}).Info("Birthday saved")
	return b, nil
}
