package app_test

import (
	"errors"
	"strings"
	"testing"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/mocks/birthdaymock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAddBirthday(t *testing.T) {
	t.Run("saves a valid birthday", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := birthdaymock.NewMockRepository(ctrl)
		want := birthday.Birthday{OwnerID: "42", Name: "Alice", Month: 2, Day: 29}
		repo.EXPECT().Upsert(gomock.Any(), want).Return(nil).Times(1)

		svc := app.NewRegistrationService(repo, discardLogger())
		got, err := svc.AddBirthday(t.Context(), "42", "  Alice ", " 02/29 ")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("store failure is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := birthdaymock.NewMockRepository(ctrl)
		storeErr := errors.New("postgrest POST birthdays failed: 500")
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(storeErr)

		svc := app.NewRegistrationService(repo, discardLogger())
		_, err := svc.AddBirthday(t.Context(), "42", "Alice", "01/15")

		assert.ErrorIs(t, err, storeErr)
	})

	invalid := []struct {
		name    string
		owner   birthday.OwnerID
		subject string
		mmdd    string
		errIs   error
	}{
		{name: "empty name", owner: "42", subject: "   ", mmdd: "01/01", errIs: birthday.ErrNameMissing},
		{name: "name too long", owner: "42", subject: strings.Repeat("a", 101), mmdd: "01/01", errIs: birthday.ErrNameTooLong},
		{name: "missing birthday", owner: "42", subject: "Alice", mmdd: "", errIs: birthday.ErrBirthdayMissing},
		{name: "missing owner", owner: "", subject: "Alice", mmdd: "01/01", errIs: app.ErrOwnerMissing},
		{name: "not zero padded", owner: "42", subject: "Alice", mmdd: "1/1", errIs: birthday.ErrBadBirthdayFormat},
		{name: "april 31st", owner: "42", subject: "Alice", mmdd: "04/31", errIs: birthday.ErrDayOutOfRange},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := birthdaymock.NewMockRepository(ctrl) // no Upsert expected

			svc := app.NewRegistrationService(repo, discardLogger())
			_, err := svc.AddBirthday(t.Context(), tc.owner, tc.subject, tc.mmdd)

			assert.ErrorIs(t, err, tc.errIs)
		})
	}

	t.Run("100 characters is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := birthdaymock.NewMockRepository(ctrl)
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

		svc := app.NewRegistrationService(repo, discardLogger())
		_, err := svc.AddBirthday(t.Context(), "42", strings.Repeat("é", 100), "12/31")

		assert.NoError(t, err)
	})
}
