package postgrest

import (
	"context"
	"strconv"

	"birthday_reminder/internal/domain/birthday"

	"github.com/cockroachdb/errors"
)

const (
	collectionBirthdays = "birthdays"
	collectionSentLog   = "sent_log"
)

var (
	birthdayFields = []string{"owner_user_id", "name", "month", "day"}
	sentLogFields  = []string{"owner_user_id", "yyyymmdd"}
)

// BirthdayRepository implements birthday.Repository over PostgREST.
type BirthdayRepository struct {
	client *Client
}

func NewBirthdayRepository(client *Client) *BirthdayRepository {
	return &BirthdayRepository{client: client}
}

func (r *BirthdayRepository) ListByDay(ctx context.Context, month, day int) ([]birthday.Birthday, error) {
	var rows []birthday.Birthday
	err := r.client.Query(ctx, collectionBirthdays, birthdayFields, Filters{
		"month": strconv.Itoa(month),
		"day":   strconv.Itoa(day),
	}, &rows)
	if err != nil {
		return nil, errors.Wrap(err, "listing birthdays")
	}
	return rows, nil
}

func (r *BirthdayRepository) HasSent(ctx context.Context, owner birthday.OwnerID, yyyymmdd string) (bool, error) {
	var rows []birthday.SentLogEntry
	err := r.client.Query(ctx, collectionSentLog, sentLogFields, Filters{
		"owner_user_id": owner.String(),
		"yyyymmdd":      yyyymmdd,
	}, &rows)
	if err != nil {
		return false, errors.Wrap(err, "checking sent log")
	}
	return len(rows) > 0, nil
}

func (r *BirthdayRepository) RecordSent(ctx context.Context, entry birthday.SentLogEntry) error {
	if err := r.client.Append(ctx, collectionSentLog, entry); err != nil {
		return errors.Wrap(err, "writing sent log")
	}
	return nil
}

func (r *BirthdayRepository) Upsert(ctx context.Context, b birthday.Birthday) error {
	if err := r.client.Append(ctx, collectionBirthdays, b, "owner_user_id", "name"); err != nil {
		return errors.Wrap(err, "saving birthday")
	}
	return nil
}
