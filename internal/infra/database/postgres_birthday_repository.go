package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"birthday_reminder/internal/domain/birthday"
)

// PostgresBirthdayRepository implements birthday.Repository with direct SQL against
// the same 'birthdays' and 'sent_log' tables the REST endpoint exposes.
type PostgresBirthdayRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresBirthdayRepository(db *sql.DB, timeout time.Duration) *PostgresBirthdayRepository {
	return &PostgresBirthdayRepository{db: db, timeout: timeout}
}

func (r *PostgresBirthdayRepository) ListByDay(ctx context.Context, month, day int) ([]birthday.Birthday, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT owner_user_id::text, name, month, day
               FROM birthdays WHERE month = $1 AND day = $2`

	rows, err := r.db.QueryContext(ctx, query, month, day)
	if err != nil {
		return nil, fmt.Errorf("error listing birthdays for %02d/%02d: %w", month, day, err)
	}
	defer rows.Close()

	birthdays := make([]birthday.Birthday, 0)
	for rows.Next() {
		var b birthday.Birthday
		var owner string
		if err := rows.Scan(&owner, &b.Name, &b.Month, &b.Day); err != nil {
			return nil, fmt.Errorf("error scanning birthday: %w", err)
		}
		b.OwnerID = birthday.OwnerID(owner)
		birthdays = append(birthdays, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birthdays: %w", err)
	}
	return birthdays, nil
}

func (r *PostgresBirthdayRepository) HasSent(ctx context.Context, owner birthday.OwnerID, yyyymmdd string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT EXISTS (
               SELECT 1 FROM sent_log WHERE owner_user_id::text = $1 AND yyyymmdd = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, owner.String(), yyyymmdd).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking sent log for %s: %w", owner, err)
	}
	return exists, nil
}

// RecordSent relies on the (owner_user_id, yyyymmdd) key; a second write is a no-op.
func (r *PostgresBirthdayRepository) RecordSent(ctx context.Context, entry birthday.SentLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `INSERT INTO sent_log (owner_user_id, yyyymmdd)
               VALUES ($1, $2)
               ON CONFLICT (owner_user_id, yyyymmdd) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, entry.OwnerID.String(), entry.YYYYMMDD); err != nil {
		return fmt.Errorf("error writing sent log for %s: %w", entry.OwnerID, err)
	}
	return nil
}

func (r *PostgresBirthdayRepository) Upsert(ctx context.Context, b birthday.Birthday) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `INSERT INTO birthdays (owner_user_id, name, month, day)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (owner_user_id, name) DO UPDATE
               SET month = EXCLUDED.month, day = EXCLUDED.day`

	if _, err := r.db.ExecContext(ctx, query, b.OwnerID.String(), b.Name, b.Month, b.Day); err != nil {
		return fmt.Errorf("error saving birthday %q for %s: %w", b.Name, b.OwnerID, err)
	}
	return nil
}
