// internal/domain/birthday/repository.go
package birthday

//go:generate mockgen -source=repository.go -destination=../../mocks/birthdaymock/repository.go -package=birthdaymock

import "context"

// Repository defines the record store operations used by the reminder job and
// the registration endpoint.
type Repository interface {
	// ListByDay returns every birthday whose month and day match.
	ListByDay(ctx context.Context, month, day int) ([]Birthday, error)

	// HasSent reports whether a sent_log entry exists for the owner and date stamp.
	HasSent(ctx context.Context, owner OwnerID, yyyymmdd string) (bool, error)
	// RecordSent appends a sent_log entry. Writing the same (owner, stamp) twice must not
	// create a second row.
	RecordSent(ctx context.Context, entry SentLogEntry) error

	// Upsert creates or replaces the birthday identified by (owner, name).
	Upsert(ctx context.Context, b Birthday) error
}
