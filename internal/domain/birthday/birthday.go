// internal/domain/birthday/birthday.go
package birthday

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// OwnerID identifies the user who tracks a birthday and receives the reminder.
// Chat platform ids are 64-bit snowflakes, so the value is kept as its decimal text
// instead of going through float64 during JSON decoding.
type OwnerID string

func (o OwnerID) String() string { return string(o) }

// Int64 parses the id for platforms that address users by integer chat id.
func (o OwnerID) Int64() (int64, error) {
	id, err := strconv.ParseInt(string(o), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("owner id %q is not numeric: %w", string(o), err)
	}
	return id, nil
}

// MarshalJSON writes canonical decimal ids as JSON numbers, matching the bigint
// columns. Anything else, leading zeros included, stays a JSON string.
func (o OwnerID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseUint(string(o), 10, 64); err == nil && strconv.FormatUint(n, 10) == string(o) {
		return []byte(o), nil
	}
	return json.Marshal(string(o))
}

// UnmarshalJSON accepts both a JSON number and a JSON string.
func (o *OwnerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OwnerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("owner id must be a number or string: %w", err)
	}
	id, err := canonicalInteger(n)
	if err != nil {
		return err
	}
	*o = OwnerID(id)
	return nil
}

// canonicalInteger rewrites numbers such as 1e5 or 100000.0 to plain decimal text.
func canonicalInteger(n json.Number) (string, error) {
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return strconv.FormatUint(u, 10), nil
	}
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return "", fmt.Errorf("owner id %s is not an integer", n)
	}
	return r.Num().String(), nil
}

// Birthday is a row of the 'birthdays' collection.
type Birthday struct {
	OwnerID OwnerID `json:"owner_user_id"`
	Name    string  `json:"name"`
	Month   int     `json:"month"`
	Day     int     `json:"day"`
}

// SentLogEntry is a row of the 'sent_log' collection. One entry per (owner, day).
type SentLogEntry struct {
	OwnerID  OwnerID `json:"owner_user_id"`
	YYYYMMDD string  `json:"yyyymmdd"`
}
