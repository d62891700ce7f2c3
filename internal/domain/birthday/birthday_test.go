package birthday_test

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"birthday_reminder/internal/domain/birthday"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerIDKeepsSnowflakePrecision(t *testing.T) {
	// Larger than 2^53, would be rounded through float64.
	var rows []birthday.Birthday
	err := json.Unmarshal([]byte(`[{"owner_user_id": 1234567890123456789, "name": "Bob", "month": 6, "day": 1},
		{"owner_user_id": "98765", "name": "Ann", "month": 6, "day": 1}]`), &rows)
	require.NoError(t, err)

	assert.Equal(t, birthday.OwnerID("1234567890123456789"), rows[0].OwnerID)
	assert.Equal(t, birthday.OwnerID("98765"), rows[1].OwnerID)
}

func TestOwnerIDMarshalsAsNumberWhenNumeric(t *testing.T) {
	out, err := json.Marshal(birthday.SentLogEntry{OwnerID: "1234567890123456789", YYYYMMDD: "20250601"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner_user_id":1234567890123456789,"yyyymmdd":"20250601"}`, string(out))

	out, err = json.Marshal(birthday.SentLogEntry{OwnerID: "abc", YYYYMMDD: "20250601"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner_user_id":"abc","yyyymmdd":"20250601"}`, string(out))

	// "007" is not a valid JSON number.
	out, err = json.Marshal(birthday.SentLogEntry{OwnerID: "007", YYYYMMDD: "20250601"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner_user_id":"007","yyyymmdd":"20250601"}`, string(out))

	var entry birthday.SentLogEntry
	require.NoError(t, json.Unmarshal([]byte(`{"owner_user_id":1e5,"yyyymmdd":"20250601"}`), &entry))
	assert.Equal(t, birthday.OwnerID("100000"), entry.OwnerID)
	out, err = json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner_user_id":100000,"yyyymmdd":"20250601"}`, string(out))
}

func TestOwnerIDRejectsFractions(t *testing.T) {
	var id birthday.OwnerID
	assert.Error(t, json.Unmarshal([]byte(`12.5`), &id))

	require.NoError(t, json.Unmarshal([]byte(`42.0`), &id))
	assert.Equal(t, birthday.OwnerID("42"), id)
}

func TestOwnerIDRejectsObjects(t *testing.T) {
	var id birthday.OwnerID
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
}

func TestOwnerIDInt64(t *testing.T) {
	n, err := birthday.OwnerID("42").Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = birthday.OwnerID("x42").Int64()
	assert.Error(t, err)
}

func TestDayOf(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		want birthday.Day
	}{
		{
			name: "same calendar day",
			at:   time.Date(2024, time.February, 29, 18, 0, 0, 0, time.UTC),
			want: birthday.Day{Month: 2, Day: 29, Display: "02/29", Stamp: "20240229"},
		},
		{
			name: "utc already next day",
			at:   time.Date(2025, time.January, 1, 4, 30, 0, 0, time.UTC),
			want: birthday.Day{Month: 12, Day: 31, Display: "12/31", Stamp: "20241231"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, birthday.DayOf(tt.at, chicago))
		})
	}
}

func TestParseMonthDay(t *testing.T) {
	valid := map[string][2]int{
		"01/01": {1, 1},
		"02/29": {2, 29},
		"12/31": {12, 31},
		"11/30": {11, 30},
	}
	for in, want := range valid {
		m, d, err := birthday.ParseMonthDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, [2]int{m, d}, in)
	}

	bad := map[string]error{
		"1/1":    birthday.ErrBadBirthdayFormat,
		"13/01":  birthday.ErrBadBirthdayFormat,
		"00/10":  birthday.ErrBadBirthdayFormat,
		"01/32":  birthday.ErrBadBirthdayFormat,
		"2024-1": birthday.ErrBadBirthdayFormat,
		"02/30":  birthday.ErrDayOutOfRange,
		"06/31":  birthday.ErrDayOutOfRange,
	}
	for in, wantErr := range bad {
		_, _, err := birthday.ParseMonthDay(in)
		assert.ErrorIs(t, err, wantErr, in)
	}
}
