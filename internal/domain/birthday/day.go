package birthday

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Day is a calendar day already resolved in the job's timezone.
type Day struct {
	Month   int
	Day     int
	Display string // MM/DD
	Stamp   string // YYYYMMDD, the sent_log key
}

// DayOf resolves t in loc. The execution host's local zone is never consulted.
func DayOf(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	return Day{
		Month:   int(local.Month()),
		Day:     local.Day(),
		Display: local.Format("01/02"),
		Stamp:   local.Format("20060102"),
	}
}

const MaxNameLength = 100

var (
	ErrBadBirthdayFormat = errors.New("birthday must be in MM/DD format")
	ErrDayOutOfRange     = errors.New("day out of range for month")
	ErrNameMissing       = errors.New("name is missing")
	ErrNameTooLong       = fmt.Errorf("name longer than %d characters", MaxNameLength)
	ErrBirthdayMissing   = errors.New("birthday is missing")
)

var monthDayPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])$`)

// Feb allows 29 since no year is stored.
var daysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ParseMonthDay validates a zero-padded MM/DD string.
func ParseMonthDay(input string) (month, day int, err error) {
	m := monthDayPattern.FindStringSubmatch(input)
	if m == nil {
		return 0, 0, ErrBadBirthdayFormat
	}
	month, _ = strconv.Atoi(m[1])
	day, _ = strconv.Atoi(m[2])
	if day > daysInMonth[month-1] {
		return 0, 0, ErrDayOutOfRange
	}
	return month, day, nil
}
