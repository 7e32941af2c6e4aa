package class

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrInvalidClockTime = errors.New("invalid clock time")

// Weekday is the stored day-of-week of a recurring class.
type Weekday string

const (
	Sunday    Weekday = "SUNDAY"
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
)

// Indexed by time.Weekday, Sunday=0 .. Saturday=6.
var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekdayLabels = map[Weekday]string{
	Sunday:    "domingo",
	Monday:    "lunes",
	Tuesday:   "martes",
	Wednesday: "miércoles",
	Thursday:  "jueves",
	Friday:    "viernes",
	Saturday:  "sábado",
}

// WeekdayOf maps t's weekday, in t's own location, to the stored enum.
func WeekdayOf(t time.Time) Weekday {
	return weekdays[t.Weekday()]
}

func (d Weekday) Valid() bool {
	_, ok := weekdayLabels[d]
	return ok
}

// Label is the lowercase Spanish day name shown to athletes.
func (d Weekday) Label() string {
	if l, ok := weekdayLabels[d]; ok {
		return l
	}
	return string(d)
}

// ClockTime is a naive wall-clock "HH:MM" meant to be read in the gym timezone.
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On returns the instant at c on the calendar date of day, in day's location,
// with seconds and nanoseconds zeroed.
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c *ClockTime) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidClockTime, src)
	}

	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidClockTime, data)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
