package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	endOfDay       = Clock(24 * minutesPerHour)
	dateLayout     = "2006-01-02"
)

var (
	ErrInvalidClock = errors.New("invalid time of day")
	ErrInvalidDate  = errors.New("invalid date")
)

// Clock is a time of day in minutes since midnight. 24:00 is a valid end of day.
type Clock int

// ParseClock accepts H:MM, HH:MM and the HH:MM:SS form postgres returns for TIME columns.
func ParseClock(value string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	if len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute >= minutesPerHour {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	if len(parts) == 3 {
		second, err := strconv.Atoi(parts[2])
		if err != nil || second != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
		}
	}

	c := Clock(hour*minutesPerHour + minute)
	if c > endOfDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	return c, nil
}

// MustParseClock is ParseClock for constants and tests.
func MustParseClock(value string) Clock {
	c, err := ParseClock(value)
	if err != nil {
		panic(err)
	}

	return c
}

// At returns the clock as an hour-aligned value.
func At(hour int) Clock {
	return Clock(hour * minutesPerHour)
}

func (c Clock) Hour() int {
	return int(c) / minutesPerHour
}

func (c Clock) Minute() int {
	return int(c) % minutesPerHour
}

// OnTheHour reports whether the clock has no minute component.
func (c Clock) OnTheHour() bool {
	return c.Minute() == 0
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Value implements driver.Valuer.
func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner.
func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return c.UnmarshalText(v)
	case string:
		return c.UnmarshalText([]byte(v))
	case time.Time:
		*c = Clock(v.Hour()*minutesPerHour + v.Minute())

		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidClock, src)
	}
}

// Date is a calendar day in YYYY-MM-DD form without a time of day.
type Date string

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return Date(t.Format(dateLayout)), nil
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) String() string {
	return string(d)
}

// At returns the instant the clock c is reached on day d in loc.
func (d Date) At(c Clock, loc *time.Location) (time.Time, error) {
	day, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}

	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

// Scan implements sql.Scanner. lib/pq decodes DATE columns into time.Time at midnight UTC.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date(v.Format(dateLayout))
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}

	return nil
}

func (d *Date) scanString(value string) error {
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
