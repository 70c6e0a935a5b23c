package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptySlot       = errors.New("slot must not be empty")
	ErrInvalidGuests   = errors.New("number of guests must be positive")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrDateInPast      = errors.New("booking date cannot be in the past")
)

// Slot identifies a named seating window within a day's schedule ("18:00", "LUNCH_1").
// It is an opaque key: two bookings conflict when their date and slot are equal.
type Slot struct {
	value string
}

func NewSlot(value string) (Slot, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Slot{}, ErrEmptySlot
	}
	return Slot{value: trimmed}, nil
}

func (s Slot) String() string {
	return s.value
}

type GuestCount struct {
	value int32
}

func NewGuestCount(n int32) (GuestCount, error) {
	if n <= 0 {
		return GuestCount{}, ErrInvalidGuests
	}
	return GuestCount{value: n}, nil
}

func (g GuestCount) Value() int32 {
	return g.value
}

// BookingDate is a calendar date with the time-of-day component dropped.
type BookingDate struct {
	value time.Time
}

func NewBookingDate(t time.Time, now time.Time) (BookingDate, error) {
	day := truncateToDay(t)
	if day.Before(truncateToDay(now)) {
		return BookingDate{}, ErrDateInPast
	}
	return BookingDate{value: day}, nil
}

func ReconstructBookingDate(t time.Time) BookingDate {
	return BookingDate{value: truncateToDay(t)}
}

func (d BookingDate) Value() time.Time {
	return d.value
}

func (d BookingDate) String() string {
	return d.value.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
