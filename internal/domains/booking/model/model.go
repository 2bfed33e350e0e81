package model

import (
	"errors"
	"fmt"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldReserverName       = "reserver_name"
	FieldPhoneNumber        = "phone_number"
	FieldEmail              = "email"
	FieldBookingDate        = "booking_date"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldTotalHours         = "total_hours"
	FieldTotalPrice         = "total_price"
	FieldSelectedTimeSlots  = "selected_time_slots"
	FieldStatus             = "status"
	FieldCancellationReason = "cancellation_reason"
	FieldCreatedAt          = "created_at"
	FieldUpdatedAt          = "updated_at"

	DefaultCancellationReason = "Customer cancellation"
)

// SortableFields are the columns a list may be ordered by.
var SortableFields = []string{
	FieldBookingDate,
	FieldStartTime,
	FieldReserverName,
	FieldStatus,
	FieldTotalPrice,
	FieldCreatedAt,
	FieldUpdatedAt,
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

func ParseStatus(value string) (Status, bool) {
	switch s := Status(value); s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return s, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
// Staying in the same state is allowed and is a no-op.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}

	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// Transition validates moving from s to next.
func (s Status) Transition(next Status) error {
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}

	return nil
}

// Blocking reports whether a booking in this status holds its slots.
func (s Status) Blocking() bool {
	return s == StatusConfirmed
}

type Booking struct {
	ID                 string          `db:"id"`
	ReserverName       string          `db:"reserver_name"`
	PhoneNumber        string          `db:"phone_number"`
	Email              string          `db:"email"`
	BookingDate        slotModel.Date  `db:"booking_date"`
	StartTime          slotModel.Clock `db:"start_time"`
	EndTime            slotModel.Clock `db:"end_time"`
	TotalHours         int             `db:"total_hours"`
	TotalPrice         int             `db:"total_price"`
	SelectedTimeSlots  pq.StringArray  `db:"selected_time_slots"`
	Status             Status          `db:"status"`
	CancellationReason string          `db:"cancellation_reason"`
	model.Metadata
}

func (b Booking) Range() slotModel.Range {
	return slotModel.Range{Start: b.StartTime, End: b.EndTime}
}

// StartsAt returns the booking's start instant in loc.
func (b Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return b.BookingDate.At(b.StartTime, loc) //nolint:wrapcheck
}
