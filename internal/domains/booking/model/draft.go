package model

import (
	"errors"
	"fmt"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared/failure"
	"strings"
)

// Draft is a booking as submitted, before derived fields are checked.
type Draft struct {
	ReserverName      string
	PhoneNumber       string
	Email             string
	BookingDate       string
	StartTime         string
	EndTime           string
	TotalHours        int
	TotalPrice        int
	SelectedTimeSlots []string
	Status            Status
}

// Rules are the grid and price a draft is checked against.
type Rules struct {
	Grid    slotModel.Grid
	Pricing slotModel.Pricing
	// DeriveSlots expands the slots from start/end when none were sent.
	DeriveSlots bool
}

type requirement struct {
	field   string
	present bool
}

// requirements lists the fields every booking must carry, in the order they are reported.
func (d Draft) requirements() []requirement {
	return []requirement{
		{FieldReserverName, strings.TrimSpace(d.ReserverName) != ""},
		{FieldPhoneNumber, strings.TrimSpace(d.PhoneNumber) != ""},
		{FieldBookingDate, strings.TrimSpace(d.BookingDate) != ""},
		{FieldStartTime, strings.TrimSpace(d.StartTime) != ""},
		{FieldEndTime, strings.TrimSpace(d.EndTime) != ""},
		{FieldTotalHours, d.TotalHours != 0},
		{FieldTotalPrice, d.TotalPrice != 0},
	}
}

// Validate checks the required fields and the derived ones (slots, hours, price) and returns the
// normalized booking without an id or timestamps.
func (d Draft) Validate(rules Rules) (Booking, error) {
	for _, req := range d.requirements() {
		if !req.present {
			return Booking{}, failure.Missing(req.field) //nolint:wrapcheck
		}
	}

	date, err := slotModel.ParseDate(d.BookingDate)
	if err != nil {
		return Booking{}, failure.Validation(FieldBookingDate, "booking_date must be a date in YYYY-MM-DD format") //nolint:wrapcheck
	}

	start, err := slotModel.ParseClock(d.StartTime)
	if err != nil {
		return Booking{}, failure.Validation(FieldStartTime, "start_time must be a time in HH:MM format") //nolint:wrapcheck
	}

	end, err := slotModel.ParseClock(d.EndTime)
	if err != nil {
		return Booking{}, failure.Validation(FieldEndTime, "end_time must be a time in HH:MM format") //nolint:wrapcheck
	}

	span, err := slotModel.NewRange(start, end)
	if err != nil {
		return Booking{}, failure.Validation(FieldEndTime, "end_time must be after start_time") //nolint:wrapcheck
	}

	if !rules.Grid.Aligned(span) {
		return Booking{}, failure.Validation(FieldStartTime, fmt.Sprintf( //nolint:wrapcheck
			"booking must cover whole hours between %s and %s", rules.Grid.Opening(), rules.Grid.Closing()))
	}

	slots, err := d.slots(rules, span)
	if err != nil {
		return Booking{}, err
	}

	if d.TotalHours != len(slots) {
		return Booking{}, failure.Validation(FieldTotalHours, fmt.Sprintf( //nolint:wrapcheck
			"total_hours must equal the number of selected slots (%d)", len(slots)))
	}

	if expected := rules.Pricing.ComputePrice(len(slots)); d.TotalPrice != expected {
		return Booking{}, failure.Validation(FieldTotalPrice, fmt.Sprintf( //nolint:wrapcheck
			"total_price must be %d for %d hour(s)", expected, len(slots)))
	}

	status := d.Status
	if status == "" {
		status = StatusConfirmed
	}

	return Booking{
		ReserverName:      strings.TrimSpace(d.ReserverName),
		PhoneNumber:       strings.TrimSpace(d.PhoneNumber),
		Email:             strings.TrimSpace(d.Email),
		BookingDate:       date,
		StartTime:         span.Start,
		EndTime:           span.End,
		TotalHours:        len(slots),
		TotalPrice:        d.TotalPrice,
		SelectedTimeSlots: slotModel.Strings(slots),
		Status:            status,
	}, nil
}

// slots parses the selected slots and checks that together they are exactly the booked span.
func (d Draft) slots(rules Rules, span slotModel.Range) ([]slotModel.Range, error) {
	if len(d.SelectedTimeSlots) == 0 {
		if !rules.DeriveSlots {
			return nil, failure.Missing(FieldSelectedTimeSlots) //nolint:wrapcheck
		}

		return rules.Grid.Expand(span) //nolint:wrapcheck
	}

	ranges, err := slotModel.ParseRanges(d.SelectedTimeSlots)
	if err != nil {
		return nil, failure.Validation(FieldSelectedTimeSlots, "selected_time_slots must be time ranges in HH:MM-HH:MM format") //nolint:wrapcheck
	}

	for _, r := range ranges {
		if !rules.Grid.IsSlot(r) {
			return nil, failure.Validation(FieldSelectedTimeSlots, fmt.Sprintf( //nolint:wrapcheck
				"%s is not a one-hour slot between %s and %s", r, rules.Grid.Opening(), rules.Grid.Closing()))
		}
	}

	covered, err := slotModel.Span(ranges)
	if errors.Is(err, slotModel.ErrNotContiguous) {
		return nil, failure.Validation(FieldSelectedTimeSlots, "selected_time_slots must be adjacent and not repeat") //nolint:wrapcheck
	}

	if err != nil {
		return nil, failure.Validation(FieldSelectedTimeSlots, err.Error()) //nolint:wrapcheck
	}

	if covered != span {
		return nil, failure.Validation(FieldSelectedTimeSlots, fmt.Sprintf( //nolint:wrapcheck
			"selected_time_slots cover %s but start_time/end_time is %s", covered, span))
	}

	expanded, err := rules.Grid.Expand(covered)
	if err != nil {
		return nil, failure.Validation(FieldSelectedTimeSlots, err.Error()) //nolint:wrapcheck
	}

	return expanded, nil
}
