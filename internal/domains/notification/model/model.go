package model

import (
	"meetroom/internal/domains/booking/model"
	"strings"
	"time"
)

const (
	EventBookingCreated = "booking.created"

	bookingDetailPath = "/booking/"
)

// BookingCreatedEvent is published once a booking has been stored. It is also the webhook body.
type BookingCreatedEvent struct {
	Event             string    `json:"event"`
	ID                string    `json:"id"`
	ReserverName      string    `json:"reserver_name"`
	PhoneNumber       string    `json:"phone_number"`
	Email             string    `json:"email,omitempty"`
	BookingDate       string    `json:"booking_date"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	TotalHours        int       `json:"total_hours"`
	TotalPrice        int       `json:"total_price"`
	SelectedTimeSlots []string  `json:"selected_time_slots"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	DetailURL         string    `json:"detail_url"`
}

// NewBookingCreatedEvent builds the event for b. The detail link points at baseURL/booking/{id}.
func NewBookingCreatedEvent(b model.Booking, baseURL string) BookingCreatedEvent {
	return BookingCreatedEvent{
		Event:             EventBookingCreated,
		ID:                b.ID,
		ReserverName:      b.ReserverName,
		PhoneNumber:       b.PhoneNumber,
		Email:             b.Email,
		BookingDate:       b.BookingDate.String(),
		StartTime:         b.StartTime.String(),
		EndTime:           b.EndTime.String(),
		TotalHours:        b.TotalHours,
		TotalPrice:        b.TotalPrice,
		SelectedTimeSlots: append([]string{}, b.SelectedTimeSlots...),
		Status:            string(b.Status),
		CreatedAt:         b.CreatedAt,
		DetailURL:         DetailURL(baseURL, b.ID),
	}
}

func DetailURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + bookingDetailPath + id
}
