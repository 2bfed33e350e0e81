package dto

import (
	"meetroom/internal/domains/booking/model"
	"meetroom/shared"
	"meetroom/shared/constant"
	gDto "meetroom/shared/dto"
	"meetroom/shared/failure"
	"net/http"
	"strings"
)

// CreateBookingRequest is the self-service booking form.
type CreateBookingRequest struct {
	ReserverName      string   `json:"reserver_name"       validate:"required,max=100"`
	PhoneNumber       string   `json:"phone_number"        validate:"required,max=30"`
	Email             string   `json:"email"               validate:"required,email,max=254"`
	BookingDate       string   `json:"booking_date"        validate:"required,date"`
	StartTime         string   `json:"start_time"          validate:"required,clock"`
	EndTime           string   `json:"end_time"            validate:"required,clock"`
	TotalHours        int      `json:"total_hours"         validate:"required,gte=1"`
	TotalPrice        int      `json:"total_price"         validate:"required,gte=1"`
	SelectedTimeSlots []string `json:"selected_time_slots" validate:"required,min=1,dive,slotrange"`
}

func (c *CreateBookingRequest) ToDraft() model.Draft {
	return model.Draft{
		ReserverName:      c.ReserverName,
		PhoneNumber:       c.PhoneNumber,
		Email:             c.Email,
		BookingDate:       c.BookingDate,
		StartTime:         c.StartTime,
		EndTime:           c.EndTime,
		TotalHours:        c.TotalHours,
		TotalPrice:        c.TotalPrice,
		SelectedTimeSlots: c.SelectedTimeSlots,
		Status:            model.StatusConfirmed,
	}
}

// ManualCreateBookingRequest is an administrator entering a booking on someone's behalf.
type ManualCreateBookingRequest struct {
	ReserverName      string   `json:"reserver_name"       validate:"required,max=100"`
	PhoneNumber       string   `json:"phone_number"        validate:"required,max=30"`
	Email             string   `json:"email"               validate:"omitempty,email,max=254"`
	BookingDate       string   `json:"booking_date"        validate:"required,date"`
	StartTime         string   `json:"start_time"          validate:"required,clock"`
	EndTime           string   `json:"end_time"            validate:"required,clock"`
	TotalHours        int      `json:"total_hours"         validate:"required,gte=1"`
	TotalPrice        int      `json:"total_price"         validate:"required,gte=1"`
	SelectedTimeSlots []string `json:"selected_time_slots" validate:"omitempty,dive,slotrange"`
	Status            string   `json:"status"              validate:"omitempty,oneof=pending confirmed"`
}

func (c *ManualCreateBookingRequest) ToDraft() model.Draft {
	status := model.StatusConfirmed
	if c.Status != "" {
		status = model.Status(c.Status)
	}

	return model.Draft{
		ReserverName:      c.ReserverName,
		PhoneNumber:       c.PhoneNumber,
		Email:             c.Email,
		BookingDate:       c.BookingDate,
		StartTime:         c.StartTime,
		EndTime:           c.EndTime,
		TotalHours:        c.TotalHours,
		TotalPrice:        c.TotalPrice,
		SelectedTimeSlots: c.SelectedTimeSlots,
		Status:            status,
	}
}

// UpdateBookingRequest carries the administrator-editable fields. Anything else in the body is ignored.
type UpdateBookingRequest struct {
	ReserverName *string `db:"reserver_name" json:"reserver_name" validate:"omitempty,min=1,max=100"`
	PhoneNumber  *string `db:"phone_number"  json:"phone_number"  validate:"omitempty,min=1,max=30"`
	Email        *string `db:"email"         json:"email"         validate:"omitempty,email,max=254"`
	Status       *string `db:"status"        json:"status"        validate:"omitempty,oneof=pending confirmed cancelled"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return u.ReserverName == nil && u.PhoneNumber == nil && u.Email == nil && u.Status == nil
}

// TargetStatus returns the requested status, if any.
func (u *UpdateBookingRequest) TargetStatus() (model.Status, bool) {
	if u.Status == nil {
		return "", false
	}

	return model.ParseStatus(*u.Status)
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (c *CancelBookingRequest) ReasonOrDefault() string {
	if reason := strings.TrimSpace(c.Reason); reason != "" {
		return reason
	}

	return model.DefaultCancellationReason
}

// ListFilter narrows the booking list.
type ListFilter struct {
	StartDate string `json:"startDate" validate:"omitempty,date"`
	EndDate   string `json:"endDate"   validate:"omitempty,date"`
	Status    string `json:"status"    validate:"omitempty,oneof=all pending confirmed cancelled"`
	Email     string `json:"email"     validate:"omitempty,email"`
}

func (f *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.StartDate = strings.TrimSpace(query.Get(constant.RequestParamStartDate))
	f.EndDate = strings.TrimSpace(query.Get(constant.RequestParamEndDate))
	f.Status = strings.ToLower(strings.TrimSpace(query.Get(constant.RequestParamStatus)))
	f.Email = strings.TrimSpace(query.Get(constant.RequestParamEmail))
}

// Check rejects a range whose end is before its start.
func (f *ListFilter) Check() error {
	if f.StartDate != "" && f.EndDate != "" && f.EndDate < f.StartDate {
		return failure.Validation(constant.RequestParamEndDate, "endDate must not be before startDate") //nolint:wrapcheck
	}

	return nil
}

func (f *ListFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.StartDate != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "start_date",
			Field:    model.FieldBookingDate,
			Value:    f.StartDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.EndDate != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "end_date",
			Field:    model.FieldBookingDate,
			Value:    f.EndDate,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	if f.Status != "" && f.Status != constant.RequestParamStatusAll {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    f.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.Email != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldEmail,
			Value:    f.Email,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

type BookingResponse struct {
	ID                 string   `json:"id"`
	ReserverName       string   `json:"reserver_name"`
	PhoneNumber        string   `json:"phone_number"`
	Email              string   `json:"email,omitempty"`
	BookingDate        string   `json:"booking_date"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	TotalHours         int      `json:"total_hours"`
	TotalPrice         int      `json:"total_price"`
	SelectedTimeSlots  []string `json:"selected_time_slots"`
	Status             string   `json:"status"`
	CancellationReason string   `json:"cancellation_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.ReserverName = m.ReserverName
	r.PhoneNumber = m.PhoneNumber
	r.Email = m.Email
	r.BookingDate = m.BookingDate.String()
	r.StartTime = m.StartTime.String()
	r.EndTime = m.EndTime.String()
	r.TotalHours = m.TotalHours
	r.TotalPrice = m.TotalPrice
	r.SelectedTimeSlots = append([]string{}, m.SelectedTimeSlots...)
	r.Status = string(m.Status)
	r.CancellationReason = m.CancellationReason
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CancelBookingResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type BookingSummary struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	TotalPrice  int    `json:"total_price"`
}

type CancellationInfo struct {
	CanCancel            bool    `json:"can_cancel"`
	HoursUntilBooking    float64 `json:"hours_until_booking"`
	MinimumHoursRequired float64 `json:"minimum_hours_required"`
}

type CancellationInfoResponse struct {
	Booking          BookingSummary   `json:"booking"`
	CancellationInfo CancellationInfo `json:"cancellation_info"`
}

func (r *CancellationInfoResponse) FromModel(m model.Booking, decision model.CancellationDecision) {
	r.Booking = BookingSummary{
		ID:          m.ID,
		Status:      string(m.Status),
		BookingDate: m.BookingDate.String(),
		StartTime:   m.StartTime.String(),
		TotalPrice:  m.TotalPrice,
	}
	r.CancellationInfo = CancellationInfo{
		CanCancel:            decision.CanCancel,
		HoursUntilBooking:    decision.HoursUntilBooking,
		MinimumHoursRequired: decision.MinimumHoursRequired,
	}
}
