package dto

import (
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared/constant"
	"net/http"
	"strings"
)

const RequestParamSlots = "slots"

// DayRequest selects the day whose grid is rendered.
type DayRequest struct {
	Date string `json:"date" validate:"required,date"`
}

func (r *DayRequest) FromRequest(req *http.Request) {
	r.Date = strings.TrimSpace(req.URL.Query().Get(constant.RequestParamDate))
}

// CheckRequest asks whether the given slots of a day are all free.
type CheckRequest struct {
	Date  string   `json:"date"  validate:"required,date"`
	Slots []string `json:"slots" validate:"required,min=1,dive,slotrange"`
}

// FromRequest reads ?date=YYYY-MM-DD&slots=HH:MM-HH:MM,HH:MM-HH:MM. Repeated slots params are
// accepted as well.
func (r *CheckRequest) FromRequest(req *http.Request) {
	query := req.URL.Query()

	r.Date = strings.TrimSpace(query.Get(constant.RequestParamDate))
	r.Slots = nil

	for _, value := range query[RequestParamSlots] {
		for _, slot := range strings.Split(value, ",") {
			if slot = strings.TrimSpace(slot); slot != "" {
				r.Slots = append(r.Slots, slot)
			}
		}
	}
}

type SlotResponse struct {
	Slot      string `json:"slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
	Price     int    `json:"price"`
}

type DayAvailabilityResponse struct {
	Date           string         `json:"date"`
	OpeningTime    string         `json:"opening_time"`
	ClosingTime    string         `json:"closing_time"`
	UnitPrice      int            `json:"unit_price"`
	TaxRatePercent int            `json:"tax_rate_percent"`
	Slots          []SlotResponse `json:"slots"`
}

// AddSlot appends s to the rendered day.
func (r *DayAvailabilityResponse) AddSlot(s slotModel.Slot, available bool, price int) {
	r.Slots = append(r.Slots, SlotResponse{
		Slot:      s.Range.String(),
		StartTime: s.Start.String(),
		EndTime:   s.End.String(),
		Available: available,
		Price:     price,
	})
}

type CheckResponse struct {
	Date       string   `json:"date"`
	Available  bool     `json:"available"`
	Conflicts  []string `json:"conflicts"`
	TotalHours int      `json:"total_hours"`
	TotalPrice int      `json:"total_price"`
}
