package availability

import (
	"meetroom/config"
	"meetroom/infras/otel"
	"meetroom/internal/domains/availability/model/dto"
	"meetroom/internal/domains/availability/service"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared/constant"
	"meetroom/shared/failure"
	"meetroom/shared/validator"
	"meetroom/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
	grid    slotModel.Grid
	pricing slotModel.Pricing
}

func New(service service.Availability, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
		grid:    slotModel.NewGrid(cfg.Booking.OpeningHour, cfg.Booking.ClosingHour),
		pricing: slotModel.NewPricing(cfg.Booking.UnitPrice, cfg.Booking.TaxRatePercent),
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDayAvailability)
		routerGroup.Get("/check", handler.CheckSlots)
	})
}

// GetDayAvailability renders the slot grid of a day.
// @Summary Get availability of a day
// @Description List every hourly slot of the day with its availability and price. Started slots are unavailable.
// @Tags Availability
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.DayAvailabilityResponse] "Slot grid"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetDayAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDayAvailability")
	defer scope.End()

	req := dto.DayRequest{}
	req.FromRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.DaySlots(ctx, slotModel.Date(req.Date))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", req.Date).Msg("failed to get day availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckSlots reports whether all the given slots of a day are free.
// @Summary Check slots
// @Description Check a set of grid-aligned ranges against confirmed bookings and quote their price. Ranges are split into hourly slots; slots outside opening hours or requested twice are rejected.
// @Tags Availability
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param slots query string true "Comma separated HH:MM-HH:MM ranges"
// @Success 200 {object} response.Data[dto.CheckResponse] "Check result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/check [get]
func (handler *Handler) CheckSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckSlots")
	defer scope.End()

	req := dto.CheckRequest{}
	req.FromRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	ranges, err := slotModel.ParseRanges(req.Slots)
	if err != nil {
		response.WithError(w, failure.Validation(dto.RequestParamSlots, err.Error()))

		return
	}

	slots, err := handler.grid.Cells(ranges)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.Validation(dto.RequestParamSlots, err.Error()))

		return
	}

	conflicts, err := handler.service.Conflicts(ctx, slotModel.Date(req.Date), slots)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", req.Date).Msg("failed to check slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.CheckResponse{
		Date:       req.Date,
		Available:  len(conflicts) == 0,
		Conflicts:  slotModel.Strings(conflicts),
		TotalHours: len(slots),
		TotalPrice: handler.pricing.ComputePrice(len(slots)),
	})
}
