package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"meetroom/config"
	"meetroom/infras/otel"
	"meetroom/internal/domains/availability/model/dto"
	bookingModel "meetroom/internal/domains/booking/model"
	bookingRepo "meetroom/internal/domains/booking/repository"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared/constant"
	"meetroom/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// Availability answers whether parts of a day are free. Only confirmed bookings occupy slots.
// Results are always read from storage.
type Availability interface {
	IsSlotAvailable(ctx context.Context, date slotModel.Date, slot slotModel.Range) (bool, error)
	AreSlotsAvailable(ctx context.Context, date slotModel.Date, slots []slotModel.Range) (bool, error)
	Conflicts(ctx context.Context, date slotModel.Date, slots []slotModel.Range) ([]slotModel.Range, error)
	DaySlots(ctx context.Context, date slotModel.Date) (dto.DayAvailabilityResponse, error)
}

type serviceImpl struct {
	repo    bookingRepo.Booking
	grid    slotModel.Grid
	pricing slotModel.Pricing
	otel    otel.Otel
	now     func() time.Time
}

func New(repo bookingRepo.Booking, cfg *config.Config, otel otel.Otel) Availability {
	return NewWithClock(repo, cfg, otel, timezone.Now)
}

// NewWithClock is New with an explicit source of the current time.
func NewWithClock(repo bookingRepo.Booking, cfg *config.Config, otel otel.Otel, now func() time.Time) Availability {
	return &serviceImpl{
		repo:    repo,
		grid:    slotModel.NewGrid(cfg.Booking.OpeningHour, cfg.Booking.ClosingHour),
		pricing: slotModel.NewPricing(cfg.Booking.UnitPrice, cfg.Booking.TaxRatePercent),
		otel:    otel,
		now:     now,
	}
}

func (s *serviceImpl) IsSlotAvailable(ctx context.Context, date slotModel.Date, slot slotModel.Range) (bool, error) {
	return s.AreSlotsAvailable(ctx, date, []slotModel.Range{slot})
}

func (s *serviceImpl) AreSlotsAvailable(ctx context.Context, date slotModel.Date, slots []slotModel.Range) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AreSlotsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	confirmed, err := s.confirmed(ctx, date)
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if firstOverlap(confirmed, slot) != nil {
			return false, nil
		}
	}

	return true, nil
}

// Conflicts returns the requested slots that overlap a confirmed booking, in request order.
func (s *serviceImpl) Conflicts(ctx context.Context, date slotModel.Date, slots []slotModel.Range) (res []slotModel.Range, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Conflicts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	confirmed, err := s.confirmed(ctx, date)
	if err != nil {
		return nil, err
	}

	res = []slotModel.Range{}

	for _, slot := range slots {
		if firstOverlap(confirmed, slot) != nil {
			res = append(res, slot)
		}
	}

	return res, nil
}

// DaySlots renders the grid of date. A slot is unavailable when it is booked or has already started.
func (s *serviceImpl) DaySlots(ctx context.Context, date slotModel.Date) (res dto.DayAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DaySlots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	confirmed, err := s.confirmed(ctx, date)
	if err != nil {
		return res, err
	}

	now := s.now()
	price := s.pricing.ComputePrice(1)

	res = dto.DayAvailabilityResponse{
		Date:           date.String(),
		OpeningTime:    s.grid.Opening().String(),
		ClosingTime:    s.grid.Closing().String(),
		UnitPrice:      s.pricing.UnitPrice,
		TaxRatePercent: s.pricing.TaxRatePercent,
		Slots:          make([]dto.SlotResponse, 0, s.grid.Hours()),
	}

	for _, slot := range s.grid.GenerateDaySlots(date) {
		startsAt, err := date.At(slot.Start, now.Location())
		if err != nil {
			return res, fmt.Errorf("failed to resolve slot start: %w", err)
		}

		available := startsAt.After(now) && firstOverlap(confirmed, slot.Range) == nil
		res.AddSlot(slot, available, price)
	}

	return res, nil
}

func (s *serviceImpl) confirmed(ctx context.Context, date slotModel.Date) ([]bookingModel.Booking, error) {
	bookings, err := s.repo.GetConfirmedByDate(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date.String()).Msg("failed to get confirmed bookings")

		return nil, fmt.Errorf("failed to get confirmed bookings: %w", err)
	}

	return bookings, nil
}

func firstOverlap(bookings []bookingModel.Booking, slot slotModel.Range) *bookingModel.Booking {
	for i := range bookings {
		if bookings[i].Status.Blocking() && bookings[i].Range().Overlaps(slot) {
			return &bookings[i]
		}
	}

	return nil
}
