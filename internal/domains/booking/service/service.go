package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"meetroom/config"
	"meetroom/infras/otel"
	availabilityService "meetroom/internal/domains/availability/service"
	"meetroom/internal/domains/booking/model"
	"meetroom/internal/domains/booking/model/dto"
	"meetroom/internal/domains/booking/repository"
	notificationService "meetroom/internal/domains/notification/service"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared"
	"meetroom/shared/cache"
	"meetroom/shared/constant"
	gDto "meetroom/shared/dto"
	"meetroom/shared/failure"
	gModel "meetroom/shared/model"
	"meetroom/shared/timezone"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CreateManual(ctx context.Context, req dto.ManualCreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, email string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (dto.CancelBookingResponse, error)
	CancellationInfo(ctx context.Context, id string) (dto.CancellationInfoResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	availability availabilityService.Availability
	notification notificationService.Dispatcher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	rules        model.Rules
	policy       model.CancellationPolicy
	now          func() time.Time
}

func New(
	repo repository.Booking,
	availability availabilityService.Availability,
	notification notificationService.Dispatcher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return NewWithClock(repo, availability, notification, cfg, cache, otel, timezone.Now)
}

// NewWithClock is New with an explicit source of the current time. The location of the returned
// times is the one booking dates and times are read in.
func NewWithClock(
	repo repository.Booking,
	availability availabilityService.Availability,
	notification notificationService.Dispatcher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	now func() time.Time,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		notification: notification,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		rules: model.Rules{
			Grid:    slotModel.NewGrid(cfg.Booking.OpeningHour, cfg.Booking.ClosingHour),
			Pricing: slotModel.NewPricing(cfg.Booking.UnitPrice, cfg.Booking.TaxRatePercent),
		},
		policy: model.NewCancellationPolicy(cfg.Booking.CancellationLeadHours, now().Location()),
		now:    now,
	}
}

// Create stores a self-service booking as confirmed and announces it.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToDraft().Validate(s.rules)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	startsAt, err := booking.StartsAt(s.policy.Location)
	if err != nil {
		return res, failure.Validation(model.FieldBookingDate, err.Error()) // nolint:wrapcheck
	}

	if !startsAt.After(s.now()) {
		return res, failure.Validation(model.FieldStartTime, "booking must start in the future") // nolint:wrapcheck
	}

	booking, err = s.reserve(ctx, booking)
	if err != nil {
		return res, err
	}

	s.notification.Dispatch(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

// CreateManual stores a booking entered by an administrator. Slots may be omitted and past dates
// are accepted.
func (s *serviceImpl) CreateManual(ctx context.Context, req dto.ManualCreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateManual")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rules := s.rules
	rules.DeriveSlots = true

	booking, err := req.ToDraft().Validate(rules)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	booking, err = s.reserve(ctx, booking)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// reserve re-checks availability, then writes booking. The repository repeats the check under a
// lock for confirmed bookings.
func (s *serviceImpl) reserve(ctx context.Context, booking model.Booking) (model.Booking, error) {
	slots, err := slotModel.ParseRanges(booking.SelectedTimeSlots)
	if err != nil {
		return booking, failure.Validation(model.FieldSelectedTimeSlots, err.Error()) // nolint:wrapcheck
	}

	available, err := s.availability.AreSlotsAvailable(ctx, booking.BookingDate, slots)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot availability")

		return booking, fmt.Errorf("failed to check slot availability: %w", err)
	}

	if !available {
		return booking, slotConflict(booking)
	}

	now := s.now()
	booking.ID = uuid.NewString()
	booking.Metadata = gModel.Metadata{CreatedAt: now, UpdatedAt: now}

	if err = s.repo.Reserve(ctx, booking); err != nil {
		return booking, s.mapError(err, "create booking", booking)
	}

	log.Info().Str("booking_id", booking.ID).Str("date", booking.BookingDate.String()).
		Str("range", booking.Range().String()).Str("status", string(booking.Status)).Msg("booking created")

	s.invalidate(ctx, constant.Empty)

	return booking, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// GetMine lists the bookings made with email.
func (s *serviceImpl) GetMine(ctx context.Context, email string, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	if email == constant.Empty {
		return dto.GetBookingsResponse{}, failure.Unauthorized("token does not carry an email") // nolint:wrapcheck
	}

	filter := dto.ListFilter{Email: email}

	return s.GetAll(ctx, req, filter.ToFilterGroup())
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if _, err := s.cache.SaveIfAbsent(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// Update applies the allow-listed fields. A status change follows the state machine and a move to
// confirmed must still fit the day.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.WithReason(http.StatusBadRequest, failure.ReasonNoDataToUpdate, "no data to update", nil) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req)
	target, hasStatus := req.TargetStatus()

	booking, err := s.repo.Apply(ctx, id, func(current model.Booking) (map[string]any, error) {
		if !hasStatus {
			return updatedFields, nil
		}

		if err := current.Status.Transition(target); err != nil {
			return nil, invalidTransition(current.Status, target)
		}

		if target == current.Status {
			delete(updatedFields, model.FieldStatus)
		}

		return updatedFields, nil
	})
	if err != nil {
		return res, s.mapError(err, "update booking", model.Booking{ID: id})
	}

	s.refresh(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

// Confirm moves a pending booking to confirmed. Confirming a confirmed booking changes nothing.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Apply(ctx, id, func(current model.Booking) (map[string]any, error) {
		if current.Status == model.StatusConfirmed {
			return nil, nil
		}

		if err := current.Status.Transition(model.StatusConfirmed); err != nil {
			return nil, invalidTransition(current.Status, model.StatusConfirmed)
		}

		return map[string]any{
			model.FieldStatus:    model.StatusConfirmed,
			model.FieldUpdatedAt: s.now(),
		}, nil
	})
	if err != nil {
		return res, s.mapError(err, "confirm booking", model.Booking{ID: id})
	}

	s.refresh(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

// Cancel cancels the booking if the cancellation window is still open.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (res dto.CancelBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reason := req.ReasonOrDefault()

	booking, err := s.repo.Apply(ctx, id, func(current model.Booking) (map[string]any, error) {
		now := s.now()

		decision, err := s.policy.Evaluate(current, now)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate cancellation policy: %w", err)
		}

		if decision.AlreadyCancelled {
			return nil, failure.WithReason(http.StatusBadRequest, failure.ReasonAlreadyCancelled, "booking is already cancelled", nil) // nolint:wrapcheck
		}

		if !decision.CanCancel {
			return nil, failure.WithReason(http.StatusBadRequest, failure.ReasonTooLateToCancel, // nolint:wrapcheck
				fmt.Sprintf("bookings can only be cancelled more than %g hours before they start", decision.MinimumHoursRequired),
				map[string]any{
					"hoursUntilBooking":      decision.HoursUntilBooking,
					"hours_until_booking":    decision.HoursUntilBooking,
					"minimum_hours_required": decision.MinimumHoursRequired,
				})
		}

		return map[string]any{
			model.FieldStatus:             model.StatusCancelled,
			model.FieldCancellationReason: reason,
			model.FieldUpdatedAt:          now,
		}, nil
	})
	if err != nil {
		return res, s.mapError(err, "cancel booking", model.Booking{ID: id})
	}

	log.Info().Str("booking_id", booking.ID).Str("reason", reason).Msg("booking cancelled")

	s.refresh(ctx, booking)

	return dto.CancelBookingResponse{
		ID:     booking.ID,
		Status: string(booking.Status),
		Reason: booking.CancellationReason,
	}, nil
}

// CancellationInfo evaluates the cancellation policy for the booking at the current time.
func (s *serviceImpl) CancellationInfo(ctx context.Context, id string) (res dto.CancellationInfoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancellationInfo")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	decision, err := s.policy.Evaluate(booking, s.now())
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to evaluate cancellation policy")

		return res, fmt.Errorf("failed to evaluate cancellation policy: %w", err)
	}

	res.FromModel(booking, decision)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// refresh stores the state just written for booking, replacing whatever a concurrent read cached,
// and drops the cached lists.
func (s *serviceImpl) refresh(ctx context.Context, booking model.Booking) {
	var cached dto.BookingResponse
	cached.FromModel(booking)

	key := shared.BuildCacheKey(cacheGetBooking, booking.ID)
	if err := s.cache.Save(context.WithoutCancel(ctx), key, cached, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to refresh booking in cache")
	}

	s.invalidate(ctx, constant.Empty)
}

// invalidate drops the cached lists and, when id is set, the cached booking.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking, cacheCountBooking)
	}()
}

func (s *serviceImpl) mapError(err error, action string, booking model.Booking) error {
	if _, ok := failure.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return failure.NotFound("booking not found") // nolint:wrapcheck
	case errors.Is(err, repository.ErrSlotConflict):
		return slotConflict(booking)
	}

	log.Error().Err(err).Str("booking_id", booking.ID).Msgf("failed to %s", action)

	return fmt.Errorf("failed to %s: %w", action, err)
}

func slotConflict(booking model.Booking) error {
	details := map[string]any{}
	if booking.BookingDate != constant.Empty {
		details["booking_date"] = booking.BookingDate.String()
		details["start_time"] = booking.StartTime.String()
		details["end_time"] = booking.EndTime.String()
	}

	return failure.WithReason(http.StatusConflict, failure.ReasonSlotConflict, // nolint:wrapcheck
		"the selected time slots are no longer available", details)
}

func invalidTransition(from, to model.Status) error {
	return failure.WithReason(http.StatusBadRequest, failure.ReasonInvalidTransition, // nolint:wrapcheck
		fmt.Sprintf("cannot change status from %s to %s", from, to),
		map[string]any{"from": string(from), "to": string(to)})
}
