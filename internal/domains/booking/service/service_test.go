package service_test

import (
	"context"
	"errors"
	"fmt"
	"meetroom/config"
	otelMocks "meetroom/infras/otel/mocks"
	availabilityMocks "meetroom/internal/domains/availability/mocks"
	availabilityService "meetroom/internal/domains/availability/service"
	bookingMocks "meetroom/internal/domains/booking/mocks"
	"meetroom/internal/domains/booking/model"
	"meetroom/internal/domains/booking/model/dto"
	"meetroom/internal/domains/booking/repository"
	"meetroom/internal/domains/booking/service"
	notificationMocks "meetroom/internal/domains/notification/mocks"
	slotModel "meetroom/internal/domains/slot/model"
	"meetroom/shared/cache"
	cacheMocks "meetroom/shared/cache/mocks"
	gDto "meetroom/shared/dto"
	"meetroom/shared/failure"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var loc = time.FixedZone("KST", 9*60*60)

type fixture struct {
	repo         *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	notification *notificationMocks.MockDispatcher
	cache        *cacheMocks.MockRedisCache
	cfg          *config.Config
	now          time.Time
	svc          service.Booking

	mu     sync.Mutex
	cached map[string]cachedValue
}

type cachedValue struct {
	value    any
	ifAbsent bool
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.OpeningHour = 9
	cfg.Booking.ClosingHour = 22
	cfg.Booking.UnitPrice = 10000
	cfg.Booking.TaxRatePercent = 10
	cfg.Booking.CancellationLeadHours = 2

	return cfg
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		notification: notificationMocks.NewMockDispatcher(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		cfg:          testConfig(),
		now:          time.Date(2025, 3, 9, 10, 0, 0, 0, loc),
		cached:       map[string]cachedValue{},
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
			f.store(key, value, false)

			return nil
		}).
		AnyTimes()
	f.cache.EXPECT().
		SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, _ int) (bool, error) {
			f.store(key, value, true)

			return true, nil
		}).
		AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.NewWithClock(f.repo, f.availability, f.notification, f.cfg, f.cache, otelMocks.NewOtel(), f.clock)

	return f
}

func (f *fixture) clock() time.Time {
	return f.now
}

func (f *fixture) store(key string, value any, ifAbsent bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cached[key] = cachedValue{value: value, ifAbsent: ifAbsent}
}

func (f *fixture) load(key string) (cachedValue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.cached[key]

	return v, ok
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		ReserverName:      "Jane",
		PhoneNumber:       "010-1234-5678",
		Email:             "jane@example.com",
		BookingDate:       "2025-03-10",
		StartTime:         "09:00",
		EndTime:           "11:00",
		TotalHours:        2,
		TotalPrice:        22000,
		SelectedTimeSlots: []string{"09:00-10:00", "10:00-11:00"},
	}
}

func stored(status model.Status) model.Booking {
	return model.Booking{
		ID:                "booking-1",
		ReserverName:      "Jane",
		PhoneNumber:       "010-1234-5678",
		Email:             "jane@example.com",
		BookingDate:       "2025-03-10",
		StartTime:         slotModel.At(12),
		EndTime:           slotModel.At(14),
		TotalHours:        2,
		TotalPrice:        22000,
		SelectedTimeSlots: []string{"12:00-13:00", "13:00-14:00"},
		Status:            status,
	}
}

// applyOn runs the mutation against current the way the repository would and records the fields.
func applyOn(current model.Booking, written *map[string]any) func(context.Context, string, repository.Mutation) (model.Booking, error) {
	return func(_ context.Context, _ string, mutate repository.Mutation) (model.Booking, error) {
		fields, err := mutate(current)
		if err != nil {
			return model.Booking{}, err
		}

		if written != nil {
			*written = fields
		}

		updated := current
		if status, ok := fields[model.FieldStatus]; ok {
			updated.Status = model.Status(fmt.Sprint(status))
		}

		if reason, ok := fields[model.FieldCancellationReason].(string); ok {
			updated.CancellationReason = reason
		}

		return updated, nil
	}
}

func assertFailure(t *testing.T, err error, code int, reason string) *failure.Failure {
	t.Helper()

	fail, ok := failure.As(err)
	require.True(t, ok, "expected *failure.Failure, got %v", err)
	assert.Equal(t, code, fail.Code)
	assert.Equal(t, reason, fail.Reason)

	return fail
}

func TestBookingService_Create(t *testing.T) {
	t.Run("stores a confirmed booking and notifies", func(t *testing.T) {
		f := newFixture(t)

		f.availability.EXPECT().
			AreSlotsAvailable(gomock.Any(), slotModel.Date("2025-03-10"), []slotModel.Range{
				{Start: slotModel.At(9), End: slotModel.At(10)},
				{Start: slotModel.At(10), End: slotModel.At(11)},
			}).
			Return(true, nil)

		var saved model.Booking

		f.repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
			saved = b

			return nil
		})
		f.notification.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(1)

		res, err := f.svc.Create(context.Background(), createRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, saved.ID, res.ID)
		assert.Equal(t, 2, res.TotalHours)
		assert.Equal(t, 22000, res.TotalPrice)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
		assert.Equal(t, f.now, saved.CreatedAt)
	})

	t.Run("slot taken at submission", func(t *testing.T) {
		f := newFixture(t)

		f.availability.EXPECT().AreSlotsAvailable(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(context.Background(), createRequest())
		assertFailure(t, err, http.StatusConflict, failure.ReasonSlotConflict)
	})

	t.Run("slot taken between check and insert", func(t *testing.T) {
		f := newFixture(t)

		f.availability.EXPECT().AreSlotsAvailable(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(fmt.Errorf("insert: %w", repository.ErrSlotConflict))

		_, err := f.svc.Create(context.Background(), createRequest())
		assertFailure(t, err, http.StatusConflict, failure.ReasonSlotConflict)
	})

	t.Run("storage failure is not a failure value", func(t *testing.T) {
		f := newFixture(t)

		f.availability.EXPECT().AreSlotsAvailable(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		_, err := f.svc.Create(context.Background(), createRequest())
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("start in the past", func(t *testing.T) {
		f := newFixture(t)
		f.now = time.Date(2025, 3, 10, 9, 0, 0, 0, loc)

		_, err := f.svc.Create(context.Background(), createRequest())
		fail := assertFailure(t, err, http.StatusBadRequest, failure.ReasonValidation)
		assert.Equal(t, model.FieldStartTime, fail.Field)
	})

	t.Run("price mismatch", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.TotalPrice = 20000

		_, err := f.svc.Create(context.Background(), req)
		fail := assertFailure(t, err, http.StatusBadRequest, failure.ReasonValidation)
		assert.Equal(t, model.FieldTotalPrice, fail.Field)
	})
}

func TestBookingService_CreateManual(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2025, 4, 1, 10, 0, 0, 0, loc)

	f.availability.EXPECT().AreSlotsAvailable(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.CreateManual(context.Background(), dto.ManualCreateBookingRequest{
		ReserverName: "Walk-in",
		PhoneNumber:  "02-000-0000",
		BookingDate:  "2025-03-10",
		StartTime:    "09:00",
		EndTime:      "12:00",
		TotalHours:   3,
		TotalPrice:   33000,
		Status:       string(model.StatusPending),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00", "11:00-12:00"}, res.SelectedTimeSlots)
	assert.Equal(t, string(model.StatusPending), res.Status)
}

func TestBookingService_Update(t *testing.T) {
	t.Run("nothing recognised", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{}, "booking-1")
		assertFailure(t, err, http.StatusBadRequest, failure.ReasonNoDataToUpdate)
	})

	t.Run("pending to confirmed touches status and updated_at only", func(t *testing.T) {
		f := newFixture(t)
		confirmed := string(model.StatusConfirmed)

		var written map[string]any

		f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any()).DoAndReturn(applyOn(stored(model.StatusPending), &written))

		res, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{Status: &confirmed}, "booking-1")

		require.NoError(t, err)
		assert.Equal(t, confirmed, res.Status)
		assert.Len(t, written, 2)
		assert.Equal(t, confirmed, written[model.FieldStatus])
		assert.Contains(t, written, model.FieldUpdatedAt)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newFixture(t)
		pending := string(model.StatusPending)
		name := "Janet"

		var written map[string]any

		f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any()).DoAndReturn(applyOn(stored(model.StatusPending), &written))

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{Status: &pending, ReserverName: &name}, "booking-1")

		require.NoError(t, err)
		assert.NotContains(t, written, model.FieldStatus)
		assert.Equal(t, "Janet", written[model.FieldReserverName])
	})

	t.Run("cancelled cannot come back", func(t *testing.T) {
		f := newFixture(t)
		pending := string(model.StatusPending)

		f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any()).DoAndReturn(applyOn(stored(model.StatusCancelled), nil))

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{Status: &pending}, "booking-1")
		assertFailure(t, err, http.StatusBadRequest, failure.ReasonInvalidTransition)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		name := "Janet"

		f.repo.EXPECT().Apply(gomock.Any(), "nope", gomock.Any()).Return(model.Booking{}, repository.ErrNotFound)

		_, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{ReserverName: &name}, "nope")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		current  model.Status
		applyErr error
		code     int
		reason   string
	}{
		{name: "pending", current: model.StatusPending},
		{name: "already confirmed", current: model.StatusConfirmed},
		{name: "cancelled", current: model.StatusCancelled, code: http.StatusBadRequest, reason: failure.ReasonInvalidTransition},
		{name: "slot taken", current: model.StatusPending, applyErr: repository.ErrSlotConflict, code: http.StatusConflict, reason: failure.ReasonSlotConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			call := f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any())
			if tt.applyErr != nil {
				call.Return(model.Booking{}, tt.applyErr)
			} else {
				call.DoAndReturn(applyOn(stored(tt.current), nil))
			}

			res, err := f.svc.Confirm(context.Background(), "booking-1")
			if tt.code != 0 {
				assertFailure(t, err, tt.code, tt.reason)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(model.StatusConfirmed), res.Status)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	// stored bookings start 2025-03-10 12:00 KST
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)

	t.Run("outside the window", func(t *testing.T) {
		f := newFixture(t)
		f.now = start.Add(-3 * time.Hour)

		var written map[string]any

		f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any()).DoAndReturn(applyOn(stored(model.StatusConfirmed), &written))

		res, err := f.svc.Cancel(context.Background(), dto.CancelBookingRequest{}, "booking-1")

		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
		assert.Equal(t, model.DefaultCancellationReason, res.Reason)
		assert.Equal(t, f.now, written[model.FieldUpdatedAt])
	})

	t.Run("inside the window", func(t *testing.T) {
		f := newFixture(t)
		f.now = start.Add(-1 * time.Hour)

		f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any()).DoAndReturn(applyOn(stored(model.StatusConfirmed), nil))

		_, err := f.svc.Cancel(context.Background(), dto.CancelBookingRequest{Reason: "sick"}, "booking-1")

		fail := assertFailure(t, err, http.StatusBadRequest, failure.ReasonTooLateToCancel)
		assert.InDelta(t, 1.0, fail.Details["hoursUntilBooking"], 1e-9)
		assert.InDelta(t, 1.0, fail.Details["hours_until_booking"], 1e-9)
		assert.InDelta(t, 2.0, fail.Details["minimum_hours_required"], 1e-9)
	})

	t.Run("already cancelled, every time", func(t *testing.T) {
		f := newFixture(t)
		f.now = start.Add(-48 * time.Hour)

		f.repo.EXPECT().
			Apply(gomock.Any(), "booking-1", gomock.Any()).
			DoAndReturn(applyOn(stored(model.StatusCancelled), nil)).
			Times(3)

		for range 3 {
			_, err := f.svc.Cancel(context.Background(), dto.CancelBookingRequest{}, "booking-1")
			assertFailure(t, err, http.StatusBadRequest, failure.ReasonAlreadyCancelled)
		}
	})
}

func TestBookingService_CancellationInfo(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2025, 3, 10, 10, 45, 0, 0, loc)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)

	res, err := f.svc.CancellationInfo(context.Background(), "booking-1")

	require.NoError(t, err)
	assert.False(t, res.CancellationInfo.CanCancel)
	assert.InDelta(t, 1.3, res.CancellationInfo.HoursUntilBooking, 1e-9)
	assert.InDelta(t, 2.0, res.CancellationInfo.MinimumHoursRequired, 1e-9)
	assert.Equal(t, "12:00", res.Booking.StartTime)
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)

		res, err := f.svc.Get(context.Background(), "booking-1")
		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Equal(t, "2025-03-10", res.BookingDate)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "nope")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Cache(t *testing.T) {
	const key = "booking:get:booking-1"

	t.Run("reads only fill an empty entry", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)

		_, err := f.svc.Get(context.Background(), "booking-1")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			v, ok := f.load(key)

			return ok && v.ifAbsent
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("cancel stores the cancelled booking", func(t *testing.T) {
		f := newFixture(t)
		f.now = time.Date(2025, 3, 9, 10, 0, 0, 0, loc)

		f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any()).DoAndReturn(applyOn(stored(model.StatusConfirmed), nil))

		_, err := f.svc.Cancel(context.Background(), dto.CancelBookingRequest{}, "booking-1")
		require.NoError(t, err)

		v, ok := f.load(key)
		require.True(t, ok, "cache entry written before Cancel returns")
		assert.False(t, v.ifAbsent)

		cached, ok := v.value.(dto.BookingResponse)
		require.True(t, ok)
		assert.Equal(t, string(model.StatusCancelled), cached.Status)
	})

	t.Run("confirm stores the confirmed booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Apply(gomock.Any(), "booking-1", gomock.Any()).DoAndReturn(applyOn(stored(model.StatusPending), nil))

		_, err := f.svc.Confirm(context.Background(), "booking-1")
		require.NoError(t, err)

		v, ok := f.load(key)
		require.True(t, ok)
		assert.Equal(t, string(model.StatusConfirmed), v.value.(dto.BookingResponse).Status)
	})
}

func TestBookingService_GetMine(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetMine(context.Background(), "", gDto.QueryParams{Page: 1, Limit: 10})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{stored(model.StatusConfirmed)}, nil)

	res, err := f.svc.GetMine(context.Background(), "jane@example.com", gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Bookings, 1)
}

func TestBookingService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	assert.NoError(t, f.svc.Delete(context.Background(), "booking-1"))

	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(context.Background(), "booking-1")))
}

// Booking two hours, trying to take half of them with another request, then cancelling with three
// hours to spare under a two hour window.
func TestBookingService_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2025, 3, 10, 6, 0, 0, 0, loc)

	availability := availabilityService.NewWithClock(f.repo, f.cfg, otelMocks.NewOtel(), f.clock)
	svc := service.NewWithClock(f.repo, availability, f.notification, f.cfg, f.cache, otelMocks.NewOtel(), f.clock)

	var rows []model.Booking

	f.repo.EXPECT().
		GetConfirmedByDate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, date slotModel.Date) ([]model.Booking, error) {
			var out []model.Booking
			for _, b := range rows {
				if b.BookingDate == date && b.Status.Blocking() {
					out = append(out, b)
				}
			}

			return out, nil
		}).
		AnyTimes()
	f.repo.EXPECT().
		Reserve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b model.Booking) error {
			rows = append(rows, b)

			return nil
		}).
		AnyTimes()
	f.notification.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(1)

	first, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalHours)
	assert.Equal(t, 22000, first.TotalPrice)
	assert.Equal(t, string(model.StatusConfirmed), first.Status)

	free, err := availability.AreSlotsAvailable(context.Background(), "2025-03-10", []slotModel.Range{
		{Start: slotModel.MustParseClock("09:30"), End: slotModel.MustParseClock("10:30")},
	})
	require.NoError(t, err)
	assert.False(t, free)

	second := createRequest()
	second.StartTime, second.EndTime = "10:00", "11:00"
	second.TotalHours, second.TotalPrice = 1, 11000
	second.SelectedTimeSlots = []string{"10:00-11:00"}

	_, err = svc.Create(context.Background(), second)
	assertFailure(t, err, http.StatusConflict, failure.ReasonSlotConflict)
	assert.Len(t, rows, 1)

	f.repo.EXPECT().Apply(gomock.Any(), first.ID, gomock.Any()).DoAndReturn(applyOn(rows[0], nil))

	cancelled, err := svc.Cancel(context.Background(), dto.CancelBookingRequest{}, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), cancelled.Status)
}
