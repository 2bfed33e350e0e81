package service_test

import (
	"context"
	"errors"
	"math/rand"
	"meetroom/config"
	otelMocks "meetroom/infras/otel/mocks"
	"meetroom/internal/domains/availability/service"
	bookingMocks "meetroom/internal/domains/booking/mocks"
	bookingModel "meetroom/internal/domains/booking/model"
	slotModel "meetroom/internal/domains/slot/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const day = slotModel.Date("2025-03-10")

var loc = time.FixedZone("KST", 9*60*60)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.OpeningHour = 9
	cfg.Booking.ClosingHour = 22
	cfg.Booking.UnitPrice = 10000
	cfg.Booking.TaxRatePercent = 10

	return cfg
}

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func confirmed(start, end int) bookingModel.Booking {
	return bookingModel.Booking{
		ID:          "b",
		BookingDate: day,
		StartTime:   slotModel.At(start),
		EndTime:     slotModel.At(end),
		Status:      bookingModel.StatusConfirmed,
	}
}

func hours(start, end int) slotModel.Range {
	return slotModel.Range{Start: slotModel.At(start), End: slotModel.At(end)}
}

func TestAvailability_AreSlotsAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.NewWithClock(mockRepo, testConfig(), otelMocks.NewOtel(), clockAt(time.Date(2025, 3, 1, 0, 0, 0, 0, loc)))

	existing := []bookingModel.Booking{confirmed(9, 11)}

	tests := []struct {
		name  string
		slots []slotModel.Range
		want  bool
	}{
		{name: "touching after", slots: []slotModel.Range{hours(11, 12)}, want: true},
		{name: "touching before", slots: []slotModel.Range{hours(8, 9)}, want: true},
		{name: "inside", slots: []slotModel.Range{hours(10, 11)}, want: false},
		{name: "half hour overlap", slots: []slotModel.Range{{Start: slotModel.MustParseClock("09:30"), End: slotModel.MustParseClock("10:30")}}, want: false},
		{name: "second slot conflicts", slots: []slotModel.Range{hours(12, 13), hours(10, 11)}, want: false},
		{name: "nothing requested", slots: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.EXPECT().GetConfirmedByDate(gomock.Any(), day).Return(existing, nil)

			got, err := svc.AreSlotsAvailable(context.Background(), day, tt.slots)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailability_IgnoresNonBlocking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.NewWithClock(mockRepo, testConfig(), otelMocks.NewOtel(), clockAt(time.Date(2025, 3, 1, 0, 0, 0, 0, loc)))

	pending := confirmed(9, 11)
	pending.Status = bookingModel.StatusPending

	mockRepo.EXPECT().GetConfirmedByDate(gomock.Any(), day).Return([]bookingModel.Booking{pending}, nil)

	ok, err := svc.IsSlotAvailable(context.Background(), day, hours(9, 10))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAvailability_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.NewWithClock(mockRepo, testConfig(), otelMocks.NewOtel(), clockAt(time.Now()))

	mockRepo.EXPECT().GetConfirmedByDate(gomock.Any(), day).Return(nil, errors.New("connection reset"))

	ok, err := svc.IsSlotAvailable(context.Background(), day, hours(9, 10))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestAvailability_Conflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.NewWithClock(mockRepo, testConfig(), otelMocks.NewOtel(), clockAt(time.Now()))

	mockRepo.EXPECT().
		GetConfirmedByDate(gomock.Any(), day).
		Return([]bookingModel.Booking{confirmed(10, 11), confirmed(14, 16)}, nil)

	got, err := svc.Conflicts(context.Background(), day, []slotModel.Range{hours(9, 10), hours(10, 11), hours(15, 16)})

	require.NoError(t, err)
	assert.Equal(t, []slotModel.Range{hours(10, 11), hours(15, 16)}, got)
}

func TestAvailability_DaySlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	// 12:30 on the day itself: 09:00-12:00 slots have started, 12:00 is in progress.
	now := time.Date(2025, 3, 10, 12, 30, 0, 0, loc)
	svc := service.NewWithClock(mockRepo, testConfig(), otelMocks.NewOtel(), clockAt(now))

	mockRepo.EXPECT().GetConfirmedByDate(gomock.Any(), day).Return([]bookingModel.Booking{confirmed(14, 16)}, nil)

	res, err := svc.DaySlots(context.Background(), day)
	require.NoError(t, err)

	require.Len(t, res.Slots, 13)
	assert.Equal(t, "09:00", res.OpeningTime)
	assert.Equal(t, "22:00", res.ClosingTime)

	available := map[string]bool{}
	for _, slot := range res.Slots {
		available[slot.Slot] = slot.Available
		assert.Equal(t, 11000, slot.Price)
	}

	assert.False(t, available["09:00-10:00"])
	assert.False(t, available["12:00-13:00"])
	assert.True(t, available["13:00-14:00"])
	assert.False(t, available["14:00-15:00"])
	assert.False(t, available["15:00-16:00"])
	assert.True(t, available["16:00-17:00"])
	assert.True(t, available["21:00-22:00"])
}

// Random requests are admitted only when the checker says they are free; the admitted set must
// stay pairwise disjoint and every refusal must be a real overlap.
func TestAvailability_NoDoubleBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	svc := service.NewWithClock(mockRepo, testConfig(), otelMocks.NewOtel(), clockAt(time.Now()))

	var stored []bookingModel.Booking

	mockRepo.EXPECT().
		GetConfirmedByDate(gomock.Any(), day).
		DoAndReturn(func(context.Context, slotModel.Date) ([]bookingModel.Booking, error) {
			return append([]bookingModel.Booking{}, stored...), nil
		}).
		AnyTimes()

	rnd := rand.New(rand.NewSource(42))

	for range 500 {
		start := 9 + rnd.Intn(13)
		end := start + 1 + rnd.Intn(22-start)
		candidate := confirmed(start, end)

		ok, err := svc.AreSlotsAvailable(context.Background(), day, []slotModel.Range{candidate.Range()})
		require.NoError(t, err)

		overlaps := false
		for _, b := range stored {
			overlaps = overlaps || b.Conflicts(candidate)
		}

		require.Equal(t, !overlaps, ok, "candidate %s", candidate.Range())

		if ok {
			stored = append(stored, candidate)
		}
	}

	for i := range stored {
		for j := i + 1; j < len(stored); j++ {
			assert.False(t, stored[i].Conflicts(stored[j]), "%s overlaps %s", stored[i].Range(), stored[j].Range())
		}
	}
}
