package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"meetroom/config"
	"meetroom/infras/kafka"
	kafkaMocks "meetroom/infras/kafka/mocks"
	otelMocks "meetroom/infras/otel/mocks"
	webhookMocks "meetroom/infras/webhook/mocks"
	bookingModel "meetroom/internal/domains/booking/model"
	notificationMocks "meetroom/internal/domains/notification/mocks"
	"meetroom/internal/domains/notification/model"
	"meetroom/internal/domains/notification/service"
	slotModel "meetroom/internal/domains/slot/model"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:                "7b6c",
		ReserverName:      "Jane",
		PhoneNumber:       "010-1234-5678",
		Email:             "jane@example.com",
		BookingDate:       "2025-03-10",
		StartTime:         slotModel.At(9),
		EndTime:           slotModel.At(11),
		TotalHours:        2,
		TotalPrice:        22000,
		SelectedTimeSlots: []string{"09:00-10:00", "10:00-11:00"},
		Status:            bookingModel.StatusConfirmed,
	}
}

func testConfig(kafkaEnabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseURL = "https://rooms.example.com/"
	cfg.Kafka.Enable = kafkaEnabled
	cfg.Kafka.ConsumerGroup = "meetroom-notifier"
	cfg.Kafka.Topic.BookingCreated = "booking.created"
	cfg.Notification.Webhook.RatePerSecond = 100

	return cfg
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatch")
	}
}

func TestNewBookingCreatedEvent(t *testing.T) {
	event := model.NewBookingCreatedEvent(testBooking(), "https://rooms.example.com/")

	assert.Equal(t, model.EventBookingCreated, event.Event)
	assert.Equal(t, "https://rooms.example.com/booking/7b6c", event.DetailURL)
	assert.Equal(t, "09:00", event.StartTime)
	assert.Equal(t, "11:00", event.EndTime)
	assert.Equal(t, 22000, event.TotalPrice)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00"}, event.SelectedTimeSlots)
}

func TestDispatcher_DispatchInline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockWebhook := webhookMocks.NewMockClient(ctrl)
	dispatcher := service.New(testConfig(false), mockKafka, mockWebhook, otelMocks.NewOtel())

	tests := []struct {
		name string
		err  error
	}{
		{name: "delivered"},
		{name: "failure is swallowed", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan struct{})

			mockWebhook.EXPECT().
				Post(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, payload any) error {
					defer close(done)

					event, ok := payload.(model.BookingCreatedEvent)
					assert.True(t, ok)
					assert.Equal(t, "7b6c", event.ID)

					return tt.err
				})

			ctx, cancel := context.WithCancel(context.Background())
			dispatcher.Dispatch(ctx, testBooking())
			cancel()

			waitFor(t, done)
		})
	}
}

func TestDispatcher_DispatchKafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockWebhook := webhookMocks.NewMockClient(ctrl)
	dispatcher := service.New(testConfig(true), mockKafka, mockWebhook, otelMocks.NewOtel())

	done := make(chan struct{})

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "booking.created", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			defer close(done)

			require.Len(t, messages, 1)
			assert.Equal(t, "7b6c", messages[0].Key)

			return errors.New("broker down")
		})

	dispatcher.Dispatch(context.Background(), testBooking())

	waitFor(t, done)
}

func TestDispatcher_Deliver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWebhook := webhookMocks.NewMockClient(ctrl)
	dispatcher := service.New(testConfig(false), kafkaMocks.NewMockClient(ctrl), mockWebhook, otelMocks.NewOtel())

	mockWebhook.EXPECT().Post(gomock.Any(), gomock.Any()).Return(errors.New("status 500"))

	err := dispatcher.Deliver(context.Background(), model.NewBookingCreatedEvent(testBooking(), ""))
	assert.ErrorContains(t, err, "7b6c")
}

func TestWorker_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatcher := notificationMocks.NewMockDispatcher(ctrl)
	worker := service.NewWorker(testConfig(true), kafkaMocks.NewMockClient(ctrl), mockDispatcher)

	event := model.NewBookingCreatedEvent(testBooking(), "https://rooms.example.com")
	value, err := json.Marshal(event)
	require.NoError(t, err)

	t.Run("delivers decoded event", func(t *testing.T) {
		mockDispatcher.EXPECT().
			Deliver(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got model.BookingCreatedEvent) error {
				assert.Equal(t, event.ID, got.ID)
				assert.Equal(t, event.DetailURL, got.DetailURL)

				return nil
			})

		assert.NoError(t, worker.Handle(context.Background(), kafkaGo.Message{Value: value}))
	})

	t.Run("delivery failure is not retried", func(t *testing.T) {
		mockDispatcher.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(errors.New("timeout")).Times(1)

		assert.NoError(t, worker.Handle(context.Background(), kafkaGo.Message{Value: value}))
	})

	t.Run("malformed message", func(t *testing.T) {
		assert.Error(t, worker.Handle(context.Background(), kafkaGo.Message{Value: []byte("{")}))
	})

	t.Run("shutdown before delivery", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := worker.Handle(ctx, kafkaGo.Message{Value: value})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	worker := service.NewWorker(testConfig(true), mockKafka, notificationMocks.NewMockDispatcher(ctrl))

	mockKafka.EXPECT().Close().Return(nil).Times(2)

	t.Run("consumes configured topic", func(t *testing.T) {
		mockKafka.EXPECT().Consume(gomock.Any(), "meetroom-notifier", "booking.created", gomock.Any()).Return(nil)

		assert.NoError(t, worker.Run(context.Background()))
	})

	t.Run("consumer error", func(t *testing.T) {
		mockKafka.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		assert.ErrorContains(t, worker.Run(context.Background()), "broker down")
	})
}
