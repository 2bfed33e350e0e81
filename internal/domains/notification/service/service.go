package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"meetroom/config"
	"meetroom/infras/kafka"
	"meetroom/infras/otel"
	"meetroom/infras/webhook"
	bookingModel "meetroom/internal/domains/booking/model"
	"meetroom/internal/domains/notification/model"
	"meetroom/shared/constant"
	"meetroom/shared/logger"

	"github.com/rs/zerolog"
)

// Dispatcher tells the outside world about new bookings. Dispatch never fails the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, booking bookingModel.Booking)
	Deliver(ctx context.Context, event model.BookingCreatedEvent) error
}

type dispatcherImpl struct {
	cfg     *config.Config
	kafka   kafka.Client
	webhook webhook.Client
	otel    otel.Otel
	log     zerolog.Logger
}

func New(cfg *config.Config, kafka kafka.Client, webhook webhook.Client, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		cfg:     cfg,
		kafka:   kafka,
		webhook: webhook,
		otel:    otel,
		log:     logger.Component("notification"),
	}
}

// Dispatch hands the event to Kafka when it is enabled, otherwise posts the webhook directly.
// Either way the work runs detached from ctx so a finished request does not cut it short.
func (d *dispatcherImpl) Dispatch(ctx context.Context, booking bookingModel.Booking) {
	event := model.NewBookingCreatedEvent(booking, d.cfg.App.BaseURL)
	c := context.WithoutCancel(ctx)

	if d.cfg.Kafka.Enable {
		go d.publish(c, event)

		return
	}

	go func() {
		if err := d.Deliver(c, event); err != nil {
			d.log.Warn().Err(err).Str("booking_id", event.ID).Msg("booking notification not delivered")
		}
	}()
}

func (d *dispatcherImpl) publish(ctx context.Context, event model.BookingCreatedEvent) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	err := d.kafka.SendMessages(ctx, d.cfg.Kafka.Topic.BookingCreated, kafka.Message{Key: event.ID, Value: event})
	if err != nil {
		scope.TraceError(err)
		d.log.Warn().Err(err).Str("booking_id", event.ID).Msg("failed to publish booking event")
	}
}

// Deliver posts event to the webhook once.
func (d *dispatcherImpl) Deliver(ctx context.Context, event model.BookingCreatedEvent) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Deliver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = d.webhook.Post(ctx, event); err != nil {
		return fmt.Errorf("failed to deliver booking %s notification: %w", event.ID, err)
	}

	d.log.Info().Str("booking_id", event.ID).Msg("booking notification delivered")

	return nil
}
