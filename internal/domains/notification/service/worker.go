package service

import (
	"context"
	"fmt"
	"meetroom/config"
	"meetroom/infras/kafka"
	"meetroom/internal/domains/notification/model"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"
)

const defaultDeliveriesPerSecond = 5

// Worker turns booking events read from Kafka into webhook calls, no faster than the configured rate.
type Worker struct {
	consumer   kafka.Client
	dispatcher Dispatcher
	limiter    *rate.Limiter
	group      string
	topic      string
}

func NewWorker(cfg *config.Config, consumer kafka.Client, dispatcher Dispatcher) *Worker {
	perSecond := cfg.Notification.Webhook.RatePerSecond
	if perSecond <= 0 {
		perSecond = defaultDeliveriesPerSecond
	}

	return &Worker{
		consumer:   consumer,
		dispatcher: dispatcher,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), 1),
		group:      cfg.Kafka.ConsumerGroup,
		topic:      cfg.Kafka.Topic.BookingCreated,
	}
}

// Run blocks consuming booking events until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	log.Info().Str("topic", w.topic).Str("group", w.group).Msg("notification worker started")

	defer func() {
		if err := w.consumer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close kafka client")
		}
	}()

	if err := w.consumer.Consume(ctx, w.group, w.topic, w.Handle); err != nil {
		return fmt.Errorf("consume %s: %w", w.topic, err)
	}

	log.Info().Msg("notification worker stopped")

	return nil
}

// Handle is a kafka.Handler. Delivery failures are logged and not returned, so the offset is
// committed and the event is never sent twice.
func (w *Worker) Handle(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.DecodeKafkaMessage[model.BookingCreatedEvent](msg)
	if err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}

	if err = w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	if err = w.dispatcher.Deliver(ctx, event); err != nil {
		log.Warn().Err(err).Str("booking_id", event.ID).Msg("booking notification not delivered")
	}

	return nil
}
