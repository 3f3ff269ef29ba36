package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/pkg/rabbitmq"
)

type EventsClient interface {
	PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error
	PublishSubmissionCorrected(ctx context.Context, event *models.SubmissionCorrectedEvent) error
	Close() error
}

type eventsClient struct {
	conn                *amqp.Connection
	channel             *amqp.Channel
	exchange            string
	createdRoutingKey   string
	correctedRoutingKey string
	logger              zerolog.Logger
}

func NewEventsClient(url, exchange, createdRoutingKey, correctedRoutingKey string, logger zerolog.Logger) (EventsClient, error) {
	conn, err := rabbitmq.NewConnection(url)
	if err != nil {
		return nil, err
	}

	channel, err := rabbitmq.NewChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info().
		Str("exchange", exchange).
		Msg("Connected to RabbitMQ")

	return &eventsClient{
		conn:                conn,
		channel:             channel,
		exchange:            exchange,
		createdRoutingKey:   createdRoutingKey,
		correctedRoutingKey: correctedRoutingKey,
		logger:              logger,
	}, nil
}

func (c *eventsClient) PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error {
	if err := c.publish(ctx, c.createdRoutingKey, event); err != nil {
		return err
	}

	c.logger.Info().
		Int64("submission_id", event.SubmissionID).
		Int64("task_id", event.TaskID).
		Msg("Submission created event published")

	return nil
}

func (c *eventsClient) PublishSubmissionCorrected(ctx context.Context, event *models.SubmissionCorrectedEvent) error {
	if err := c.publish(ctx, c.correctedRoutingKey, event); err != nil {
		return err
	}

	c.logger.Info().
		Int64("submission_id", event.SubmissionID).
		Int("earned_cash", event.EarnedCash).
		Msg("Submission corrected event published")

	return nil
}

func (c *eventsClient) publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (c *eventsClient) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}
