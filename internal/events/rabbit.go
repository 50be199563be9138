package events

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	EventsExchange = "ecommerce.events"

	publishTimeout = 3 * time.Second
)

func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

type rabbitTransport struct {
	ch *amqp.Channel
}

// NewRabbitPublisher opens a channel on conn and declares the events exchange.
func NewRabbitPublisher(conn *amqp.Connection, seq Sequencer, logger logrus.FieldLogger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(seq, &rabbitTransport{ch: ch}, logger), nil
}

func (t *rabbitTransport) send(ctx context.Context, _ string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return t.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		SaleCompletedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (t *rabbitTransport) Close() error {
	return t.ch.Close()
}
