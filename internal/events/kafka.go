package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaTransport struct {
	w messageWriter
}

// NewKafkaPublisher writes SaleCompleted envelopes to the pos.sale.completed.v1 topic,
// keyed by partition key so one session's events stay ordered.
func NewKafkaPublisher(brokers []string, seq Sequencer, logger logrus.FieldLogger) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  SaleCompletedRoutingKey,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           publishTimeout,
		BatchTimeout:           10 * time.Millisecond,
	}
	return newPublisher(seq, &kafkaTransport{w: w}, logger)
}

func (t *kafkaTransport) send(ctx context.Context, key string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return t.w.WriteMessages(pubCtx, kafka.Message{
		Key:   []byte(key),
		Value: body,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-name", Value: []byte(SaleCompletedEventName)},
		},
	})
}

func (t *kafkaTransport) Close() error {
	return t.w.Close()
}
