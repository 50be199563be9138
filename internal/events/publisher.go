package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/sale"
)

type Sequencer interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

// transport delivers an encoded event to a broker.
type transport interface {
	send(ctx context.Context, key string, body []byte) error
	Close() error
}

// Publisher builds SaleCompleted envelopes and hands them to a broker transport.
type Publisher struct {
	seq      Sequencer
	out      transport
	producer string
	logger   logrus.FieldLogger
}

func newPublisher(seq Sequencer, out transport, logger logrus.FieldLogger) *Publisher {
	return &Publisher{
		seq:      seq,
		out:      out,
		producer: POSServiceProducer,
		logger:   logger,
	}
}

func (p *Publisher) PublishSaleCompleted(ctx context.Context, sessionID string, s *sale.Sale) error {
	seq, err := p.seq.NextSequence(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	env := BuildSaleCompletedEvent(s, EnvelopeOptions{
		PartitionKey:  sessionID,
		Sequence:      seq,
		Producer:      p.producer,
		CorrelationID: middleware.GetCorrelationID(ctx),
	})

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal SaleCompleted envelope: %w", err)
	}

	if err := p.out.send(ctx, env.PartitionKey, body); err != nil {
		return fmt.Errorf("publish SaleCompleted: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"eventId":  env.EventID,
		"saleId":   s.ID,
		"sequence": seq,
	}).Debug("SaleCompleted published")
	return nil
}

func (p *Publisher) Close() error {
	return p.out.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct {
	logger logrus.FieldLogger
}

func NewNoopPublisher(logger logrus.FieldLogger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishSaleCompleted(_ context.Context, sessionID string, s *sale.Sale) error {
	p.logger.WithFields(logrus.Fields{
		"saleId":    s.ID,
		"sessionId": sessionID,
	}).Debug("events disabled, SaleCompleted not published")
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
