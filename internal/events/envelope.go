package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/sale"
)

const (
	SaleCompletedEventName    = "SaleCompleted"
	SaleCompletedEventVersion = 1
	SaleCompletedSchemaPath   = "contracts/events/pos/SaleCompleted.v1.enveloped.schema.json"
	SaleCompletedRoutingKey   = "pos.sale.completed.v1"
	POSServiceProducer        = "pos-service"
)

type EventEnvelope struct {
	EventName     string               `json:"eventName"`
	EventVersion  int                  `json:"eventVersion"`
	EventID       string               `json:"eventId"`
	CorrelationID string               `json:"correlationId,omitempty"`
	CausationID   string               `json:"causationId,omitempty"`
	Producer      string               `json:"producer"`
	PartitionKey  string               `json:"partitionKey"`
	Sequence      int64                `json:"sequence"`
	OccurredAt    time.Time            `json:"occurredAt"`
	Schema        string               `json:"schema"`
	Payload       SaleCompletedPayload `json:"payload"`
}

type SaleCompletedPayload struct {
	SaleID        int64               `json:"saleId"`
	CustomerName  string              `json:"customerName"`
	PaymentMethod string              `json:"paymentMethod"`
	Items         []SaleCompletedItem `json:"items"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Discount      decimal.Decimal     `json:"discount"`
	FinalAmount   decimal.Decimal     `json:"finalAmount"`
	Timestamp     time.Time           `json:"timestamp"`
}

type SaleCompletedItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type EnvelopeOptions struct {
	PartitionKey  string
	Sequence      int64
	Producer      string
	SchemaPath    string
	CorrelationID string
	CausationID   string
	EventID       string
	OccurredAt    time.Time
}

func BuildSaleCompletedEvent(s *sale.Sale, opts EnvelopeOptions) EventEnvelope {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	schemaPath := opts.SchemaPath
	if schemaPath == "" {
		schemaPath = SaleCompletedSchemaPath
	}

	producer := opts.Producer
	if producer == "" {
		producer = POSServiceProducer
	}

	payload := SaleCompletedPayload{
		SaleID:        s.ID,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Items:         make([]SaleCompletedItem, 0, len(s.Items)),
		TotalAmount:   s.TotalAmount,
		Discount:      s.Discount,
		FinalAmount:   s.FinalAmount,
		Timestamp:     s.SaleDate,
	}
	if payload.Timestamp.IsZero() {
		payload.Timestamp = occurredAt
	}

	for _, it := range s.Items {
		payload.Items = append(payload.Items, SaleCompletedItem{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
		})
	}

	return EventEnvelope{
		EventName:     SaleCompletedEventName,
		EventVersion:  SaleCompletedEventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		CausationID:   opts.CausationID,
		Producer:      producer,
		PartitionKey:  opts.PartitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Schema:        schemaPath,
		Payload:       payload,
	}
}
