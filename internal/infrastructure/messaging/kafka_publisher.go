package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/kafka"
	"github.com/SAHICA-Code/NovaBank/internal/observability"
)

// KafkaEventPublisher publishes domain events to the producer's topic. It
// implements port.EventPublisher.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher. metrics may be nil.
func NewKafkaEventPublisher(producer *kafka.Producer, metrics *observability.Metrics, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Publish serializes each event as JSON and writes it to the topic, keyed by
// aggregate ID so events of the same aggregate stay ordered within a partition.
func (p *KafkaEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, e := range evts {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", e.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(e.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     e.EventType(),
				"aggregate_type": e.AggregateType(),
			},
		})
	}

	if err := p.producer.Publish(ctx, messages...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}

	for _, e := range evts {
		p.count(e.EventType())
		p.logger.Debug("domain event published",
			"event_type", e.EventType(),
			"aggregate_id", e.AggregateID(),
		)
	}
	return nil
}

func (p *KafkaEventPublisher) count(eventType string) {
	if p.metrics == nil {
		return
	}
	switch eventType {
	case "ledger.loan.created":
		p.metrics.LoansCreated.Inc()
	case "ledger.installment.payment_applied":
		p.metrics.PaymentsApplied.Inc()
	case "ledger.installment.paid":
		p.metrics.InstallmentsPaid.Inc()
	}
}
