package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSink mirrors dispatched events to a Kafka topic for downstream
// consumers. It is optional; the in-memory dispatcher works without it.
type KafkaSink struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaSink builds a sink writing to the given topic.
func NewKafkaSink(brokers []string, topic string, logger *zap.Logger) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

// Register subscribes the sink to every event type on the dispatcher.
func (s *KafkaSink) Register(dispatcher Dispatcher) {
	for _, eventType := range []EventType{
		EventTicketProcessed,
		EventTicketEscalated,
		EventAgentResponded,
		EventFeedbackRecorded,
		EventKnowledgeAdded,
	} {
		dispatcher.Subscribe(eventType, s.handle)
	}
}

func (s *KafkaSink) handle(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ID),
		Value: data,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		s.logger.Warn("kafka publish failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}

// Close closes the Kafka writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
