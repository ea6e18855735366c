package events

import (
	"context"
	"encoding/json"
	"time"

	"album-shelf/pkg/utils"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TopicUserActivities  = "user_activities"
	TopicDatabaseChanges = "database_changes"

	CategoryUserActivity   = "USER_ACTIVITY"
	CategoryDatabaseChange = "DATABASE_CHANGE"
)

// Emitter is the best-effort publish capability handed to services and handlers.
// Publishes never fail the calling operation.
type Emitter interface {
	UserActivity(action string, userID uuid.UUID, ipAddress string, extra map[string]any)
	DatabaseChange(operation, table string, extra map[string]any)
}

// Producer publishes activity and change records to Kafka. With no broker
// configured it stays connected to nothing and every publish is a no-op.
type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(config utils.KafkaConfig, log *zap.Logger) *Producer {
	p := &Producer{
		log: log.With(zap.String("component", "kafka_producer")),
	}

	if config.Broker == "" {
		p.log.Info("Kafka disabled (KAFKA_BROKER not set)")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(config.Broker),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           100 * time.Millisecond,
		Transport:              &kafka.Transport{ClientID: config.ClientID},
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				p.log.Warn("Kafka delivery failed",
					zap.Int("messages", len(messages)),
					zap.Error(err))
			}
		},
	}

	p.log.Info("Kafka producer configured", zap.String("broker", config.Broker))

	return p
}

// UserActivity publishes a USER_ACTIVITY record
func (p *Producer) UserActivity(action string, userID uuid.UUID, ipAddress string, extra map[string]any) {
	payload := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339),
		"category":  CategoryUserActivity,
		"action":    action,
		"userId":    userID.String(),
		"ipAddress": ipAddress,
	}
	for k, v := range extra {
		payload[k] = v
	}

	p.publish(TopicUserActivities, payload)
}

// DatabaseChange publishes a DATABASE_CHANGE record
func (p *Producer) DatabaseChange(operation, table string, extra map[string]any) {
	payload := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339),
		"category":  CategoryDatabaseChange,
		"operation": operation,
		"table":     table,
	}
	for k, v := range extra {
		payload[k] = v
	}

	p.publish(TopicDatabaseChanges, payload)
}

func (p *Producer) publish(topic string, payload map[string]any) {
	if p.writer == nil {
		p.log.Debug("Kafka producer not connected; skipping publish", zap.String("topic", topic))
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn("Failed to marshal event payload", zap.String("topic", topic), zap.Error(err))
		return
	}

	// Background context: cancelling the request that triggered the event must
	// not cancel an already-enqueued publish. The writer is async, so this
	// returns once the message is buffered; delivery errors land in Completion.
	if err := p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Value: value,
	}); err != nil {
		p.log.Warn("Failed to enqueue Kafka message", zap.String("topic", topic), zap.Error(err))
	}
}

// Close flushes buffered messages and shuts down the writer
func (p *Producer) Close() {
	if p.writer == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		p.log.Warn("Kafka producer close failed", zap.Error(err))
	}
}
