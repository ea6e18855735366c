// Consumer reads the activity and change topics and durably logs every
// record. It performs no business logic.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"album-shelf/pkg/events"
	"album-shelf/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	broker := config.Kafka.Broker
	if broker == "" {
		broker = "localhost:9092"
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		GroupID: config.Kafka.ConsumerGroup,
		GroupTopics: []string{
			events.TopicUserActivities,
			events.TopicDatabaseChanges,
		},
	})
	defer reader.Close()

	logger.Info("Kafka consumer started",
		zap.String("broker", broker),
		zap.String("group", config.Kafka.ConsumerGroup))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("Shutting down consumer")
				return
			}
			logger.Error("Failed to read message", zap.Error(err))
			continue
		}

		process(logger, msg)
	}
}

func process(logger *zap.Logger, msg kafka.Message) {
	var payload map[string]any
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		logger.Warn("Skipping malformed message",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err))
		return
	}

	switch msg.Topic {
	case events.TopicUserActivities:
		logger.Info("User activity processed",
			zap.Any("payload", payload),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset))
	case events.TopicDatabaseChanges:
		logger.Info("Database change processed",
			zap.Any("payload", payload),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset))
	default:
		logger.Warn("Received message from unknown topic",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset))
	}
}
