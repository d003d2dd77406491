package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// Reader abstracts kafka.Reader for testing.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventHandler receives each decoded envelope.  A handler error is logged
// and the message is still committed.
type EventHandler func(ctx context.Context, env *EventEnvelope) error

// Consumer tails the run event topic.
type Consumer struct {
	reader  Reader
	logger  logging.Logger
	backoff time.Duration
}

// NewConsumer joins cfg.GroupID on cfg.Topic.  fromStart selects the first
// offset for a group without committed offsets.
func NewConsumer(cfg config.KafkaConfig, fromStart bool, logger logging.Logger) (*Consumer, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.GroupID == "" {
		return nil, errors.New(errors.CodeValidation, "kafka group_id required")
	}
	start := kafka.LastOffset
	if fromStart {
		start = kafka.FirstOffset
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		MaxWait:     time.Second,
		StartOffset: start,
	})
	return NewConsumerWithReader(r, logger), nil
}

func NewConsumerWithReader(r Reader, logger logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Consumer{reader: r, logger: logger, backoff: time.Second}
}

// Run consumes until ctx is done and returns nil on cancellation.
func (c *Consumer) Run(ctx context.Context, handler EventHandler) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("FetchMessage error", logging.Err(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		env, err := EnvelopeFromMessage(m)
		if err != nil {
			c.logger.Warn("Skipping undecodable message",
				logging.String("topic", m.Topic),
				logging.Int64("offset", m.Offset),
				logging.Err(err))
		} else if err := handler(ctx, env); err != nil {
			c.logger.Error("Event handler failed",
				logging.String("event_id", env.EventID),
				logging.Err(err))
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.Error("CommitMessages failed", logging.Err(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

//Personal.AI order the ending
