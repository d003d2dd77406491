package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

var ErrProducerClosed = errors.New(errors.CodeUnavailable, "producer closed")

// maxMessageBytes bounds a single event.
const maxMessageBytes = 1 << 20

// Writer abstracts kafka.Writer for testing.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
	Stats() kafka.WriterStats
}

// ProducerStats is a snapshot of producer counters.
type ProducerStats struct {
	Sent      int64
	Failed    int64
	BytesSent int64
}

// Producer publishes run events to one topic.
type Producer struct {
	writer Writer
	topic  string
	logger logging.Logger
	closed atomic.Bool

	sent      atomic.Int64
	failed    atomic.Int64
	bytesSent atomic.Int64
}

// NewProducer builds a kafka.Writer from cfg.  No connection is made until
// the first publish.
func NewProducer(cfg config.KafkaConfig, logger logging.Logger) (*Producer, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  3,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: requiredAcks(cfg.RequiredAcks),
		Compression:  compression(cfg.Compression),
		Transport:    &kafka.Transport{ClientID: cfg.ClientID, DialTimeout: 10 * time.Second},
	}
	return NewProducerWithWriter(w, "", logger), nil
}

// NewProducerWithWriter wraps w.  topic is set on each message and must be
// empty when the writer itself carries a topic.
func NewProducerWithWriter(w Writer, topic string, logger logging.Logger) *Producer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Producer{writer: w, topic: topic, logger: logger}
}

func requiredAcks(n int) kafka.RequiredAcks {
	switch {
	case n < 0:
		return kafka.RequireAll
	case n == 0:
		return kafka.RequireNone
	default:
		return kafka.RequireOne
	}
}

func compression(name string) kafka.Compression {
	switch name {
	case "gzip":
		return kafka.Gzip
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return kafka.Compression(0)
	}
}

// Publish wraps payload in an envelope of eventType and writes it.
func (p *Producer) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	env, err := NewEventEnvelope(eventType, payload)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(p.topic, key)
	if err != nil {
		return err
	}
	if len(msg.Value) > maxMessageBytes {
		return errors.Newf(errors.CodeValidation, "event of %d bytes exceeds %d", len(msg.Value), maxMessageBytes)
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.failed.Add(1)
		return errors.Wrap(err, errors.ErrCodeExternalService, "publish failed")
	}
	p.sent.Add(1)
	p.bytesSent.Add(int64(len(msg.Value)))

	p.logger.Debug("Event published",
		logging.String("event_type", eventType),
		logging.String("event_id", env.EventID),
		logging.Duration("latency", time.Since(start)))
	return nil
}

// PublishRunCompleted publishes ev keyed by its run id.
func (p *Producer) PublishRunCompleted(ctx context.Context, ev ctypes.RunCompletedEvent) error {
	return p.Publish(ctx, EventTypeRunCompleted, string(ev.RunID), ev)
}

func (p *Producer) Stats() ProducerStats {
	return ProducerStats{Sent: p.sent.Load(), Failed: p.failed.Load(), BytesSent: p.bytesSent.Load()}
}

func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("Kafka producer closed", logging.Int64("sent", p.sent.Load()))
	return err
}

// ValidateConfig checks the fields a producer or consumer needs.
func ValidateConfig(cfg config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.CodeValidation, "kafka brokers required")
	}
	if cfg.Topic == "" {
		return errors.New(errors.CodeValidation, "kafka topic required")
	}
	return nil
}

//Personal.AI order the ending
