package kafka

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

type mockKafkaWriter struct {
	writeFunc func(ctx context.Context, msgs ...kafka.Message) error
	closed    int
}

func (m *mockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.writeFunc != nil {
		return m.writeFunc(ctx, msgs...)
	}
	return nil
}

func (m *mockKafkaWriter) Close() error {
	m.closed++
	return nil
}

func (m *mockKafkaWriter) Stats() kafka.WriterStats { return kafka.WriterStats{} }

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "t"}))
	assert.True(t, errors.IsValidation(ValidateConfig(config.KafkaConfig{Topic: "t"})))
	assert.True(t, errors.IsValidation(ValidateConfig(config.KafkaConfig{Brokers: []string{"b"}})))
}

func TestNewProducer_FromConfig(t *testing.T) {
	p, err := NewProducer(config.KafkaConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "runs",
		RequiredAcks: -1,
		Compression:  "snappy",
	}, nil)
	require.NoError(t, err)

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "runs", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.Equal(t, kafka.Snappy, w.Compression)
	assert.Empty(t, p.topic)
}

func TestPublishRunCompleted(t *testing.T) {
	var captured []kafka.Message
	mock := &mockKafkaWriter{writeFunc: func(_ context.Context, msgs ...kafka.Message) error {
		captured = append(captured, msgs...)
		return nil
	}}
	p := NewProducerWithWriter(mock, "runs", nil)

	ev := ctypes.RunCompletedEvent{RunID: common.ID("run-1"), Total: 6, Passed: 4, Invalid: 2}
	require.NoError(t, p.PublishRunCompleted(context.Background(), ev))

	require.Len(t, captured, 1)
	msg := captured[0]
	assert.Equal(t, "runs", msg.Topic)
	assert.Equal(t, "run-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, EventTypeRunCompleted, string(msg.Headers[0].Value))

	env, err := EnvelopeFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, EventTypeRunCompleted, env.EventType)
	assert.NotEmpty(t, env.EventID)

	var got ctypes.RunCompletedEvent
	require.NoError(t, env.DecodePayload(&got))
	assert.Equal(t, ev.RunID, got.RunID)
	assert.Equal(t, 4, got.Passed)

	assert.Equal(t, int64(1), p.Stats().Sent)
	assert.Equal(t, int64(len(msg.Value)), p.Stats().BytesSent)
}

func TestPublish_Failure(t *testing.T) {
	mock := &mockKafkaWriter{writeFunc: func(context.Context, ...kafka.Message) error {
		return stderrors.New("broker down")
	}}
	p := NewProducerWithWriter(mock, "runs", nil)

	err := p.Publish(context.Background(), "x", "k", map[string]int{"a": 1})
	assert.True(t, errors.IsCode(err, errors.ErrCodeExternalService))
	assert.Equal(t, int64(1), p.Stats().Failed)
}

func TestPublish_Unencodable(t *testing.T) {
	p := NewProducerWithWriter(&mockKafkaWriter{}, "runs", nil)
	err := p.Publish(context.Background(), "x", "k", make(chan int))
	assert.True(t, errors.IsCode(err, errors.ErrCodeSerialization))
}

func TestClose_Idempotent(t *testing.T) {
	mock := &mockKafkaWriter{}
	p := NewProducerWithWriter(mock, "runs", nil)

	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
	assert.Equal(t, 1, mock.closed)
	assert.Equal(t, ErrProducerClosed, p.Publish(context.Background(), "x", "k", 1))
}

//Personal.AI order the ending
