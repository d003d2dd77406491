package kafka

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

type mockReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	fetchErr  error
}

func (m *mockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	m.mu.Lock()
	if m.fetchErr != nil {
		err := m.fetchErr
		m.fetchErr = nil
		m.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(m.queue) > 0 {
		msg := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		return msg, nil
	}
	m.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (m *mockReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range msgs {
		m.committed = append(m.committed, msg.Offset)
	}
	return nil
}

func (m *mockReader) Close() error { return nil }

func envelopeMessage(t *testing.T, offset int64, payload interface{}) kafka.Message {
	t.Helper()
	env, err := NewEventEnvelope(EventTypeRunCompleted, payload)
	require.NoError(t, err)
	msg, err := env.ToMessage("runs", "k")
	require.NoError(t, err)
	msg.Offset = offset
	return msg
}

func TestNewConsumer_RequiresGroup(t *testing.T) {
	_, err := NewConsumer(config.KafkaConfig{Brokers: []string{"b"}, Topic: "runs"}, false, nil)
	assert.True(t, errors.IsValidation(err))
}

func TestConsumer_Run(t *testing.T) {
	reader := &mockReader{
		fetchErr: stderrors.New("transient"),
		queue: []kafka.Message{
			envelopeMessage(t, 1, map[string]int{"passed": 4}),
			{Offset: 2, Value: []byte("not json")},
			envelopeMessage(t, 3, map[string]int{"passed": 1}),
		},
	}
	c := NewConsumerWithReader(reader, nil)
	c.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	var seen []int
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx, func(_ context.Context, env *EventEnvelope) error {
			var p map[string]int
			require.NoError(t, env.DecodePayload(&p))
			seen = append(seen, p["passed"])
			if len(seen) == 2 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Equal(t, []int{4, 1}, seen)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

//Personal.AI order the ending
