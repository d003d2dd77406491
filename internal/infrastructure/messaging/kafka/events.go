package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// Event types carried in EventEnvelope.EventType.
const (
	EventTypeRunCompleted = "prioritizer.run.completed"

	eventSource   = "admet-prioritizer"
	schemaVersion = "1.0"

	headerEventType = "event_type"
)

// EventEnvelope wraps every published payload.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NewEventEnvelope encodes payload under a fresh event id.
func NewEventEnvelope(eventType string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        eventSource,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       data,
	}, nil
}

func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode event payload")
	}
	return nil
}

// ToMessage builds the kafka message for topic; key selects the partition.
func (e *EventEnvelope) ToMessage(topic, key string) (kafka.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event")
	}
	return kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   data,
		Time:    e.Timestamp,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(e.EventType)}},
	}, nil
}

// EnvelopeFromMessage decodes a consumed message.
func EnvelopeFromMessage(m kafka.Message) (*EventEnvelope, error) {
	var env EventEnvelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode event envelope")
	}
	return &env, nil
}

//Personal.AI order the ending
