// Package testutil provides test doubles shared by package tests.
package testutil

import (
	"sync"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
)

// MockLogger records every entry.  Children created by With and Named share
// the parent's record and prepend their own fields.
type MockLogger struct {
	rec    *record
	name   string
	fields []logging.Field
}

type record struct {
	mu      sync.Mutex
	entries []LogMessage
}

// LogMessage is one captured entry.
type LogMessage struct {
	Level   string
	Logger  string
	Message string
	Fields  []logging.Field
}

// Field returns the value of the named field.
func (m LogMessage) Field(key string) (interface{}, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// NewMockLogger creates an empty recorder.
func NewMockLogger() *MockLogger {
	return &MockLogger{rec: &record{}}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	all := make([]logging.Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = append(m.rec.entries, LogMessage{Level: level, Logger: m.name, Message: msg, Fields: all})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.log("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.log("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.log("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.log("error", msg, fields) }

// Fatal records at fatal level and does not exit.
func (m *MockLogger) Fatal(msg string, fields ...logging.Field) { m.log("fatal", msg, fields) }

func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	child := &MockLogger{rec: m.rec, name: m.name}
	child.fields = append(append(child.fields, m.fields...), fields...)
	return child
}

func (m *MockLogger) Named(name string) logging.Logger {
	full := name
	if m.name != "" {
		full = m.name + "." + name
	}
	return &MockLogger{rec: m.rec, name: full, fields: m.fields}
}

// Messages returns a copy of the captured entries.
func (m *MockLogger) Messages() []LogMessage {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	out := make([]LogMessage, len(m.rec.entries))
	copy(out, m.rec.entries)
	return out
}

// Find returns the first entry with level and message.
func (m *MockLogger) Find(level, msg string) (LogMessage, bool) {
	for _, e := range m.Messages() {
		if e.Level == level && e.Message == msg {
			return e, true
		}
	}
	return LogMessage{}, false
}

// HasMessage reports whether an entry with level and message was recorded.
func (m *MockLogger) HasMessage(level, msg string) bool {
	_, ok := m.Find(level, msg)
	return ok
}

// Clear drops every entry.
func (m *MockLogger) Clear() {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = nil
}

//Personal.AI order the ending
