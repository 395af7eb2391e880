package events

import (
	"go.uber.org/zap"
)

// FakeAsyncProducer is a capturing implementation of Publisher.
type FakeAsyncProducer struct {
	logger *zap.Logger
	// Published records every event handed to Publish, in order.
	Published []Event
}

// NewFakeAsyncProducer returns a capturing Publisher implementation.
func NewFakeAsyncProducer(logger *zap.Logger) *FakeAsyncProducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FakeAsyncProducer{logger: logger}
}

// Publish implements the Publisher interface.
func (fake *FakeAsyncProducer) Publish(e Event) {
	fake.Published = append(fake.Published, e)
}

// Reconnect implements the Publisher interface.
func (fake *FakeAsyncProducer) Reconnect() bool {
	return false
}
