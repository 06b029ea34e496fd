package service

import "context"

// EventEmitter decouples services from the event transport. The app
// layer implements it by broadcasting over the WebSocket hub; tests use
// MockEmitter. A nil-safe no-op implementation keeps headless runs
// (no hub configured) from crashing.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// NoopEmitter discards all events.
type NoopEmitter struct{}

func (NoopEmitter) Emit(context.Context, string, any) {}

// MockEmitter records all emissions for test assertions.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds one recorded emission.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}
