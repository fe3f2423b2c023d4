package flightdesk

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time for event timestamps and call
// durations. Inject a MockTimeProvider to make them deterministic in tests.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a TimeProvider that returns a fixed time, optionally
// advancing by a step on every call.
type MockTimeProvider struct {
	mu        sync.Mutex
	fixedTime time.Time
	step      time.Duration
}

// NewMockTimeProvider creates a MockTimeProvider with the given fixed time.
func NewMockTimeProvider(t time.Time) *MockTimeProvider {
	return &MockTimeProvider{fixedTime: t}
}

// WithStep makes every Now call advance the clock by step after reading it.
func (m *MockTimeProvider) WithStep(step time.Duration) *MockTimeProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step = step
	return m
}

// SetTime updates the fixed time returned by Now().
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixedTime = t
}

// Now returns the fixed time.
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.fixedTime
	m.fixedTime = m.fixedTime.Add(m.step)
	return now
}

// Compile-time checks.
var (
	_ TimeProvider = (*DefaultTimeProvider)(nil)
	_ TimeProvider = (*MockTimeProvider)(nil)
)
