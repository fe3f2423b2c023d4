package flightdesk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeProvider_Now(t *testing.T) {
	before := time.Now()
	got := NewDefaultTimeProvider().Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("fixed", func(t *testing.T) {
		p := NewMockTimeProvider(start)
		assert.Equal(t, start, p.Now())
		assert.Equal(t, start, p.Now())

		later := start.Add(time.Hour)
		p.SetTime(later)
		assert.Equal(t, later, p.Now())
	})

	t.Run("step", func(t *testing.T) {
		p := NewMockTimeProvider(start).WithStep(250 * time.Millisecond)
		first := p.Now()
		second := p.Now()
		assert.Equal(t, start, first)
		assert.Equal(t, 250*time.Millisecond, second.Sub(first))
	})
}
