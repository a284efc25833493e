package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickSamplesOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	p := NewProfiler(
		WithClock(clock.now),
		WithInterval(time.Second),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	for i := 0; i < 49; i++ {
		clock.advance(20 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	clock.advance(20 * time.Millisecond)
	assert.True(t, p.Tick())

	s := p.Last()
	assert.Equal(t, 50, s.Frames)
	assert.InDelta(t, 50.0, s.FPS, 0.01)
	assert.Equal(t, time.Second, s.SampleWindow)
	assert.Greater(t, s.SysMB, 0.0)
	assert.Contains(t, buf.String(), "msg=profiler")
	assert.Contains(t, buf.String(), "fps=")

	// the frame counter restarts after a sample
	clock.advance(time.Second / 2)
	assert.False(t, p.Tick())
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithClock(nil), WithLogger(nil))

	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.now)
	assert.NotNil(t, p.logger)
	assert.Equal(t, Stats{}, p.Last())
}
