package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalPacer_FirstPauseWaitsFullInterval(t *testing.T) {
	t.Parallel()

	interval := 50 * time.Millisecond
	p := NewIntervalPacer(interval)

	start := time.Now()
	require.NoError(t, p.Pause(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, interval-5*time.Millisecond)
}

func TestIntervalPacer_SpacesConsecutivePauses(t *testing.T) {
	t.Parallel()

	interval := 50 * time.Millisecond
	p := NewIntervalPacer(interval)

	start := time.Now()
	require.NoError(t, p.Pause(context.Background()))
	require.NoError(t, p.Pause(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 2*interval-10*time.Millisecond)
}

func TestIntervalPacer_ContextCancel(t *testing.T) {
	t.Parallel()

	p := NewIntervalPacer(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Pause(ctx)
	require.Error(t, err)
}

func TestNopPacer(t *testing.T) {
	t.Parallel()

	var p NopPacer
	require.NoError(t, p.Pause(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Pause(ctx), context.Canceled)
}
