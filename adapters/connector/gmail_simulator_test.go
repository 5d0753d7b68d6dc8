package connector

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

func TestGmailSimulatorSuccessRate(t *testing.T) {
	sim := NewGmailSimulatorWithSource(0, 0.8, rand.NewPCG(1, 2), logger.NewNopLogger())

	const runs = 1000
	successes := 0
	for i := 0; i < runs; i++ {
		ok, err := sim.Connect(context.Background(), uuid.New())
		require.NoError(t, err)
		if ok {
			successes++
		}
	}

	assert.InDelta(t, 0.8, float64(successes)/runs, 0.05)
}

func TestGmailSimulatorBounds(t *testing.T) {
	always := NewGmailSimulatorWithSource(0, 1.5, rand.NewPCG(3, 4), logger.NewNopLogger())
	never := NewGmailSimulatorWithSource(0, -1, rand.NewPCG(3, 4), logger.NewNopLogger())

	for i := 0; i < 50; i++ {
		ok, err := always.Connect(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = never.Connect(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestGmailSimulatorWaitsForDelay(t *testing.T) {
	sim := NewGmailSimulatorWithSource(20*time.Millisecond, 1, rand.NewPCG(5, 6), logger.NewNopLogger())

	start := time.Now()
	ok, err := sim.Connect(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestGmailSimulatorHonoursCancellation(t *testing.T) {
	sim := NewGmailSimulatorWithSource(time.Minute, 1, rand.NewPCG(7, 8), logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := sim.Connect(ctx, uuid.New())

	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}
