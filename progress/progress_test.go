package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankreviews/config"
)

func TestDisabledPublisherIsNoop(t *testing.T) {
	p, err := NewPublisher(&config.Config{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	assert.NoError(t, p.Update(context.Background(), "scrape", "run-1", 10, 100))
	assert.NoError(t, p.Close())
}

func TestRecordAggregatesStages(t *testing.T) {
	p, err := NewPublisher(&config.Config{})
	require.NoError(t, err)

	snap := p.record("scrape", "run-1", 50, 100)
	require.Len(t, snap.Stages, 1)
	assert.Equal(t, "scrape", snap.Stages[0].Stage)
	assert.InDelta(t, 50.0, snap.Stages[0].Pct, 0.001)

	snap = p.record("analyze", "run-1", 0, 400)
	require.Len(t, snap.Stages, 2)
	assert.Equal(t, "scrape", snap.Stages[0].Stage)
	assert.Equal(t, "analyze", snap.Stages[1].Stage)
	assert.Zero(t, snap.Stages[1].Pct)

	// Updating an existing stage keeps its position.
	snap = p.record("scrape", "run-1", 100, 100)
	require.Len(t, snap.Stages, 2)
	assert.Equal(t, "scrape", snap.Stages[0].Stage)
	assert.InDelta(t, 100.0, snap.Stages[0].Pct, 0.001)
}

func TestRecordZeroTotal(t *testing.T) {
	p, err := NewPublisher(&config.Config{})
	require.NoError(t, err)

	snap := p.record("load", "run-2", 0, 0)
	require.Len(t, snap.Stages, 1)
	assert.Zero(t, snap.Stages[0].Pct)
}
