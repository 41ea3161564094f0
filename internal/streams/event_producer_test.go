package streams

import (
	"context"
	"testing"
	"time"

	"visit-analytics/internal/events"
	"visit-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventProducer_Produce(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.VisitEvent](4, 16)
	producer := NewEventProducer(queue)

	day1 := time.Date(2025, 12, 28, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC)
	evts := []*models.Event{
		{Service: "blog", Timestamp: day1, IP: "1.1.1.1", Path: "/a"},
		{Service: "blog", Timestamp: day2, IP: "1.1.1.1", Path: "/b"},
		{Service: "blog", Timestamp: day1.Add(time.Hour), IP: "2.2.2.2", Path: "/c"},
	}

	require.NoError(t, producer.Produce(context.Background(), "batch-1", evts))

	ch := queue.Partition(partitionIndex("blog/2025-12-28", queue.PartitionCount()))
	first := <-ch
	second := <-ch
	assert.Equal(t, "/a", first.Path)
	assert.Equal(t, "/c", second.Path)
	assert.Equal(t, "batch-1", first.BatchID)

	other := queue.Partition(partitionIndex("blog/2025-12-29", queue.PartitionCount()))
	var found bool
	for len(other) > 0 {
		if e := <-other; e.Path == "/b" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEventProducer_Produce_ContextCancelled(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.VisitEvent](1, 1)
	producer := NewEventProducer(queue)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ts := time.Date(2025, 12, 28, 10, 0, 0, 0, time.UTC)
	evts := []*models.Event{
		{Service: "blog", Timestamp: ts},
		{Service: "blog", Timestamp: ts},
	}

	// the first event fits in the buffer, the second cannot be published
	err := producer.Produce(ctx, "batch-1", evts)
	assert.ErrorIs(t, err, context.Canceled)
}
