package streams

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"sync"
)

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

// PartitionedQueue is an in-process stream of buffered channels. Messages with the same
// partition key always land in the same partition.
type PartitionedQueue[T any] struct {
	partitions []chan T
	closeOnce  sync.Once
}

// NewPartitionedQueue creates a queue; non-positive sizes fall back to the defaults.
func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = defaultNumPartitions
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

func (queue *PartitionedQueue[T]) Partition(index int) <-chan T {
	return queue.partitions[index]
}

// Backlog returns the number of buffered messages of a partition.
func (queue *PartitionedQueue[T]) Backlog(index int) int {
	return len(queue.partitions[index])
}

// Publish blocks until the partition has room or ctx is done.
// Publishing after Close panics.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes every partition. Consumers drain what is buffered and then stop.
func (queue *PartitionedQueue[T]) Close() {
	queue.closeOnce.Do(func() {
		for _, ch := range queue.partitions {
			close(ch)
		}
	})
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
