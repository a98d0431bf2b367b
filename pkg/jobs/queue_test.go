package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	done := make(chan string, 2)
	q := NewQueue("test", func(ctx context.Context, job Job[string]) error {
		done <- job.Payload
		return nil
	}, QueueConfig[string]{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job[string]{ID: "1", Payload: "a"}))
	require.NoError(t, q.Enqueue(Job[string]{ID: "2", Payload: "b"}))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case p := <-done:
			got[p] = true
		case <-time.After(time.Second):
			t.Fatal("job not processed")
		}
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, got)
}

func TestQueueRetriesUntilSuccess(t *testing.T) {
	var calls int32
	done := make(chan int, 1)
	q := NewQueue("retry", func(ctx context.Context, job Job[int]) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		done <- job.Attempt
		return nil
	}, QueueConfig[int]{MaxRetries: 5, RetryDelay: time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job[int]{ID: "r"}))
	select {
	case attempt := <-done:
		assert.Equal(t, 2, attempt)
	case <-time.After(time.Second):
		t.Fatal("job never succeeded")
	}
}

func TestQueueGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	q := NewQueue("give-up", func(ctx context.Context, job Job[int]) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("permanent")
	}, QueueConfig[int]{MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job[int]{ID: "p"}))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	q.Stop()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestQueueDiscardsAfterMaxRetries(t *testing.T) {
	discarded := make(chan Job[int], 2)
	q := NewQueue("discard", func(ctx context.Context, job Job[int]) error {
		return errors.New("permanent")
	}, QueueConfig[int]{
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		OnDiscard:  func(job Job[int], err error) { discarded <- job },
	})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job[int]{ID: "d", Payload: 7}))
	select {
	case job := <-discarded:
		assert.Equal(t, "d", job.ID)
		assert.Equal(t, 7, job.Payload)
		assert.Equal(t, 2, job.Attempt)
	case <-time.After(time.Second):
		t.Fatal("exhausted job was not discarded")
	}
	q.Stop()
	assert.Len(t, discarded, 0)
}

func TestQueueStopDiscardsPendingJobs(t *testing.T) {
	started := make(chan struct{})
	var discarded int32
	q := NewQueue("drain", func(ctx context.Context, job Job[int]) error {
		close(started)
		<-ctx.Done()
		return nil
	}, QueueConfig[int]{
		Workers:    1,
		BufferSize: 4,
		OnDiscard:  func(job Job[int], err error) { atomic.AddInt32(&discarded, 1) },
	})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(Job[int]{ID: "running"}))
	<-started
	require.NoError(t, q.Enqueue(Job[int]{ID: "a"}))
	require.NoError(t, q.Enqueue(Job[int]{ID: "b"}))
	q.Stop()
	assert.Equal(t, int32(2), atomic.LoadInt32(&discarded))
}

func TestQueueEnqueueRequiresStart(t *testing.T) {
	q := NewQueue("idle", func(ctx context.Context, job Job[int]) error { return nil }, QueueConfig[int]{})
	assert.Error(t, q.Enqueue(Job[int]{ID: "x"}))
}

func TestQueueEnqueueFullBuffer(t *testing.T) {
	block := make(chan struct{})
	q := NewQueue("full", func(ctx context.Context, job Job[int]) error {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig[int]{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()
	defer close(block)

	require.NoError(t, q.Enqueue(Job[int]{ID: "1"}))
	var full error
	for i := 0; i < 3 && full == nil; i++ {
		full = q.Enqueue(Job[int]{ID: "n"})
	}
	assert.ErrorIs(t, full, ErrQueueFull)
}
