package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcreative/giftmon/pkg/scheduler/mocks"
)

func TestScheduler_StateTransitions(t *testing.T) {
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error { return nil },
	}
	s := New(fetcher)

	assert.Equal(t, StateIdle, s.State())

	s.Start(context.Background(), time.Hour)
	assert.Equal(t, StateRunning, s.State())

	s.Stop()
	assert.Equal(t, StateStopped, s.State())

	// stopped is re-startable
	s.Start(context.Background(), time.Hour)
	assert.Equal(t, StateRunning, s.State())
	s.Stop()
	assert.Equal(t, StateStopped, s.State())
}

func TestScheduler_StopNoopWhenNotRunning(t *testing.T) {
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error { return nil },
	}
	s := New(fetcher)

	s.Stop() // idle, must not block or panic
	assert.Equal(t, StateIdle, s.State())

	s.Start(context.Background(), time.Hour)
	s.Stop()
	s.Stop() // second stop is a no-op
	assert.Equal(t, StateStopped, s.State())
}

func TestScheduler_StartNoopWhenRunning(t *testing.T) {
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error { return nil },
	}
	s := New(fetcher)

	s.Start(context.Background(), time.Hour)
	s.Start(context.Background(), time.Millisecond) // ignored, original interval stays
	assert.Equal(t, StateRunning, s.State())

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, fetcher.FetchCalls(), "second start must not arm a faster timer")

	s.Stop()
}

func TestScheduler_FirstTickAfterInterval(t *testing.T) {
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error { return nil },
	}
	s := New(fetcher)

	s.Start(context.Background(), 100*time.Millisecond)
	defer s.Stop()

	// no immediate cycle on start
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, fetcher.FetchCalls())

	require.Eventually(t, func() bool {
		return len(fetcher.FetchCalls()) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_NoOverlap(t *testing.T) {
	var inFlight, maxInFlight int32
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error {
			cur := atomic.AddInt32(&inFlight, 1)
			for {
				prev := atomic.LoadInt32(&maxInFlight)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, cur) {
					break
				}
			}
			time.Sleep(60 * time.Millisecond) // cycle slower than the interval
			atomic.AddInt32(&inFlight, -1)
			return nil
		},
	}
	s := New(fetcher)

	s.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight), "cycles must never overlap")
	assert.NotEmpty(t, fetcher.FetchCalls())
}

func TestScheduler_StopCancelsPendingTick(t *testing.T) {
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error { return nil },
	}
	s := New(fetcher)

	s.Start(context.Background(), 150*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	time.Sleep(250 * time.Millisecond)
	assert.Empty(t, fetcher.FetchCalls(), "tick scheduled before stop must not fire")
}

func TestScheduler_StopDuringCycleSuppressesFiredTick(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error {
			once.Do(func() { close(started) })
			time.Sleep(50 * time.Millisecond)
			return nil
		},
	}
	s := New(fetcher)

	// with a near-zero interval the rearmed timer fires before the stop signal
	// is consumed, the cycle in flight must still be the last one
	s.Start(context.Background(), time.Nanosecond)
	<-started
	s.Stop()

	assert.Len(t, fetcher.FetchCalls(), 1, "tick fired around stop must not start another cycle")
}

func TestScheduler_StopWaitsForInflightCycle(t *testing.T) {
	started := make(chan struct{})
	var completed atomic.Bool
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error {
			close(started)
			time.Sleep(80 * time.Millisecond)
			completed.Store(true)
			return nil
		},
	}
	s := New(fetcher)

	s.Start(context.Background(), 10*time.Millisecond)
	<-started
	s.Stop()

	assert.True(t, completed.Load(), "stop must wait for the in-flight cycle to finish")
	assert.Len(t, fetcher.FetchCalls(), 1)
}

func TestScheduler_KeepsRunningAfterCycleFailure(t *testing.T) {
	var calls atomic.Int32
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("transient failure")
		},
	}
	s := New(fetcher)

	s.Start(context.Background(), 20*time.Millisecond)
	defer s.Stop()

	require.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 10*time.Millisecond, "a failed cycle must not stop the scheduler")
	assert.Equal(t, StateRunning, s.State())
}

func TestScheduler_ContextCancel(t *testing.T) {
	fetcher := &mocks.FetcherMock{
		FetchFunc: func(ctx context.Context) error { return nil },
	}
	s := New(fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, time.Hour)
	cancel()

	require.Eventually(t, func() bool {
		return s.State() == StateStopped
	}, time.Second, 10*time.Millisecond)
}
