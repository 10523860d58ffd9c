package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// Fetcher runs one fetch cycle
type Fetcher interface {
	Fetch(ctx context.Context) error
}

// State of the scheduler lifecycle
type State string

// scheduler states, stopped is re-startable
const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// Scheduler runs fetch cycles on a fixed interval with at most one cycle in
// flight. The next tick is armed only after the current cycle returns, so a
// cycle slower than the interval delays the next one instead of overlapping it.
type Scheduler struct {
	fetcher Fetcher

	mu    sync.Mutex
	state State
	stop  chan struct{}
	done  chan struct{}
}

// New creates an idle scheduler
func New(fetcher Fetcher) *Scheduler {
	return &Scheduler{fetcher: fetcher, state: StateIdle}
}

// Start begins periodic fetching, the first cycle fires one interval after
// start. No-op when already running.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return
	}

	s.state = StateRunning
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(ctx, interval, s.stop, s.done)

	lgr.Printf("[INFO] scheduler started, interval %v", interval)
}

// Stop cancels the pending tick and waits for an in-flight cycle to finish,
// it never interrupts a running cycle. No-op when not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.state = StateStopped
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
	lgr.Printf("[INFO] scheduler stopped")
}

// State returns the current lifecycle state
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) run(ctx context.Context, interval time.Duration, stop, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			s.mu.Lock()
			if s.state == StateRunning {
				s.state = StateStopped
			}
			s.mu.Unlock()
			return
		case <-timer.C:
			// a stop may land while the timer has already fired, the outer
			// select picks between the two at random. Re-check before starting
			// a cycle so stop always wins.
			select {
			case <-stop:
				return
			default:
			}
			if err := s.fetcher.Fetch(ctx); err != nil {
				lgr.Printf("[WARN] fetch cycle failed, next tick retries: %v", err)
			}
			timer.Reset(interval) // rearm only after the cycle fully returned
		}
	}
}
