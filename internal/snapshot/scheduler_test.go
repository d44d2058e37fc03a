package snapshot

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingRunner struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRunner) Generate() Outcome {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return succeeded(1)
}

func (c *countingRunner) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func runUntilCancelled(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

// Startup generation runs before the first cron tick.
func TestSchedulerRunsOnceAtStart(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, "0 * * * *", nil)

	runUntilCancelled(t, s)

	if got := runner.count(); got != 1 {
		t.Errorf("generations = %d, want exactly the startup run", got)
	}
}

// A malformed cadence must not crash or block serving: the startup
// generation still happens and Run still honors cancellation.
func TestSchedulerBadCadence(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, "not a cron line", nil)

	runUntilCancelled(t, s)

	if got := runner.count(); got != 1 {
		t.Errorf("generations = %d, want 1", got)
	}
}
