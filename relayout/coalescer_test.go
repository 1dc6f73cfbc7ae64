package relayout

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestCoalescerCollapsesBursts(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 10)

	c := New(context.Background(), func(ctx context.Context) error {
		entered <- struct{}{}
		<-release
		return nil
	})

	if o := c.Trigger(); o != Started {
		t.Fatalf("Expected started, got %s", o)
	}
	<-entered

	// While the first run is blocked, a burst of triggers produces one
	// follow-up run.
	if o := c.Trigger(); o != Scheduled {
		t.Fatalf("Expected scheduled, got %s", o)
	}
	for i := 0; i < 5; i++ {
		if o := c.Trigger(); o != Joined {
			t.Fatalf("Expected joined, got %s", o)
		}
	}

	release <- struct{}{}
	<-entered
	release <- struct{}{}

	c.Wait()

	if runs := c.Runs(); runs != 2 {
		t.Fatalf("Expected 2 runs, got %d", runs)
	}

	// Idle again: the next trigger starts a fresh run
	close(release)
	if o := c.Trigger(); o != Started {
		t.Fatalf("Expected started after idle, got %s", o)
	}
	c.Wait()
	if runs := c.Runs(); runs != 3 {
		t.Fatalf("Expected 3 runs, got %d", runs)
	}
}

func TestCoalescerReportsErrors(t *testing.T) {
	boom := errors.New("boom")

	var mu sync.Mutex
	var seen []error

	c := New(context.Background(), func(ctx context.Context) error { return boom })
	c.OnError = func(err error) {
		mu.Lock()
		seen = append(seen, err)
		mu.Unlock()
	}

	c.Trigger()
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != boom {
		t.Fatalf("Expected one boom, got %v", seen)
	}
}

func TestCoalescerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	release := make(chan struct{})
	entered := make(chan struct{}, 10)
	calls := 0

	c := New(ctx, func(ctx context.Context) error {
		calls++
		entered <- struct{}{}
		<-release
		return nil
	})

	c.Trigger()
	<-entered
	c.Trigger()
	cancel()
	close(release)
	c.Wait()

	if calls != 1 {
		t.Fatalf("Expected the scheduled run to be dropped after cancel, got %d calls", calls)
	}
}

func TestWaitWhenIdle(t *testing.T) {
	c := New(context.Background(), func(ctx context.Context) error { return nil })

	// Must not block
	c.Wait()
	if c.Runs() != 0 {
		t.Fatal("Expected no runs")
	}
}
