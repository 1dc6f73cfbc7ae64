// Package relayout coalesces bursts of re-layout requests (window resizes,
// dataset reloads) so that at most one run is outstanding behind the one in
// progress.
package relayout

import (
	"context"
	"sync"
)

// Outcome reports what a Trigger did.
type Outcome int

const (
	// Started means nothing was running and a run began.
	Started Outcome = iota
	// Scheduled means a run was in progress and another will follow it.
	Scheduled
	// Joined means a follow-up run was already scheduled; this request is
	// served by it.
	Joined
)

func (o Outcome) String() string {
	switch o {
	case Started:
		return "started"
	case Scheduled:
		return "scheduled"
	case Joined:
		return "joined"
	}

	return "unknown"
}

// Coalescer runs a task in the background on demand. Since the task is
// idempotent, any number of triggers that arrive while a run is in progress
// collapse into a single follow-up run.
type Coalescer struct {
	ctx  context.Context
	task func(context.Context) error

	// OnError, if set, receives errors returned by the task.
	OnError func(error)

	mu      sync.Mutex
	running bool
	pending bool
	runs    uint64
	idle    chan struct{}
}

// New returns a Coalescer whose runs receive ctx. Once ctx is done, pending
// runs are dropped.
func New(ctx context.Context, task func(context.Context) error) *Coalescer {
	return &Coalescer{
		ctx:  ctx,
		task: task,
	}
}

// Trigger requests a run.
func (c *Coalescer) Trigger() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		c.running = true
		c.idle = make(chan struct{})
		go c.loop()
		return Started
	}

	if c.pending {
		return Joined
	}

	c.pending = true
	return Scheduled
}

// Wait blocks until no run is in progress or pending.
func (c *Coalescer) Wait() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	idle := c.idle
	c.mu.Unlock()

	<-idle
}

// Runs is the number of completed runs.
func (c *Coalescer) Runs() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.runs
}

func (c *Coalescer) loop() {
	for {
		if c.ctx.Err() == nil {
			if err := c.task(c.ctx); err != nil && c.OnError != nil {
				c.OnError(err)
			}
		}

		c.mu.Lock()
		c.runs++
		if c.pending && c.ctx.Err() == nil {
			c.pending = false
			c.mu.Unlock()
			continue
		}
		c.pending = false
		c.running = false
		close(c.idle)
		c.mu.Unlock()
		return
	}
}
