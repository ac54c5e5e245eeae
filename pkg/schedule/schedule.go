// Package schedule provides a small interval-based task scheduler.
//
// Usage:
//
//	schedule.Every(15 * time.Minute).Run(sweepOrphans)
//	schedule.Start(ctx) // call once at boot
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/vipani/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

// entry represents a single scheduled job.
type entry struct {
	interval time.Duration
	task     Task
	running  bool // overlap guard
	mu       sync.Mutex
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every schedules a task to run at the given interval.
func Every(interval time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: interval}}
}

// Run attaches the task and registers the entry.
func (s *Schedule) Run(task Task) {
	s.e.task = task

	regMu.Lock()
	defer regMu.Unlock()
	entries = append(entries, s.e)
}

// Start launches one goroutine per registered entry. Tasks stop when ctx is
// cancelled. A task still running when its next tick arrives is skipped,
// never run concurrently with itself.
func Start(ctx context.Context) {
	regMu.Lock()
	current := make([]*entry, len(entries))
	copy(current, entries)
	regMu.Unlock()

	for _, e := range current {
		go e.loop(ctx)
	}

	if len(current) > 0 {
		logger.Info("scheduler started", "tasks", len(current))
	}
}

func (e *entry) loop(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.fire()
		}
	}
}

func (e *entry) fire() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("scheduled task panicked", "panic", r)
		}
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	e.task()
}
