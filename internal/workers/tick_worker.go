// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
)

const defaultTickInterval = 10 * time.Millisecond

type task struct {
	fn   func(ctx context.Context)
	done chan struct{}
}

// TickWorker is the owner loop. Tick and every function passed to Do run on
// the goroutine that called Run, never concurrently.
type TickWorker struct {
	ticker   Ticker
	interval time.Duration

	tasks    chan task
	done     chan struct{}
	doneOnce sync.Once

	log *logger.Logger
}

// NewTickWorker creates a loop calling t.Tick every interval. A non-positive
// interval falls back to 10ms.
func NewTickWorker(t Ticker, interval time.Duration, log *logger.Logger) *TickWorker {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	return &TickWorker{
		ticker:   t,
		interval: interval,
		tasks:    make(chan task),
		done:     make(chan struct{}),
		log:      log.Component("tick_worker"),
	}
}

// Run implements [Worker]. It must be called once.
func (w *TickWorker) Run(ctx context.Context) error {
	defer w.doneOnce.Do(func() { close(w.done) })

	t := time.NewTicker(w.interval)
	defer t.Stop()

	w.log.Debug().Str("func", "TickWorker.Run").Dur("interval", w.interval).Msg("owner loop started")
	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Str("func", "TickWorker.Run").Msg("owner loop stopped")
			return nil
		case <-t.C:
			w.ticker.Tick(ctx)
		case tk := <-w.tasks:
			tk.fn(ctx)
			close(tk.done)
		}
	}
}

// Do runs fn on the loop goroutine between two ticks and waits for it to
// return. It fails with [ErrStopped] when the loop has exited.
func (w *TickWorker) Do(ctx context.Context, fn func(ctx context.Context)) error {
	tk := task{fn: fn, done: make(chan struct{})}

	select {
	case w.tasks <- tk:
	case <-w.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-tk.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
