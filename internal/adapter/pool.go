// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
)

type job struct {
	id  CallID
	cmd Command
	run func(ctx context.Context) Completion
}

// callPool runs calls on a fixed number of goroutines. Calls that find the
// job queue full, or that arrive before Start, wait in a pending list until
// flush moves them on; none is dropped before Close.
type callPool struct {
	size        int
	jobs        chan job
	completions chan Completion

	mu       sync.Mutex
	pending  []job
	started  bool
	closed   bool
	nextID   CallID
	inFlight int

	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *logger.Logger
}

func newCallPool(size int, log *logger.Logger) *callPool {
	size = max(1, size)
	return &callPool{
		size:        size,
		jobs:        make(chan job, size),
		completions: make(chan Completion, size*4),
		logger:      log,
	}
}

func (p *callPool) start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	for range p.size {
		p.wg.Add(1)
		go p.work(ctx)
	}

	p.flush()
}

func (p *callPool) work(ctx context.Context) {
	defer p.wg.Done()

	for j := range p.jobs {
		c := j.run(ctx)
		c.ID = j.id
		c.Command = j.cmd

		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()

		select {
		case p.completions <- c:
		case <-ctx.Done():
			p.logger.Debug().
				Str("func", "callPool.work").
				Uint64("call_id", uint64(j.id)).
				Stringer("command", j.cmd.Kind).
				Msg("completion discarded on shutdown")
		}
	}
}

func (p *callPool) submit(cmd Command, run func(ctx context.Context) Completion) (CallID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrShuttingDown
	}

	p.nextID++
	j := job{id: p.nextID, cmd: cmd, run: run}
	p.inFlight++

	if !p.started || len(p.pending) > 0 {
		p.pending = append(p.pending, j)
		return j.id, nil
	}

	select {
	case p.jobs <- j:
	default:
		p.pending = append(p.pending, j)
	}

	return j.id, nil
}

// flush hands pending calls to the workers in submission order until the
// job queue is full again.
func (p *callPool) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.closed {
		return
	}

	sent := 0
	for sent < len(p.pending) {
		select {
		case p.jobs <- p.pending[sent]:
			sent++
			continue
		default:
		}
		break
	}
	p.pending = p.pending[sent:]
}

// close stops accepting calls, drops the pending list and waits for
// running calls to return. Their completions are discarded.
func (p *callPool) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.inFlight -= len(p.pending)
	p.pending = nil
	close(p.jobs)
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *callPool) outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

func (p *callPool) pendingLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
