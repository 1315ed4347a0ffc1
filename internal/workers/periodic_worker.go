// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
)

const defaultPeriodicInterval = 5 * time.Minute

// PeriodicWorker calls job every interval. A failing job is logged and
// retried on the next interval; it never stops the worker.
type PeriodicWorker struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context) error
	log      *logger.Logger
}

// NewPeriodicWorker creates a worker named name. If interval is zero or
// negative it defaults to 5 minutes.
func NewPeriodicWorker(name string, interval time.Duration, job func(ctx context.Context) error, log *logger.Logger) *PeriodicWorker {
	if interval <= 0 {
		interval = defaultPeriodicInterval
	}
	return &PeriodicWorker{
		name:     name,
		interval: interval,
		job:      job,
		log:      log.Component(name),
	}
}

// Run implements [Worker].
func (w *PeriodicWorker) Run(ctx context.Context) error {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := w.job(ctx); err != nil && ctx.Err() == nil {
				w.log.Err(err).Str("func", "PeriodicWorker.Run").Str("worker", w.name).Msg("periodic job failed")
			}
		}
	}
}
