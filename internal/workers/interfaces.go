// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived goroutines of the mirror: the owner
// loop that ticks the inventory session and the periodic jobs around it.
package workers

import "context"

// Worker is a long-running background task.
//
// Run blocks until ctx is cancelled or the worker fails. Returning nil on
// cancellation is the normal shutdown path.
type Worker interface {
	Run(ctx context.Context) error
}

// Ticker is advanced by a [TickWorker] once per interval.
type Ticker interface {
	Tick(ctx context.Context)
}
