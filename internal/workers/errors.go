// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "errors"

// ErrStopped is returned by [TickWorker.Do] once the loop has exited.
var ErrStopped = errors.New("worker stopped")
