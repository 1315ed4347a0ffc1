// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the inventory tree and its persistent cache.
//
// [TreeStore] is the in-memory, single-owner tree of folders and items with
// its parent/child indexes and link bookkeeping. [CacheRepository] persists
// tree snapshots to SQLite between sessions.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ChangeSink receives every change the tree records.
type ChangeSink interface {
	AddChanged(id uuid.UUID, mask models.ChangeMask)
}

// CacheRepository loads and saves inventory snapshots per account.
type CacheRepository interface {
	// Load returns the snapshot saved for accountID. It returns
	// ErrCacheNotFound when nothing was saved and ErrCacheFormatMismatch when
	// the saved format differs from formatVersion.
	Load(ctx context.Context, accountID uuid.UUID, formatVersion int) (models.CacheSnapshot, error)

	// Save replaces the snapshot saved for accountID.
	Save(ctx context.Context, accountID uuid.UUID, snapshot models.CacheSnapshot) error
}
