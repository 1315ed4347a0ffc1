// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
)

// ClientStorages groups the persistent storage of the mirror.
type ClientStorages struct {
	// Cache is the SQLite-backed inventory snapshot repository.
	Cache CacheRepository

	db *DB
}

// NewClientStorages opens the cache database named in cfg.DB.DSN, applies
// pending migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Cache: NewCacheRepository(db, log),
		db:    db,
	}, nil
}

// Close releases the cache database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
