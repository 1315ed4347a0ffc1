// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

const (
	tableCacheMeta    = "cache_meta"
	tableCacheFolders = "cache_folders"
	tableCacheItems   = "cache_items"

	// rows per INSERT, kept under SQLite's default limit of 999 variables
	folderInsertChunk = 100
	itemInsertChunk   = 60
)

var (
	folderColumns = []string{
		"id", "parent_id", "owner_id", "name", "preferred_type", "version", "descendents",
	}
	itemColumns = []string{
		"id", "parent_id", "owner_id", "asset_id", "linked_id", "name", "description",
		"asset_type", "inv_type", "flags", "creation_date", "complete", "hash",
	}
)

type cacheRepository struct {
	*DB
	builder sq.StatementBuilderType
	now     func() time.Time
	logger  *logger.Logger
}

// NewCacheRepository returns a CacheRepository writing to db.
func NewCacheRepository(db *DB, log *logger.Logger) CacheRepository {
	return &cacheRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now:     time.Now,
		logger:  log,
	}
}

func (r *cacheRepository) Load(ctx context.Context, accountID uuid.UUID, formatVersion int) (models.CacheSnapshot, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("format_version").
		From(tableCacheMeta).
		Where(sq.Eq{"account_id": accountID.String()}).
		ToSql()
	if err != nil {
		return models.CacheSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var saved int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&saved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CacheSnapshot{}, ErrCacheNotFound
		}
		log.Err(err).
			Str("func", "cacheRepository.Load").
			Stringer("account_id", accountID).
			Msg("failed to read cache meta")
		return models.CacheSnapshot{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if saved != formatVersion {
		log.Info().
			Str("func", "cacheRepository.Load").
			Int("saved", saved).
			Int("expected", formatVersion).
			Msg("cache format differs, discarding")
		return models.CacheSnapshot{}, fmt.Errorf("%w: saved %d, expected %d", ErrCacheFormatMismatch, saved, formatVersion)
	}

	folders, err := r.loadFolders(ctx, accountID)
	if err != nil {
		return models.CacheSnapshot{}, err
	}
	items, err := r.loadItems(ctx, accountID)
	if err != nil {
		return models.CacheSnapshot{}, err
	}

	return models.CacheSnapshot{
		FormatVersion: saved,
		Folders:       folders,
		Items:         items,
	}, nil
}

func (r *cacheRepository) loadFolders(ctx context.Context, accountID uuid.UUID) ([]models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(folderColumns...).
		From(tableCacheFolders).
		Where(sq.Eq{"account_id": accountID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "cacheRepository.loadFolders").Msg("failed to query cached folders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		f := models.Folder{}
		if err := rows.Scan(&f.ID, &f.ParentID, &f.OwnerID, &f.Name, &f.PreferredType, &f.Version, &f.DescendentCount); err != nil {
			log.Err(err).Str("func", "cacheRepository.loadFolders").Msg("failed to scan cached folder")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return folders, nil
}

func (r *cacheRepository) loadItems(ctx context.Context, accountID uuid.UUID) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(itemColumns...).
		From(tableCacheItems).
		Where(sq.Eq{"account_id": accountID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "cacheRepository.loadItems").Msg("failed to query cached items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		it := models.Item{}
		if err := rows.Scan(
			&it.ID,
			&it.ParentID,
			&it.OwnerID,
			&it.AssetID,
			&it.LinkedID,
			&it.Name,
			&it.Description,
			&it.AssetType,
			&it.InventoryType,
			&it.Flags,
			&it.CreationDate,
			&it.Complete,
			&it.Hash,
		); err != nil {
			log.Err(err).Str("func", "cacheRepository.loadItems").Msg("failed to scan cached item")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// Save replaces the account's snapshot inside one transaction.
func (r *cacheRepository) Save(ctx context.Context, accountID uuid.UUID, snapshot models.CacheSnapshot) (err error) {
	log := logger.FromContext(ctx)
	account := accountID.String()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "cacheRepository.Save").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	statements := make([]sq.Sqlizer, 0, 4)
	for _, table := range []string{tableCacheItems, tableCacheFolders, tableCacheMeta} {
		statements = append(statements, r.builder.Delete(table).Where(sq.Eq{"account_id": account}))
	}
	statements = append(statements, r.builder.
		Insert(tableCacheMeta).
		Columns("account_id", "format_version", "saved_at").
		Values(account, snapshot.FormatVersion, r.now().Unix()))

	for start := 0; start < len(snapshot.Folders); start += folderInsertChunk {
		insert := r.builder.Insert(tableCacheFolders).Columns(append([]string{"account_id"}, folderColumns...)...)
		for _, f := range snapshot.Folders[start:min(start+folderInsertChunk, len(snapshot.Folders))] {
			insert = insert.Values(account,
				f.ID.String(), f.ParentID.String(), f.OwnerID.String(),
				f.Name, int(f.PreferredType), f.Version, f.DescendentCount)
		}
		statements = append(statements, insert)
	}

	for start := 0; start < len(snapshot.Items); start += itemInsertChunk {
		insert := r.builder.Insert(tableCacheItems).Columns(append([]string{"account_id"}, itemColumns...)...)
		for _, it := range snapshot.Items[start:min(start+itemInsertChunk, len(snapshot.Items))] {
			insert = insert.Values(account,
				it.ID.String(), it.ParentID.String(), it.OwnerID.String(),
				it.AssetID.String(), it.LinkedID.String(),
				it.Name, it.Description,
				int(it.AssetType), int(it.InventoryType), it.Flags, it.CreationDate,
				it.Complete, it.Hash)
		}
		statements = append(statements, insert)
	}

	for _, stmt := range statements {
		query, args, buildErr := stmt.ToSql()
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "cacheRepository.Save").
				Stringer("account_id", accountID).
				Msg("failed to write cache")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "cacheRepository.Save").Msg("failed to commit cache")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().
		Str("func", "cacheRepository.Save").
		Int("folders", len(snapshot.Folders)).
		Int("items", len(snapshot.Items)).
		Msg("inventory cache saved")

	return nil
}
