// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

func newMockCacheRepository(t *testing.T) (*cacheRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewCacheRepository(&DB{DB: db, logger: logger.Nop()}, logger.Nop()).(*cacheRepository)
	repo.now = func() time.Time { return time.Unix(1700000000, 0) }
	return repo, mock
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestCacheRepository_Load_NotFound(t *testing.T) {
	repo, mock := newMockCacheRepository(t)
	account := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT format_version FROM cache_meta WHERE account_id = ?")).
		WithArgs(account.String()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Load(context.Background(), account, 1)
	assert.ErrorIs(t, err, ErrCacheNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_Load_FormatMismatch(t *testing.T) {
	repo, mock := newMockCacheRepository(t)
	account := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT format_version FROM cache_meta")).
		WithArgs(account.String()).
		WillReturnRows(sqlmock.NewRows([]string{"format_version"}).AddRow(1))

	_, err := repo.Load(context.Background(), account, 2)
	assert.ErrorIs(t, err, ErrCacheFormatMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_Load_Success(t *testing.T) {
	repo, mock := newMockCacheRepository(t)
	account := uuid.New()
	root, item := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT format_version FROM cache_meta")).
		WillReturnRows(sqlmock.NewRows([]string{"format_version"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, parent_id, owner_id, name, preferred_type, version, descendents FROM cache_folders")).
		WithArgs(account.String()).
		WillReturnRows(sqlmock.NewRows(folderColumns).
			AddRow(root.String(), uuid.Nil.String(), account.String(), "My Inventory", 8, 4, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cache_items")).
		WithArgs(account.String()).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(item.String(), root.String(), account.String(), uuid.Nil.String(), uuid.Nil.String(),
				"note", "", 7, 7, 0, 1700000000, true, "abc"))

	snap, err := repo.Load(context.Background(), account, 1)
	require.NoError(t, err)
	require.Len(t, snap.Folders, 1)
	require.Len(t, snap.Items, 1)

	assert.Equal(t, root, snap.Folders[0].ID)
	assert.Equal(t, models.FolderRoot, snap.Folders[0].PreferredType)
	assert.Equal(t, int32(4), snap.Folders[0].Version)
	assert.Equal(t, root, snap.Items[0].ParentID)
	assert.Equal(t, models.AssetNotecard, snap.Items[0].AssetType)
	assert.True(t, snap.Items[0].Complete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_Load_QueryError(t *testing.T) {
	repo, mock := newMockCacheRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT format_version FROM cache_meta")).
		WillReturnRows(sqlmock.NewRows([]string{"format_version"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cache_folders")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Load(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestCacheRepository_Save_WritesInOneTransaction(t *testing.T) {
	repo, mock := newMockCacheRepository(t)
	account := uuid.New()
	snap := models.CacheSnapshot{
		FormatVersion: 1,
		Folders:       []models.Folder{models.NewFolder(uuid.New(), uuid.Nil, "My Inventory", models.FolderRoot)},
		Items:         []models.Item{{ID: uuid.New(), Name: "note"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_items WHERE account_id = ?")).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_folders WHERE account_id = ?")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_meta WHERE account_id = ?")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_meta (account_id,format_version,saved_at) VALUES (?,?,?)")).
		WithArgs(account.String(), 1, int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_folders")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_items")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), account, snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_Save_RollsBackOnError(t *testing.T) {
	repo, mock := newMockCacheRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cache_items")).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), uuid.New(), models.CacheSnapshot{FormatVersion: 1})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_Save_BeginError(t *testing.T) {
	repo, mock := newMockCacheRepository(t)
	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := repo.Save(context.Background(), uuid.New(), models.CacheSnapshot{})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

// ── SQLite ───────────────────────────────────────────────────────────────────

// TestCacheRepository_SQLite saves a tree larger than one insert chunk to a
// real cache file and loads it back.
func TestCacheRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	storages, err := NewClientStorages(ctx, config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "inventory.db")},
	}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	account := uuid.New()
	root := models.NewFolder(uuid.New(), uuid.Nil, "My Inventory", models.FolderRoot)
	root.Version = 9
	snap := models.CacheSnapshot{FormatVersion: 2, Folders: []models.Folder{root}}
	for i := range itemInsertChunk + 5 {
		snap.Items = append(snap.Items, models.Item{
			ID:        uuid.New(),
			ParentID:  root.ID,
			Name:      "item",
			AssetType: models.AssetObject,
			Flags:     uint32(i),
			Complete:  i%2 == 0,
		})
	}

	require.NoError(t, storages.Cache.Save(ctx, account, snap))
	// saving again replaces, it does not duplicate
	require.NoError(t, storages.Cache.Save(ctx, account, snap))

	loaded, err := storages.Cache.Load(ctx, account, 2)
	require.NoError(t, err)
	assert.Equal(t, snap.Folders, loaded.Folders)
	assert.ElementsMatch(t, snap.Items, loaded.Items)

	_, err = storages.Cache.Load(ctx, uuid.New(), 2)
	assert.ErrorIs(t, err, ErrCacheNotFound)
	_, err = storages.Cache.Load(ctx, account, 3)
	assert.ErrorIs(t, err, ErrCacheFormatMismatch)
}
