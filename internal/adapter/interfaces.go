// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote inventory service.
//
// The primary abstraction is [InventoryAPI]: one asynchronous method per
// remote intent, each returning a [CallID] at once and later delivering a
// [Completion] on the channel returned by Completions. Calls run on a fixed
// pool of goroutines; the owner of the local tree drains completions on its
// own goroutine, so no reply ever touches shared state from a worker.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrGone] for 410,
// [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/inventory_api_mock.go -package=mock

// InventoryAPI is the asynchronous inventory service client.
//
// Every call method returns [ErrUnavailable] when the capability it needs
// was not granted and [ErrShuttingDown] after Close; otherwise the call is
// queued and its outcome arrives on Completions.
type InventoryAPI interface {
	// Start launches the worker pool and releases calls submitted so far.
	Start(ctx context.Context)
	// Flush moves pending calls onto the pool while it has room. Run it
	// once per owner tick.
	Flush()
	// Close stops the pool. Replies still in flight are discarded.
	Close()
	// Completions delivers the outcome of every call, in completion order.
	Completions() <-chan Completion
	// PoolSize is the number of calls that can run at once.
	PoolSize() int
	// Outstanding counts submitted calls that have not completed yet.
	Outstanding() int

	// AISAvailable reports whether the batched API is usable for the
	// inventory (library false) or the library (library true).
	AISAvailable(library bool) bool
	// LegacyAvailable reports whether the legacy fetch capabilities are
	// usable.
	LegacyAvailable(library bool) bool

	CreateInventory(ctx context.Context, parentID uuid.UUID, body models.NewInventory) (CallID, error)
	// SlamFolder replaces the whole link content of folderID.
	SlamFolder(ctx context.Context, folderID uuid.UUID, links models.LinkSet) (CallID, error)
	RemoveCategory(ctx context.Context, categoryID uuid.UUID) (CallID, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (CallID, error)
	// CopyLibraryCategory copies a library folder under destinationID, with
	// its subfolders when copySubfolders is set.
	CopyLibraryCategory(ctx context.Context, sourceID, destinationID uuid.UUID, copySubfolders bool) (CallID, error)
	// PurgeDescendents deletes everything inside categoryID.
	PurgeDescendents(ctx context.Context, categoryID uuid.UUID) (CallID, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, patch models.CategoryPatch) (CallID, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, patch models.ItemPatch) (CallID, error)

	FetchItem(ctx context.Context, itemID uuid.UUID, library bool) (CallID, error)
	// FetchCategoryChildren lists folders and items under categoryID down
	// to depth levels. Depth is capped at [MaxFolderDepthRequest].
	FetchCategoryChildren(ctx context.Context, categoryID uuid.UUID, library bool, depth int) (CallID, error)
	// FetchCategoryCategories lists only the folders under categoryID.
	FetchCategoryCategories(ctx context.Context, categoryID uuid.UUID, library bool, depth int) (CallID, error)
	// FetchCategorySubset lists the given children of categoryID.
	FetchCategorySubset(ctx context.Context, categoryID uuid.UUID, library bool, children []uuid.UUID, depth int) (CallID, error)
	FetchLinks(ctx context.Context, categoryID uuid.UUID) (CallID, error)
	// FetchCOF lists the links of the current outfit folder.
	FetchCOF(ctx context.Context) (CallID, error)
	// FetchOrphans lists items whose parent is unknown to the service.
	FetchOrphans(ctx context.Context) (CallID, error)

	// LegacyFetchFolders posts a batch of folders to the legacy descendents
	// capability.
	LegacyFetchFolders(ctx context.Context, library bool, req models.LegacyFolderRequest) (CallID, error)
	// LegacyFetchItems posts a batch of items to the legacy item
	// capability.
	LegacyFetchItems(ctx context.Context, library bool, req models.LegacyItemRequest) (CallID, error)
}

// MessageSender delivers legacy one-shot messages over the simulator
// connection. Only folder creation goes this way.
type MessageSender interface {
	SendCreateFolder(ctx context.Context, folder models.Folder) error
}
