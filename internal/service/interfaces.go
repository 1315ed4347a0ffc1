// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service keeps the local inventory mirror in step with the remote
// inventory service.
//
// [Inventory] is the session object. It owns the tree store, the fetch
// scheduler, the protocol client and the notification bus, and it is driven
// by a single owner goroutine calling Tick. Nothing in this package is safe
// for concurrent use; replies produced by the protocol client's workers are
// only ever applied from Tick.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// Observer receives the changes coalesced during one tick.
type Observer interface {
	Changed(batch models.ChangeBatch)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(batch models.ChangeBatch)

func (f ObserverFunc) Changed(batch models.ChangeBatch) { f(batch) }

// Alert names a user-visible notification.
type Alert string

const (
	AlertAISFailure Alert = "AISFailure"
	// AlertInventoryLimitReachedFirst is raised the first time a folder is
	// too large to be listed at depth 0.
	AlertInventoryLimitReachedFirst Alert = "AISInventoryLimitReachedAlert"
	AlertInventoryLimitReached      Alert = "AISInventoryLimitReached"
	AlertCreateFolderFailed         Alert = "CantCreateRequestedInvFolder"
)

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(alert Alert, args map[string]string)
}

// LinkResolver lists the links pointing at a node.
type LinkResolver interface {
	LinksTo(target uuid.UUID) []uuid.UUID
}

// InventoryService is the owner-loop facing API of the inventory session.
//
// Every method must be called from the goroutine that calls Tick.
type InventoryService interface {
	// Load fills the tree from the cache saved for accountID, then starts the
	// protocol client and queues the initial background fetch.
	Load(ctx context.Context, accountID uuid.UUID) error
	// Tick drains replies, resumes update application, feeds the fetch
	// scheduler and dispatches change notifications.
	Tick(ctx context.Context)
	// Save persists the tree for the account passed to Load.
	Save(ctx context.Context) error
	// Shutdown marks the session disconnected. Later replies are discarded.
	Shutdown()

	Fetch(id uuid.UUID, recursive bool)
	ForceRefetch(id uuid.UUID)
	ForceFetchItem(id uuid.UUID)
	FindLostItems()
	IsEverythingFetched() bool
	IsBackgroundFetchActive() bool

	FindCategoryUUIDForType(ctx context.Context, t models.FolderType, createIfMissing bool) (uuid.UUID, error)
	CreateFolder(ctx context.Context, parentID uuid.UUID, name string, preferred models.FolderType) (uuid.UUID, error)
	RenameFolder(ctx context.Context, id uuid.UUID, name string) error
	RenameItem(ctx context.Context, id uuid.UUID, name string) error
	MoveFolder(ctx context.Context, id, parentID uuid.UUID) error
	MoveItem(ctx context.Context, id, parentID uuid.UUID) error
	RemoveFolder(ctx context.Context, id uuid.UUID) error
	RemoveItem(ctx context.Context, id uuid.UUID) error
	PurgeFolder(ctx context.Context, id uuid.UUID) error
	CopyLibraryFolder(ctx context.Context, sourceID, destinationID uuid.UUID, copySubfolders bool) error
	SlamFolderLinks(ctx context.Context, id uuid.UUID, links []models.NewLink) error

	FetchCurrentOutfit(ctx context.Context) error
	FetchFolderLinks(ctx context.Context, id uuid.UUID) error
	FetchFolderStructure(ctx context.Context, id uuid.UUID) error

	AddObserver(o Observer) ObserverHandle
	RemoveObserver(h ObserverHandle)
}
