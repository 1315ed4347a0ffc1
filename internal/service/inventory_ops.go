// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// Fetch queues a background fetch of a folder or item. A nil id fetches
// both roots.
func (s *Inventory) Fetch(id uuid.UUID, recursive bool) {
	s.scheduler.Start(id, recursive)
}

// ForceRefetch lists a folder again, or fetches an item again, even when
// its version is known.
func (s *Inventory) ForceRefetch(id uuid.UUID) {
	switch s.store.Kind(id) {
	case models.NodeFolder:
		s.scheduler.ForceFetchFolder(id)
	case models.NodeItem:
		s.scheduler.ForceFetchItem(id)
	}
}

func (s *Inventory) ForceFetchItem(id uuid.UUID) {
	s.scheduler.ForceFetchItem(id)
}

// FindLostItems asks the server for items without a valid parent.
func (s *Inventory) FindLostItems() {
	s.scheduler.FindLostItems()
}

func (s *Inventory) IsEverythingFetched() bool {
	return s.scheduler.IsEverythingFetched()
}

func (s *Inventory) IsBackgroundFetchActive() bool {
	return s.scheduler.IsBackgroundFetchActive()
}

// FindCategoryUUIDForType returns the system folder of type t, creating it
// under the root when asked. A folder requested earlier and not confirmed
// yet is returned instead of being created twice.
func (s *Inventory) FindCategoryUUIDForType(ctx context.Context, t models.FolderType, createIfMissing bool) (uuid.UUID, error) {
	if id, ok := s.store.FindCategoryForType(t); ok {
		delete(s.creating, t)
		return id, nil
	}
	if id, ok := s.creating[t]; ok {
		return id, nil
	}
	if !createIfMissing || t.IsRoot() {
		return uuid.Nil, fmt.Errorf("no folder of type %s: %w", t, ErrUnknownFolder)
	}

	root := s.store.RootID()
	if root == uuid.Nil {
		return uuid.Nil, ErrNotLoaded
	}
	id, err := s.CreateFolder(ctx, root, t.String(), t)
	if err != nil {
		return uuid.Nil, err
	}
	s.creating[t] = id

	return id, nil
}

// CreateFolder creates a folder under parentID and returns its id. The
// folder appears locally when the server confirms it. Without the inventory
// service the legacy message is sent and the folder is added at once.
func (s *Inventory) CreateFolder(ctx context.Context, parentID uuid.UUID, name string, preferred models.FolderType) (uuid.UUID, error) {
	if err := s.checkConnected(); err != nil {
		return uuid.Nil, err
	}
	if _, ok := s.store.Folder(parentID); !ok {
		return uuid.Nil, fmt.Errorf("create folder in %s: %w", parentID, ErrUnknownFolder)
	}

	id := s.ids.Generate()
	log := s.log.With().Str("func", "Inventory.CreateFolder").Stringer("category_id", id).Stringer("parent_id", parentID).Logger()

	if s.api.AISAvailable(false) {
		body := models.NewInventory{Categories: []models.NewCategory{{CategoryID: id, Name: name, TypeDefault: preferred}}}
		callID, err := s.api.CreateInventory(ctx, parentID, body)
		if err != nil {
			return uuid.Nil, fmt.Errorf("create folder: %w", err)
		}
		s.callbacks[callID] = func(c adapter.Completion) {
			if c.Err == nil {
				return
			}
			delete(s.creating, preferred)
			log.Err(c.Err).Msg("folder creation failed")
			if s.notifier != nil {
				s.notifier.Notify(AlertCreateFolderFailed, map[string]string{"name": name})
			}
		}
		return id, nil
	}

	if s.messages == nil {
		return uuid.Nil, ErrNoCapability
	}

	f := models.NewFolder(id, parentID, name, preferred)
	f.OwnerID = s.app.AgentID
	f.Version = models.VersionInitial
	f.DescendentCount = 0
	if err := s.messages.SendCreateFolder(ctx, f); err != nil {
		return uuid.Nil, fmt.Errorf("create folder: %w", err)
	}
	_ = s.store.AccountForUpdate(parentID, 1, true)
	s.store.UpsertFolder(f)
	log.Debug().Msg("folder created with legacy message")

	return id, nil
}

func (s *Inventory) RenameFolder(ctx context.Context, id uuid.UUID, name string) error {
	f, err := s.mutableFolder(id)
	if err != nil {
		return err
	}
	if f.Name == name {
		return nil
	}
	_, err = s.api.UpdateCategory(ctx, id, models.CategoryPatch{Name: &name})
	return wrapCall("rename folder", err)
}

func (s *Inventory) RenameItem(ctx context.Context, id uuid.UUID, name string) error {
	it, err := s.knownItem(id)
	if err != nil {
		return err
	}
	if it.Name == name {
		return nil
	}
	_, err = s.api.UpdateItem(ctx, id, models.ItemPatch{Name: &name})
	return wrapCall("rename item", err)
}

// MoveFolder reparents a folder. Moving a folder below itself is refused.
func (s *Inventory) MoveFolder(ctx context.Context, id, parentID uuid.UUID) error {
	if _, err := s.mutableFolder(id); err != nil {
		return err
	}
	if _, ok := s.store.Folder(parentID); !ok {
		return fmt.Errorf("move folder to %s: %w", parentID, ErrUnknownFolder)
	}
	if parentID == id || s.store.IsDescendentOf(parentID, id) {
		return fmt.Errorf("move folder %s below itself: %w", id, ErrInvalidMove)
	}
	_, err := s.api.UpdateCategory(ctx, id, models.CategoryPatch{ParentID: &parentID})
	return wrapCall("move folder", err)
}

func (s *Inventory) MoveItem(ctx context.Context, id, parentID uuid.UUID) error {
	if _, err := s.knownItem(id); err != nil {
		return err
	}
	if _, ok := s.store.Folder(parentID); !ok {
		return fmt.Errorf("move item to %s: %w", parentID, ErrUnknownFolder)
	}
	_, err := s.api.UpdateItem(ctx, id, models.ItemPatch{ParentID: &parentID})
	return wrapCall("move item", err)
}

// RemoveFolder deletes a folder and its content on the server. The local
// tree follows the reply.
func (s *Inventory) RemoveFolder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mutableFolder(id); err != nil {
		return err
	}
	_, err := s.api.RemoveCategory(ctx, id)
	return wrapCall("remove folder", err)
}

func (s *Inventory) RemoveItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.knownItem(id); err != nil {
		return err
	}
	_, err := s.api.RemoveItem(ctx, id)
	return wrapCall("remove item", err)
}

// PurgeFolder deletes everything below a folder, typically the trash.
func (s *Inventory) PurgeFolder(ctx context.Context, id uuid.UUID) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if _, ok := s.store.Folder(id); !ok {
		return fmt.Errorf("purge %s: %w", id, ErrUnknownFolder)
	}

	callID, err := s.api.PurgeDescendents(ctx, id)
	if err != nil {
		return wrapCall("purge folder", err)
	}
	s.callbacks[callID] = func(c adapter.Completion) {
		// A reply that did not list the removed content still means the
		// folder is empty now.
		if c.Err != nil || s.store.ViewerDescendentCount(id) == 0 {
			return
		}
		if err := s.store.PurgeDescendents(id); err != nil {
			s.log.Err(err).Str("func", "Inventory.PurgeFolder").Stringer("category_id", id).Msg("local purge failed")
			return
		}
		s.store.SetDescendentCount(id, 0)
	}
	return nil
}

// CopyLibraryFolder copies a library folder into the agent's inventory.
// Without copySubfolders only the folder's own items are copied. The copy
// appears locally when the server reply is applied.
func (s *Inventory) CopyLibraryFolder(ctx context.Context, sourceID, destinationID uuid.UUID, copySubfolders bool) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if _, ok := s.store.Folder(sourceID); !ok || !s.store.IsInLibrary(sourceID) {
		return fmt.Errorf("copy library folder %s: %w", sourceID, ErrUnknownFolder)
	}
	if _, ok := s.store.Folder(destinationID); !ok {
		return fmt.Errorf("copy library folder to %s: %w", destinationID, ErrUnknownFolder)
	}
	if s.store.IsInLibrary(destinationID) {
		return fmt.Errorf("copy library folder into the library: %w", ErrInvalidMove)
	}
	if !s.api.AISAvailable(true) {
		return ErrNoCapability
	}

	callID, err := s.api.CopyLibraryCategory(ctx, sourceID, destinationID, copySubfolders)
	if err != nil {
		return wrapCall("copy library folder", err)
	}
	s.callbacks[callID] = func(c adapter.Completion) {
		if c.Err == nil {
			return
		}
		s.log.Err(c.Err).
			Str("func", "Inventory.CopyLibraryFolder").
			Stringer("category_id", sourceID).
			Stringer("parent_id", destinationID).
			Msg("library folder not copied")
		// The destination may hold part of the copy.
		s.scheduler.ForceFetchFolder(destinationID)
	}
	return nil
}

// SlamFolderLinks replaces every link in a folder, usually an outfit, with
// links.
func (s *Inventory) SlamFolderLinks(ctx context.Context, id uuid.UUID, links []models.NewLink) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if _, ok := s.store.Folder(id); !ok {
		return fmt.Errorf("slam folder %s: %w", id, ErrUnknownFolder)
	}
	_, err := s.api.SlamFolder(ctx, id, models.LinkSet{Links: links})
	return wrapCall("slam folder", err)
}

// FetchCurrentOutfit lists the links of the current outfit folder together
// with the items they point at.
func (s *Inventory) FetchCurrentOutfit(ctx context.Context) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if !s.api.AISAvailable(false) {
		return ErrNoCapability
	}
	_, err := s.api.FetchCOF(ctx)
	return wrapCall("fetch current outfit", err)
}

// FetchFolderLinks lists the links of a folder together with their targets.
func (s *Inventory) FetchFolderLinks(ctx context.Context, id uuid.UUID) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if _, ok := s.store.Folder(id); !ok {
		return fmt.Errorf("fetch links of %s: %w", id, ErrUnknownFolder)
	}
	if !s.api.AISAvailable(false) {
		return ErrNoCapability
	}
	_, err := s.api.FetchLinks(ctx, id)
	return wrapCall("fetch folder links", err)
}

// FetchFolderStructure lists the folders below id without their items.
// Versions stay unknown, so the background fetch still lists each folder.
func (s *Inventory) FetchFolderStructure(ctx context.Context, id uuid.UUID) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if _, ok := s.store.Folder(id); !ok {
		return fmt.Errorf("fetch structure of %s: %w", id, ErrUnknownFolder)
	}
	library := s.store.IsInLibrary(id)
	if !s.api.AISAvailable(library) {
		return ErrNoCapability
	}
	_, err := s.api.FetchCategoryCategories(ctx, id, library, adapter.MaxFolderDepthRequest)
	return wrapCall("fetch folder structure", err)
}

func (s *Inventory) checkConnected() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.disconnected {
		return ErrDisconnected
	}
	return nil
}

// mutableFolder returns a folder the user may rename, move or delete.
func (s *Inventory) mutableFolder(id uuid.UUID) (models.Folder, error) {
	if err := s.checkConnected(); err != nil {
		return models.Folder{}, err
	}
	f, ok := s.store.Folder(id)
	if !ok {
		return models.Folder{}, fmt.Errorf("folder %s: %w", id, ErrUnknownFolder)
	}
	if f.PreferredType.IsProtected() {
		return models.Folder{}, fmt.Errorf("folder %s: %w", id, ErrProtectedFolder)
	}
	return f, nil
}

func (s *Inventory) knownItem(id uuid.UUID) (models.Item, error) {
	if err := s.checkConnected(); err != nil {
		return models.Item{}, err
	}
	it, ok := s.store.Item(id)
	if !ok {
		return models.Item{}, fmt.Errorf("item %s: %w", id, ErrUnknownItem)
	}
	return it, nil
}

func wrapCall(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
