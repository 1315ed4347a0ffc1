// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
)

type idSet map[uuid.UUID]struct{}

func (s idSet) sorted() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return out
}

// TreeStore is the in-memory inventory tree. It owns every node; other
// components hold ids and resolve them on each access, so a lookup of a
// removed node simply reports false.
//
// TreeStore is not safe for concurrent use. It belongs to the owner loop.
type TreeStore struct {
	folders      map[uuid.UUID]*models.Folder
	items        map[uuid.UUID]*models.Item
	childFolders map[uuid.UUID]idSet
	childItems   map[uuid.UUID]idSet

	// linksTo maps a target id to the links pointing at it.
	linksTo map[uuid.UUID]idSet
	// broken maps a missing target id to the links waiting for it.
	broken map[uuid.UUID]idSet
	// arrived lists targets of broken links that showed up since the last
	// TakeRebuildableLinks.
	arrived idSet

	rootID         uuid.UUID
	libraryRootID  uuid.UUID
	libraryOwnerID uuid.UUID

	sink ChangeSink
	log  *logger.Logger
}

// NewTreeStore returns an empty store recording changes into sink. A nil
// sink discards them.
func NewTreeStore(sink ChangeSink, log *logger.Logger) *TreeStore {
	if sink == nil {
		sink = discardSink{}
	}
	return &TreeStore{
		folders:      make(map[uuid.UUID]*models.Folder),
		items:        make(map[uuid.UUID]*models.Item),
		childFolders: make(map[uuid.UUID]idSet),
		childItems:   make(map[uuid.UUID]idSet),
		linksTo:      make(map[uuid.UUID]idSet),
		broken:       make(map[uuid.UUID]idSet),
		arrived:      make(idSet),
		sink:         sink,
		log:          log.Component("tree_store"),
	}
}

// SetRoots records the ids of the agent root, the library root and the
// library owner received at login. Nil values are left unchanged.
func (s *TreeStore) SetRoots(rootID, libraryRootID, libraryOwnerID uuid.UUID) {
	if rootID != uuid.Nil {
		s.rootID = rootID
	}
	if libraryRootID != uuid.Nil {
		s.libraryRootID = libraryRootID
	}
	if libraryOwnerID != uuid.Nil {
		s.libraryOwnerID = libraryOwnerID
	}
}

func (s *TreeStore) RootID() uuid.UUID        { return s.rootID }
func (s *TreeStore) LibraryRootID() uuid.UUID { return s.libraryRootID }

// LostAndFoundID returns the lost-and-found folder, falling back to the root
// when it is not known yet.
func (s *TreeStore) LostAndFoundID() uuid.UUID {
	if id, ok := s.FindCategoryForType(models.FolderLostAndFound); ok {
		return id
	}
	return s.rootID
}

// UpsertFolder inserts or replaces a folder and returns what changed. The
// local fetch state of an existing folder is kept.
func (s *TreeStore) UpsertFolder(f models.Folder) models.ChangeMask {
	if f.ID == uuid.Nil {
		s.log.Warn().Str("func", "TreeStore.UpsertFolder").Msg("folder with nil id ignored")
		return models.ChangeNone
	}

	if f.ParentID == uuid.Nil && f.PreferredType.IsRoot() {
		s.adoptRoot(f)
	}

	mask := models.ChangeNone
	existing, ok := s.folders[f.ID]
	if !ok {
		mask |= models.ChangeAdd
		s.attach(f.ParentID, f.ID, models.NodeFolder)
		s.noteArrival(f.ID)
	} else {
		f.Fetching = existing.Fetching
		if existing.ParentID != f.ParentID {
			mask |= models.ChangeStructure
			s.detach(existing.ParentID, f.ID, models.NodeFolder)
			s.attach(f.ParentID, f.ID, models.NodeFolder)
		}
		if existing.Name != f.Name {
			mask |= models.ChangeLabel
		}
		if *existing != f {
			mask |= models.ChangeInternal
		}
	}

	stored := f
	s.folders[f.ID] = &stored
	s.record(f.ID, mask)

	return mask
}

// UpsertItem inserts or replaces an item and returns what changed. An item
// with a nil parent is placed in lost-and-found. Re-receiving an item with
// the same content, parent and completeness changes nothing.
func (s *TreeStore) UpsertItem(it models.Item) models.ChangeMask {
	if it.ID == uuid.Nil {
		s.log.Warn().Str("func", "TreeStore.UpsertItem").Msg("item with nil id ignored")
		return models.ChangeNone
	}

	if it.ParentID == uuid.Nil {
		it.ParentID = s.LostAndFoundID()
		s.log.Warn().
			Str("func", "TreeStore.UpsertItem").
			Stringer("item_id", it.ID).
			Stringer("parent_id", it.ParentID).
			Msg("item has no parent, placed in lost and found")
	}
	it.Hash = hashOf(it)

	mask := models.ChangeNone
	existing, ok := s.items[it.ID]
	if !ok {
		mask |= models.ChangeAdd
		s.attach(it.ParentID, it.ID, models.NodeItem)
		s.noteArrival(it.ID)
	} else {
		if existing.ParentID != it.ParentID {
			mask |= models.ChangeStructure
			s.detach(existing.ParentID, it.ID, models.NodeItem)
			s.attach(it.ParentID, it.ID, models.NodeItem)
		}
		if existing.Name != it.Name {
			mask |= models.ChangeLabel
		}
		if existing.Hash != it.Hash || existing.Complete != it.Complete || mask != models.ChangeNone {
			mask |= models.ChangeInternal
		}
		if existing.IsLink() && existing.LinkedID != it.LinkedID {
			s.forgetLink(existing.ID, existing.LinkedID)
		}
	}

	if it.IsLink() {
		s.trackLink(it.ID, it.LinkedID)
	}

	stored := it
	s.items[it.ID] = &stored
	s.record(it.ID, mask)

	return mask
}

// Remove detaches a node from its parent and forgets it. A folder that still
// has children is left untouched and ErrFolderNotEmpty is returned.
func (s *TreeStore) Remove(id uuid.UUID) error {
	if f, ok := s.folders[id]; ok {
		if n := s.ViewerDescendentCount(id); n > 0 {
			s.log.Error().
				Str("func", "TreeStore.Remove").
				Stringer("category_id", id).
				Int32("children", n).
				Msg("folder removed while children remain")
			return fmt.Errorf("remove folder %s: %w", id, ErrFolderNotEmpty)
		}
		s.detach(f.ParentID, id, models.NodeFolder)
		delete(s.folders, id)
		delete(s.childFolders, id)
		delete(s.childItems, id)
		s.breakLinksTo(id)
		s.record(id, models.ChangeRemove)
		s.record(f.ParentID, models.ChangeInternal)
		return nil
	}

	if it, ok := s.items[id]; ok {
		s.detach(it.ParentID, id, models.NodeItem)
		delete(s.items, id)
		if it.IsLink() {
			s.forgetLink(id, it.LinkedID)
		} else {
			s.breakLinksTo(id)
		}
		s.record(id, models.ChangeRemove)
		s.record(it.ParentID, models.ChangeInternal)
		return nil
	}

	return fmt.Errorf("remove %s: %w", id, ErrNodeNotFound)
}

// Purge removes a node together with all of its descendants, bottom-up.
func (s *TreeStore) Purge(id uuid.UUID) error {
	kind := s.Kind(id)
	if kind == models.NodeUnknown {
		return fmt.Errorf("purge %s: %w", id, ErrNodeNotFound)
	}
	if kind == models.NodeFolder {
		s.purgeDescendents(id)
	}
	return s.Remove(id)
}

// PurgeDescendents removes everything below a folder, keeping the folder.
func (s *TreeStore) PurgeDescendents(id uuid.UUID) error {
	if _, ok := s.folders[id]; !ok {
		return fmt.Errorf("purge descendents of %s: %w", id, ErrNodeNotFound)
	}
	s.purgeDescendents(id)
	return nil
}

func (s *TreeStore) purgeDescendents(id uuid.UUID) {
	for _, child := range s.ChildFolders(id) {
		s.purgeDescendents(child)
		_ = s.Remove(child)
	}
	for _, child := range s.ChildItems(id) {
		_ = s.Remove(child)
	}
}

// AccountForUpdate applies a known descendant delta to a folder. It is a
// no-op returning an error when the folder is unknown, its version is
// unknown, or its server and viewer counts already disagree.
func (s *TreeStore) AccountForUpdate(folderID uuid.UUID, delta int32, bumpVersion bool) error {
	log := s.log.With().
		Str("func", "TreeStore.AccountForUpdate").
		Stringer("category_id", folderID).
		Int32("delta", delta).
		Logger()

	f, ok := s.folders[folderID]
	if !ok {
		log.Warn().Msg("accounting for unknown folder")
		return fmt.Errorf("account for %s: %w", folderID, ErrNodeNotFound)
	}
	if f.IsVersionUnknown() {
		log.Warn().Msg("accounting for folder with unknown version")
		return fmt.Errorf("account for %s: %w", folderID, ErrVersionUnknown)
	}

	viewer := s.ViewerDescendentCount(folderID)
	if f.DescendentCount != viewer {
		log.Warn().
			Int32("server", f.DescendentCount).
			Int32("viewer", viewer).
			Msg("accounting skipped, descendent counts already differ")
		return fmt.Errorf("account for %s: %w", folderID, ErrAccountingMismatch)
	}

	f.DescendentCount = viewer + delta
	if bumpVersion {
		f.Version++
	}
	s.record(folderID, models.ChangeInternal)

	return nil
}

func (s *TreeStore) Folder(id uuid.UUID) (models.Folder, bool) {
	f, ok := s.folders[id]
	if !ok {
		return models.Folder{}, false
	}
	return *f, true
}

func (s *TreeStore) Item(id uuid.UUID) (models.Item, bool) {
	it, ok := s.items[id]
	if !ok {
		return models.Item{}, false
	}
	return *it, true
}

// Kind tells whether id names a folder, an item or nothing known.
func (s *TreeStore) Kind(id uuid.UUID) models.NodeKind {
	if _, ok := s.folders[id]; ok {
		return models.NodeFolder
	}
	if _, ok := s.items[id]; ok {
		return models.NodeItem
	}
	return models.NodeUnknown
}

// ParentOf returns the parent of any node.
func (s *TreeStore) ParentOf(id uuid.UUID) (uuid.UUID, bool) {
	if f, ok := s.folders[id]; ok {
		return f.ParentID, true
	}
	if it, ok := s.items[id]; ok {
		return it.ParentID, true
	}
	return uuid.Nil, false
}

func (s *TreeStore) ChildFolders(id uuid.UUID) []uuid.UUID {
	return s.childFolders[id].sorted()
}

func (s *TreeStore) ChildItems(id uuid.UUID) []uuid.UUID {
	return s.childItems[id].sorted()
}

// EachChildFolder yields the direct child folders of id in no particular
// order without copying. The tree must not change while iterating.
func (s *TreeStore) EachChildFolder(id uuid.UUID) iter.Seq[uuid.UUID] {
	return maps.Keys(s.childFolders[id])
}

// EachChildItem is the item counterpart of EachChildFolder.
func (s *TreeStore) EachChildItem(id uuid.UUID) iter.Seq[uuid.UUID] {
	return maps.Keys(s.childItems[id])
}

// ViewerDescendentCount is the number of direct children present locally.
func (s *TreeStore) ViewerDescendentCount(id uuid.UUID) int32 {
	return int32(len(s.childFolders[id]) + len(s.childItems[id]))
}

// IsComplete reports whether the folder's version is known and its server
// descendant count matches what is present locally.
func (s *TreeStore) IsComplete(id uuid.UUID) bool {
	f, ok := s.folders[id]
	if !ok || f.IsVersionUnknown() {
		return false
	}
	return f.DescendentCount == s.ViewerDescendentCount(id)
}

// IsDescendentOf reports whether id lies strictly below ancestor.
func (s *TreeStore) IsDescendentOf(id, ancestor uuid.UUID) bool {
	parent, ok := s.ParentOf(id)
	for depth := 0; ok && parent != uuid.Nil; depth++ {
		if parent == ancestor {
			return true
		}
		if depth > len(s.folders) {
			s.log.Error().Str("func", "TreeStore.IsDescendentOf").Stringer("category_id", id).Msg("parent cycle detected")
			return false
		}
		parent, ok = s.ParentOf(parent)
	}
	return false
}

// IsInLibrary reports whether id is the library root or lies below it.
func (s *TreeStore) IsInLibrary(id uuid.UUID) bool {
	if s.libraryRootID == uuid.Nil {
		return false
	}
	return id == s.libraryRootID || s.IsDescendentOf(id, s.libraryRootID)
}

// FindCategoryForType returns the folder of the given preferred type that
// lives directly under the agent root. Of several such folders the lowest
// id wins.
func (s *TreeStore) FindCategoryForType(t models.FolderType) (uuid.UUID, bool) {
	if t == models.FolderRoot {
		return s.rootID, s.rootID != uuid.Nil
	}
	found := uuid.Nil
	for id := range s.EachChildFolder(s.rootID) {
		if s.folders[id].PreferredType != t {
			continue
		}
		if found == uuid.Nil || bytes.Compare(id[:], found[:]) < 0 {
			found = id
		}
	}
	return found, found != uuid.Nil
}

// SetFetching records which listing of the folder is in flight.
func (s *TreeStore) SetFetching(id uuid.UUID, state models.FetchState) {
	if f, ok := s.folders[id]; ok {
		f.Fetching = state
	}
}

// SetVersion overwrites the folder version with the server's.
func (s *TreeStore) SetVersion(id uuid.UUID, version int32) {
	if f, ok := s.folders[id]; ok && f.Version != version {
		f.Version = version
		s.record(id, models.ChangeInternal)
	}
}

func (s *TreeStore) SetDescendentCount(id uuid.UUID, count int32) {
	if f, ok := s.folders[id]; ok && f.DescendentCount != count {
		f.DescendentCount = count
		s.record(id, models.ChangeInternal)
	}
}

// Len returns the number of folders and items held.
func (s *TreeStore) Len() (folders, items int) {
	return len(s.folders), len(s.items)
}

// Snapshot copies the whole tree for persistence. Fetch states are reset.
func (s *TreeStore) Snapshot(formatVersion int) models.CacheSnapshot {
	snap := models.CacheSnapshot{
		FormatVersion: formatVersion,
		Folders:       make([]models.Folder, 0, len(s.folders)),
		Items:         make([]models.Item, 0, len(s.items)),
	}
	for _, f := range s.folders {
		c := *f
		c.Fetching = models.FetchingNone
		snap.Folders = append(snap.Folders, c)
	}
	for _, it := range s.items {
		snap.Items = append(snap.Items, *it)
	}
	return snap
}

func (s *TreeStore) adoptRoot(f models.Folder) {
	switch {
	case s.libraryOwnerID != uuid.Nil && f.OwnerID == s.libraryOwnerID:
		if s.libraryRootID == uuid.Nil {
			s.libraryRootID = f.ID
		}
	case s.rootID == uuid.Nil && f.ID != s.libraryRootID:
		s.rootID = f.ID
	}
}

func (s *TreeStore) attach(parent, id uuid.UUID, kind models.NodeKind) {
	index := s.childItems
	if kind == models.NodeFolder {
		index = s.childFolders
	}
	set, ok := index[parent]
	if !ok {
		set = make(idSet)
		index[parent] = set
	}
	set[id] = struct{}{}
}

func (s *TreeStore) detach(parent, id uuid.UUID, kind models.NodeKind) {
	index := s.childItems
	if kind == models.NodeFolder {
		index = s.childFolders
	}
	if set, ok := index[parent]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(index, parent)
		}
	}
}

func (s *TreeStore) record(id uuid.UUID, mask models.ChangeMask) {
	if id == uuid.Nil || mask == models.ChangeNone {
		return
	}
	s.sink.AddChanged(id, mask)
}

func hashOf(it models.Item) string {
	return utils.ContentHash(it.ContentFields())
}

type discardSink struct{}

func (discardSink) AddChanged(uuid.UUID, models.ChangeMask) {}
