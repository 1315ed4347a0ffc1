// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// BuildTree replaces the store content with the given nodes in one pass and
// links every node to its parent. A node whose parent is missing is moved:
// root-typed folders stay parentless, other protected folders go under the
// root, everything else goes to lost-and-found. Each move is logged and
// returned so it can be pushed to the server.
//
// No per-node change is recorded; callers announce a full refresh instead.
func (s *TreeStore) BuildTree(folders []models.Folder, items []models.Item) []models.Relocation {
	clear(s.folders)
	clear(s.items)
	clear(s.childFolders)
	clear(s.childItems)
	clear(s.linksTo)
	clear(s.broken)
	clear(s.arrived)

	for i := range folders {
		f := folders[i]
		if f.ID == uuid.Nil {
			continue
		}
		if f.ParentID == uuid.Nil && f.PreferredType.IsRoot() {
			s.adoptRoot(f)
		}
		s.folders[f.ID] = &f
	}

	lostAndFound := s.findLostAndFound()

	var moved []models.Relocation
	for _, id := range sortedKeys(s.folders) {
		f := s.folders[id]
		if f.ParentID == uuid.Nil && f.PreferredType.IsRoot() {
			continue
		}
		if _, ok := s.folders[f.ParentID]; !ok || f.ParentID == f.ID {
			newParent := s.lostFolderDestination(f, lostAndFound)
			moved = append(moved, s.relocated(f.ID, models.NodeFolder, f.ParentID, newParent))
			f.ParentID = newParent
			if newParent == uuid.Nil {
				continue
			}
		}
		s.attach(f.ParentID, f.ID, models.NodeFolder)
	}

	for i := range items {
		it := items[i]
		if it.ID == uuid.Nil {
			continue
		}
		if _, ok := s.folders[it.ParentID]; !ok {
			newParent := lostAndFound
			if newParent == uuid.Nil {
				newParent = s.rootID
			}
			moved = append(moved, s.relocated(it.ID, models.NodeItem, it.ParentID, newParent))
			it.ParentID = newParent
		}
		it.Hash = hashOf(it)
		s.items[it.ID] = &it
		s.attach(it.ParentID, it.ID, models.NodeItem)
	}

	for _, it := range s.items {
		if it.IsLink() {
			s.trackLink(it.ID, it.LinkedID)
		}
	}

	return moved
}

func (s *TreeStore) findLostAndFound() uuid.UUID {
	if s.rootID == uuid.Nil {
		return uuid.Nil
	}
	for _, f := range s.folders {
		if f.PreferredType == models.FolderLostAndFound && f.ParentID == s.rootID {
			return f.ID
		}
	}
	return uuid.Nil
}

func (s *TreeStore) lostFolderDestination(f *models.Folder, lostAndFound uuid.UUID) uuid.UUID {
	switch {
	case f.PreferredType.IsRoot():
		return uuid.Nil
	case f.PreferredType.IsProtected() || lostAndFound == uuid.Nil || lostAndFound == f.ID:
		return s.rootID
	default:
		return lostAndFound
	}
}

func (s *TreeStore) relocated(id uuid.UUID, kind models.NodeKind, from, to uuid.UUID) models.Relocation {
	s.log.Warn().
		Str("func", "TreeStore.BuildTree").
		Stringer("id", id).
		Stringer("missing_parent_id", from).
		Stringer("new_parent_id", to).
		Msg("node has no parent in the tree, relocated")

	return models.Relocation{ID: id, Kind: kind, OldParentID: from, NewParentID: to}
}

func sortedKeys[V any](m map[uuid.UUID]V) []uuid.UUID {
	set := make(idSet, len(m))
	for id := range m {
		set[id] = struct{}{}
	}
	return set.sorted()
}
