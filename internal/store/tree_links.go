// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

func (s *TreeStore) exists(id uuid.UUID) bool {
	return s.Kind(id) != models.NodeUnknown
}

func (s *TreeStore) trackLink(linkID, target uuid.UUID) {
	addTo(s.linksTo, target, linkID)
	if !s.exists(target) {
		addTo(s.broken, target, linkID)
	}
}

func (s *TreeStore) forgetLink(linkID, target uuid.UUID) {
	removeFrom(s.linksTo, target, linkID)
	removeFrom(s.broken, target, linkID)
}

// breakLinksTo marks every link pointing at a removed node as broken.
func (s *TreeStore) breakLinksTo(target uuid.UUID) {
	for linkID := range s.linksTo[target] {
		addTo(s.broken, target, linkID)
	}
	delete(s.arrived, target)
}

// noteArrival remembers that a node some broken links were waiting for is
// now present.
func (s *TreeStore) noteArrival(id uuid.UUID) {
	if _, waiting := s.broken[id]; waiting {
		s.arrived[id] = struct{}{}
	}
}

// LinksTo returns the links pointing at target, broken or not.
func (s *TreeStore) LinksTo(target uuid.UUID) []uuid.UUID {
	return s.linksTo[target].sorted()
}

// BrokenLinks returns every link whose target is absent.
func (s *TreeStore) BrokenLinks() []uuid.UUID {
	var out []uuid.UUID
	for _, links := range s.broken {
		out = append(out, links.sorted()...)
	}
	return out
}

// IsBrokenLink reports whether linkID is a link whose target is absent.
func (s *TreeStore) IsBrokenLink(linkID uuid.UUID) bool {
	it, ok := s.items[linkID]
	if !ok || !it.IsLink() {
		return false
	}
	_, broken := s.broken[it.LinkedID][linkID]
	return broken
}

// TakeRebuildableLinks repairs the links whose target arrived since the
// previous call, records ChangeRebuild for each, and returns them.
func (s *TreeStore) TakeRebuildableLinks() []uuid.UUID {
	if len(s.arrived) == 0 {
		return nil
	}

	var repaired []uuid.UUID
	for _, target := range s.arrived.sorted() {
		repaired = append(repaired, s.repair(target)...)
	}
	clear(s.arrived)

	return repaired
}

// RebuildBrokenLinks checks every broken link against the tree and repairs
// those whose target is present. It returns the number of repaired links.
func (s *TreeStore) RebuildBrokenLinks() int {
	repaired := 0
	for target := range s.broken {
		if s.exists(target) {
			repaired += len(s.repair(target))
		}
	}
	clear(s.arrived)
	return repaired
}

func (s *TreeStore) repair(target uuid.UUID) []uuid.UUID {
	links := s.broken[target].sorted()
	delete(s.broken, target)
	for _, linkID := range links {
		s.record(linkID, models.ChangeRebuild)
	}
	return links
}

func addTo(index map[uuid.UUID]idSet, key, id uuid.UUID) {
	set, ok := index[key]
	if !ok {
		set = make(idSet)
		index[key] = set
	}
	set[id] = struct{}{}
}

func removeFrom(index map[uuid.UUID]idSet, key, id uuid.UUID) {
	if set, ok := index[key]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(index, key)
		}
	}
}
