// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// stepLegacy batches queued requests into descendents and item requests
// for servers without the inventory service.
func (s *FetchScheduler) stepLegacy(ctx context.Context) {
	if !s.legacySlotFree() {
		return
	}

	retry := s.legacyRetry
	s.legacyRetry = nil
	for i, call := range retry {
		if !s.legacySlotFree() {
			s.legacyRetry = append(s.legacyRetry, retry[i:]...)
			return
		}
		s.sendLegacyFolders(ctx, call.library, call.legacy, call.recursive)
	}
	if !s.legacySlotFree() {
		return
	}

	var (
		body, libBody   models.LegacyFolderRequest
		items, libItems []models.LegacyItemRef
		count           int
	)
	recursive := make(map[uuid.UUID]struct{})
	seen := make(map[uuid.UUID]struct{})

	for s.folders.len() > 0 && count < s.legacyBatchSize {
		req, _ := s.folders.pop()
		if _, dup := seen[req.ID]; dup {
			continue
		}
		seen[req.ID] = struct{}{}

		walk := req.Mode == models.FetchRecursive || req.Mode == models.FetchFolderAndContent || req.Mode == models.FetchContentRecursive
		if walk {
			recursive[req.ID] = struct{}{}
		}

		if req.ID == uuid.Nil {
			if s.orphansInFlight {
				continue
			}
			body.Folders = append(body.Folders, models.LegacyFolderRef{OwnerID: s.agentID, FetchItems: true})
			count++
			continue
		}

		f, ok := s.store.Folder(req.ID)
		if !ok {
			continue
		}
		if f.IsVersionUnknown() {
			if f.Fetching != models.FetchingNone {
				continue
			}
			ref := models.LegacyFolderRef{FolderID: f.ID, OwnerID: f.OwnerID, FetchFolders: true, FetchItems: true}
			if s.store.IsInLibrary(f.ID) {
				libBody.Folders = append(libBody.Folders, ref)
			} else {
				body.Folders = append(body.Folders, ref)
			}
			count++
			continue
		}
		if walk {
			for _, child := range s.store.ChildFolders(f.ID) {
				s.folders.pushBack(models.FetchRequest{ID: child, Kind: models.FetchKindFolder, Mode: req.Mode})
			}
		}
	}

	for s.items.len() > 0 && count < s.legacyBatchSize {
		req, _ := s.items.pop()
		it, ok := s.store.Item(req.ID)
		if !ok {
			continue
		}
		ref := models.LegacyItemRef{OwnerID: it.OwnerID, ItemID: it.ID}
		if s.store.IsInLibrary(it.ID) {
			libItems = append(libItems, ref)
		} else {
			items = append(items, ref)
		}
		count++
	}

	if len(body.Folders) > 0 {
		s.sendLegacyFolders(ctx, false, body, recursive)
	}
	if len(libBody.Folders) > 0 {
		s.sendLegacyFolders(ctx, true, libBody, recursive)
	}
	if len(items) > 0 {
		s.sendLegacyItems(ctx, false, items)
	}
	if len(libItems) > 0 {
		s.sendLegacyItems(ctx, true, libItems)
	}
}

func (s *FetchScheduler) sendLegacyFolders(ctx context.Context, library bool, body models.LegacyFolderRequest, recursive map[uuid.UUID]struct{}) {
	callID, err := s.api.LegacyFetchFolders(ctx, library, body)
	if err != nil {
		s.log.Err(err).
			Str("func", "FetchScheduler.sendLegacyFolders").
			Bool("library", library).
			Int("folders", len(body.Folders)).
			Msg("descendents request not sent")
		// Retried halves arrive still marked.
		s.releaseLegacyFolders(fetchCall{legacy: body})
		return
	}

	// Only the recursive flags of this batch travel with it.
	own := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(body.Folders))
	for _, ref := range body.Folders {
		state := models.FetchingNormal
		if _, ok := recursive[ref.FolderID]; ok {
			own[ref.FolderID] = struct{}{}
			state = models.FetchingRecursive
		}
		if ref.FolderID == uuid.Nil {
			s.orphansInFlight = true
			continue
		}
		s.store.SetFetching(ref.FolderID, state)
		ids = append(ids, ref.FolderID)
	}

	s.fetchCount++
	s.folderCount++
	s.calls[callID] = fetchCall{kind: callLegacyFolders, library: library, legacy: body, recursive: own, children: ids}
}

func (s *FetchScheduler) legacySlotFree() bool {
	return s.fetchCount < s.legacyMaxConcurrent
}

// releaseLegacyFolders clears the in-flight marks of a descendents batch.
func (s *FetchScheduler) releaseLegacyFolders(call fetchCall) {
	for _, ref := range call.legacy.Folders {
		if ref.FolderID == uuid.Nil {
			s.orphansInFlight = false
			continue
		}
		s.store.SetFetching(ref.FolderID, models.FetchingNone)
	}
}

func (s *FetchScheduler) sendLegacyItems(ctx context.Context, library bool, refs []models.LegacyItemRef) {
	callID, err := s.api.LegacyFetchItems(ctx, library, models.LegacyItemRequest{AgentID: s.agentID, Items: refs})
	if err != nil {
		s.log.Err(err).Str("func", "FetchScheduler.sendLegacyItems").Bool("library", library).Msg("item request not sent")
		return
	}
	s.fetchCount++
	s.calls[callID] = fetchCall{kind: callLegacyItems, library: library}
}

func (s *FetchScheduler) onLegacyFolders(call fetchCall, c adapter.Completion) {
	if c.Err != nil {
		s.onLegacyFoldersFailed(call, c.Err)
		return
	}
	if c.Legacy == nil || c.Legacy.Folders == nil {
		s.onLegacyFoldersFailed(call, adapter.ErrMalformed)
		return
	}
	s.releaseLegacyFolders(call)

	reply := c.Legacy.Folders
	for _, content := range reply.Folders {
		if content.FolderID == nil || *content.FolderID == uuid.Nil {
			s.adoptOrphans(content.Items)
			continue
		}
		s.applyLegacyFolder(*content.FolderID, content, call.recursive)
	}

	for _, bad := range reply.BadFolders {
		s.log.Warn().
			Str("func", "FetchScheduler.onLegacyFolders").
			Stringer("category_id", bad.FolderID).
			Str("error", bad.Error).
			Msg("folder failed on the server")
	}
}

// onLegacyFoldersFailed splits a batch rejected as too large in two, and
// queues a batch that came back unreadable again. Other failures are left
// to the next fetch.
func (s *FetchScheduler) onLegacyFoldersFailed(call fetchCall, err error) {
	log := s.log.With().Str("func", "FetchScheduler.onLegacyFoldersFailed").Int("folders", len(call.legacy.Folders)).Logger()

	switch {
	case errors.Is(err, adapter.ErrForbidden):
		folders := call.legacy.Folders
		if len(folders) <= 1 {
			var id uuid.UUID
			if len(folders) == 1 {
				id = folders[0].FolderID
			}
			s.releaseLegacyFolders(call)
			s.limitReached(id)
			return
		}
		// The halves stay marked in flight until they are sent again.
		half := len(folders) / 2
		for _, part := range [][]models.LegacyFolderRef{folders[:half], folders[half:]} {
			split := call
			split.legacy = models.LegacyFolderRequest{Folders: part}
			split.children = nil
			s.legacyRetry = append(s.legacyRetry, split)
		}
		s.backgroundActive = true
		log.Warn().Msg("descendents request too large, split in two")

	case errors.Is(err, adapter.ErrMalformed):
		s.releaseLegacyFolders(call)
		for _, ref := range call.legacy.Folders {
			mode := models.FetchDefault
			if _, ok := call.recursive[ref.FolderID]; ok {
				mode = models.FetchRecursive
			}
			s.folders.pushFront(models.FetchRequest{ID: ref.FolderID, Kind: models.FetchKindFolder, Mode: mode})
		}
		log.Warn().Msg("descendents reply unreadable, folders queued again")

	default:
		s.releaseLegacyFolders(call)
		log.Err(err).Msg("descendents request failed")
	}
}

// adoptOrphans files parentless items under lost-and-found.
func (s *FetchScheduler) adoptOrphans(items []models.Item) {
	lostAndFound := s.store.LostAndFoundID()
	if lostAndFound == uuid.Nil {
		return
	}
	for _, it := range items {
		s.relocations = append(s.relocations, models.Relocation{
			ID:          it.ID,
			Kind:        models.NodeItem,
			OldParentID: it.ParentID,
			NewParentID: lostAndFound,
		})
		_ = s.store.AccountForUpdate(lostAndFound, 1, true)
		it.ParentID = lostAndFound
		it.Complete = true
		s.store.UpsertItem(it)
	}
}

func (s *FetchScheduler) applyLegacyFolder(id uuid.UUID, content models.LegacyFolderContent, recursive map[uuid.UUID]struct{}) {
	if _, ok := s.store.Folder(id); !ok {
		return
	}
	_, walk := recursive[id]

	for _, cat := range content.Categories {
		if !s.store.IsComplete(cat.CategoryID) {
			f, seen := s.store.Folder(cat.CategoryID)
			if !seen {
				f = models.NewFolder(cat.CategoryID, cat.ParentID, cat.Name, cat.TypeDefault)
				f.OwnerID = content.OwnerID
			} else {
				f.ParentID, f.Name, f.PreferredType = cat.ParentID, cat.Name, cat.TypeDefault
			}
			s.store.UpsertFolder(f)
		}
		if walk {
			s.folders.pushBack(models.FetchRequest{ID: cat.CategoryID, Kind: models.FetchKindFolder, Mode: models.FetchRecursive})
		}
	}

	if content.Items == nil {
		return
	}
	for _, it := range content.Items {
		it.Complete = true
		s.store.UpsertItem(it)
	}
	s.store.SetVersion(id, content.Version)
	s.store.SetDescendentCount(id, content.Descendents)
}

func (s *FetchScheduler) onLegacyItems(c adapter.Completion) {
	if c.Err != nil || c.Legacy == nil || c.Legacy.Items == nil {
		s.log.Warn().Err(c.Err).Str("func", "FetchScheduler.onLegacyItems").Msg("item request failed")
		return
	}
	for _, it := range c.Legacy.Items.Items {
		it.Complete = true
		s.store.UpsertItem(it)
	}
	for _, id := range c.Legacy.Items.BadItems {
		s.log.Warn().Str("func", "FetchScheduler.onLegacyItems").Stringer("item_id", id).Msg("item failed on the server")
	}
}
