// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"slices"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// parsedUpdate is the work extracted from one inventory service reply,
// ready to be applied to the tree.
type parsedUpdate struct {
	command adapter.Command
	fetch   bool

	// deltas holds the descendant count change per parent folder. A zero
	// entry still asks for a version bump when the reply declares one.
	deltas map[uuid.UUID]int32
	// countsKnown holds the descendant counts the reply fully describes.
	countsKnown map[uuid.UUID]int32
	// versions is the reply's _updated_category_versions.
	versions map[uuid.UUID]int32

	createdFolders map[uuid.UUID]models.Folder
	updatedFolders map[uuid.UUID]models.Folder
	createdItems   map[uuid.UUID]models.Item
	updatedItems   map[uuid.UUID]models.Item
	lostItems      map[uuid.UUID]struct{}
	deleted        map[uuid.UUID]struct{}

	createdItemIDs   map[uuid.UUID]struct{}
	createdFolderIDs map[uuid.UUID]struct{}

	malformed int
}

type updateParser struct {
	store    *store.TreeStore
	notifier Notifier
	log      *logger.Logger
	out      *parsedUpdate
}

// parseUpdate extracts metadata first, then content, so the created-id
// filters are known when embedded entities are walked.
func parseUpdate(s *store.TreeStore, n Notifier, log *logger.Logger, cmd adapter.Command, upd *models.AISUpdate) *parsedUpdate {
	p := &updateParser{
		store:    s,
		notifier: n,
		log:      log,
		out: &parsedUpdate{
			command:          cmd,
			fetch:            cmd.Kind.IsFetch(),
			deltas:           make(map[uuid.UUID]int32),
			countsKnown:      make(map[uuid.UUID]int32),
			versions:         make(map[uuid.UUID]int32),
			createdFolders:   make(map[uuid.UUID]models.Folder),
			updatedFolders:   make(map[uuid.UUID]models.Folder),
			createdItems:     make(map[uuid.UUID]models.Item),
			updatedItems:     make(map[uuid.UUID]models.Item),
			lostItems:        make(map[uuid.UUID]struct{}),
			deleted:          make(map[uuid.UUID]struct{}),
			createdItemIDs:   make(map[uuid.UUID]struct{}),
			createdFolderIDs: make(map[uuid.UUID]struct{}),
		},
	}
	if upd == nil {
		return p.out
	}

	p.parseMeta(upd)
	p.parseContent(upd, fetchDepth(cmd))

	return p.out
}

// fetchDepth is the depth ceiling of a reply: the request's depth for
// folder listings, the maximum otherwise.
func fetchDepth(cmd adapter.Command) int {
	switch cmd.Kind {
	case adapter.CmdFetchCategoryChildren, adapter.CmdFetchCategoryCategories,
		adapter.CmdFetchCategorySubset, adapter.CmdFetchLinks, adapter.CmdFetchCOF:
		return cmd.Depth
	default:
		return adapter.MaxFolderDepthRequest
	}
}

func (p *updateParser) parseMeta(upd *models.AISUpdate) {
	for _, id := range upd.CategoriesRemoved {
		f, ok := p.store.Folder(id)
		if !ok {
			p.log.Warn().Str("func", "updateParser.parseMeta").Stringer("category_id", id).Msg("removed category not found")
			continue
		}
		p.out.deltas[f.ParentID]--
		p.out.deleted[id] = struct{}{}
	}

	removedItems := [][]uuid.UUID{upd.CategoryItemsRemoved, upd.RemovedItems, upd.BrokenLinksRemoved}
	for _, ids := range removedItems {
		for _, id := range ids {
			if _, seen := p.out.deleted[id]; seen {
				continue
			}
			it, ok := p.store.Item(id)
			if !ok {
				p.log.Warn().Str("func", "updateParser.parseMeta").Stringer("item_id", id).Msg("removed item not found")
				continue
			}
			p.out.deltas[it.ParentID]--
			p.out.deleted[id] = struct{}{}
		}
	}

	for _, id := range upd.CreatedItems {
		p.out.createdItemIDs[id] = struct{}{}
	}
	for _, id := range upd.CreatedCategories {
		p.out.createdFolderIDs[id] = struct{}{}
	}
	for id, version := range upd.UpdatedCategoryVersions {
		p.out.versions[id] = version
	}
}

func (p *updateParser) parseContent(upd *models.AISUpdate, depth int) {
	top := upd.AISObject

	if top.ItemID != nil && isFullObject(top) {
		if top.LinkedID != nil {
			p.parseLink(top, depth)
		} else {
			p.parseItem(top)
		}
	}

	switch {
	case p.out.command.Kind == adapter.CmdFetchCategorySubset:
		// The top category of a subset reply is incomplete: only its
		// content counts.
		if top.Embedded != nil {
			p.parseEmbedded(*top.Embedded, depth-1)
		}
	case top.CategoryID != nil && isFullObject(top):
		p.parseCategory(top, depth)
	case top.Embedded != nil && top.ItemID == nil:
		p.parseEmbedded(*top.Embedded, depth)
	}
}

// isFullObject tells an entity apart from an error reply that only echoes
// its id.
func isFullObject(obj models.AISObject) bool {
	return obj.ParentID != nil || obj.Name != nil
}

func (p *updateParser) parseItem(obj models.AISObject) {
	id := *obj.ItemID
	current, seen := p.store.Item(id)

	it, ok := itemFromAIS(current, seen, obj)
	if !ok {
		p.malformedEntity("item_id", id)
		return
	}

	switch {
	case p.out.fetch:
		it.Complete = true
		if it.ParentID == uuid.Nil {
			p.out.lostItems[id] = struct{}{}
		}
		p.out.createdItems[id] = it
	case seen:
		p.touch(it.ParentID)
		p.out.updatedItems[id] = it
	default:
		it.Complete = true
		p.out.deltas[it.ParentID]++
		p.out.createdItems[id] = it
	}
}

func (p *updateParser) parseLink(obj models.AISObject, depth int) {
	p.parseItem(obj)
	if obj.Embedded != nil {
		p.parseEmbedded(*obj.Embedded, depth)
	}
}

func (p *updateParser) parseCategory(obj models.AISObject, depth int) {
	id := *obj.CategoryID
	log := p.log.With().Str("func", "updateParser.parseCategory").Stringer("category_id", id).Logger()

	version := models.VersionUnknown
	if obj.Version != nil {
		version = *obj.Version
	}

	current, seen := p.store.Folder(id)
	if seen && version > models.VersionUnknown && current.Version > version && !current.IsDescendentCountUnknown() {
		log.Warn().
			Int32("local_version", current.Version).
			Int32("received_version", version).
			Msg("stale folder data ignored")
		return
	}

	f, ok := folderFromAIS(current, seen, obj)
	if !ok {
		p.malformedEntity("category_id", id)
		return
	}

	if obj.Embedded != nil {
		p.parseDescendentCount(id, f.PreferredType.LinksOnly(), *obj.Embedded)
	}
	count, countKnown := p.out.countsKnown[id]

	switch {
	case p.out.fetch:
		if countKnown {
			f.DescendentCount = count
			// The version tells the scheduler the folder needs no listing, so
			// it is set only when this reply carries the full content.
			if depth >= 0 && version > models.VersionUnknown {
				if seen && current.Version > version {
					log.Warn().
						Int32("local_version", current.Version).
						Int32("received_version", version).
						Msg("fetch returned an older version")
				}
				f.Version = version
			}
		}
		p.out.createdFolders[id] = f
	case seen:
		p.touch(f.ParentID)
		p.touch(id)
		p.out.updatedFolders[id] = f
	default:
		if countKnown {
			f.DescendentCount = count
			if version > models.VersionUnknown {
				f.Version = version
			}
		}
		p.out.deltas[f.ParentID]++
		p.out.createdFolders[id] = f
	}

	if obj.Embedded != nil && depth >= 0 {
		p.parseEmbedded(*obj.Embedded, depth-1)
	}
}

// parseDescendentCount records the folder's true descendant count when the
// embedded content lists every kind of child.
func (p *updateParser) parseDescendentCount(id uuid.UUID, linksOnly bool, emb models.AISEmbedded) {
	switch {
	case emb.Categories != nil && emb.Links != nil && emb.Items != nil:
		p.out.countsKnown[id] = int32(len(emb.Categories) + len(emb.Links) + len(emb.Items))
	case p.out.fetch && linksOnly && emb.Links != nil:
		p.out.countsKnown[id] = int32(len(emb.Links))
	}
}

func (p *updateParser) parseEmbedded(emb models.AISEmbedded, depth int) {
	for _, id := range sortedIDs(emb.Links) {
		if p.accepts(p.out.createdItemIDs, id) {
			obj := emb.Links[id]
			obj.ItemID = &id
			p.parseLink(obj, depth)
		}
	}
	for _, id := range sortedIDs(emb.Items) {
		if p.accepts(p.out.createdItemIDs, id) {
			obj := emb.Items[id]
			obj.ItemID = &id
			p.parseItem(obj)
		}
	}
	if emb.Item != nil && emb.Item.ItemID != nil && p.accepts(p.out.createdItemIDs, *emb.Item.ItemID) {
		p.parseItem(*emb.Item)
	}
	for _, id := range sortedIDs(emb.Categories) {
		if p.accepts(p.out.createdFolderIDs, id) {
			obj := emb.Categories[id]
			obj.CategoryID = &id
			p.parseCategory(obj, depth)
		}
	}
	if emb.Category != nil && emb.Category.CategoryID != nil && p.accepts(p.out.createdFolderIDs, *emb.Category.CategoryID) {
		p.parseCategory(*emb.Category, depth)
	}
}

// accepts reports whether an embedded entity is taken: fetch replies are
// taken whole, mutation replies only for the ids they declare created.
func (p *updateParser) accepts(created map[uuid.UUID]struct{}, id uuid.UUID) bool {
	if p.out.fetch {
		return true
	}
	_, ok := created[id]
	if !ok {
		p.log.Debug().Str("func", "updateParser.accepts").Stringer("id", id).Msg("embedded entity not in created list, ignored")
	}
	return ok
}

// touch makes sure a delta entry exists for the folder so that a declared
// version update is accounted for.
func (p *updateParser) touch(id uuid.UUID) {
	if _, ok := p.out.deltas[id]; !ok {
		p.out.deltas[id] = 0
	}
}

func (p *updateParser) malformedEntity(field string, id uuid.UUID) {
	p.out.malformed++
	p.log.Warn().Str("func", "updateParser.malformedEntity").Stringer(field, id).Msg("invalid entity data, skipped")
	if p.notifier != nil {
		p.notifier.Notify(AlertAISFailure, map[string]string{field: id.String()})
	}
}

// folderFromAIS overlays the fields present in obj on the current copy of
// the folder, or on a fresh folder when it was not seen before.
func folderFromAIS(current models.Folder, seen bool, obj models.AISObject) (models.Folder, bool) {
	if obj.CategoryID == nil || *obj.CategoryID == uuid.Nil {
		return models.Folder{}, false
	}

	f := current
	if !seen {
		f = models.NewFolder(*obj.CategoryID, uuid.Nil, "", models.FolderNone)
	}
	if obj.ParentID != nil {
		f.ParentID = *obj.ParentID
	}
	if obj.OwnerID != nil {
		f.OwnerID = *obj.OwnerID
	}
	if obj.Name != nil {
		f.Name = *obj.Name
	}
	if obj.TypeDefault != nil {
		f.PreferredType = *obj.TypeDefault
	}
	if f.ParentID == f.ID {
		return models.Folder{}, false
	}

	return f, true
}

// itemFromAIS overlays the fields present in obj on the current copy of the
// item. A new item must carry its type, or a target for a link.
func itemFromAIS(current models.Item, seen bool, obj models.AISObject) (models.Item, bool) {
	if obj.ItemID == nil || *obj.ItemID == uuid.Nil {
		return models.Item{}, false
	}

	it := current
	if !seen {
		if obj.Type == nil && obj.LinkedID == nil {
			return models.Item{}, false
		}
		it = models.Item{
			ID:            *obj.ItemID,
			AssetType:     models.AssetNone,
			InventoryType: models.InventoryNone,
		}
		if obj.LinkedID != nil {
			it.AssetType = models.AssetLink
		}
	}

	if obj.ParentID != nil {
		it.ParentID = *obj.ParentID
	}
	if obj.OwnerID != nil {
		it.OwnerID = *obj.OwnerID
	}
	if obj.AssetID != nil {
		it.AssetID = *obj.AssetID
	}
	if obj.LinkedID != nil {
		it.LinkedID = *obj.LinkedID
	}
	if obj.Name != nil {
		it.Name = *obj.Name
	}
	if obj.Description != nil {
		it.Description = *obj.Description
	}
	if obj.Type != nil {
		it.AssetType = *obj.Type
	}
	if obj.InvType != nil {
		it.InventoryType = *obj.InvType
	}
	if obj.Flags != nil {
		it.Flags = *obj.Flags
	}
	if obj.CreatedAt != nil {
		it.CreationDate = *obj.CreatedAt
	}
	if it.IsLink() && it.LinkedID == uuid.Nil {
		return models.Item{}, false
	}

	return it, true
}

// sortedIDs returns the keys of m in byte order so that replies are applied
// deterministically.
func sortedIDs[V any](m map[uuid.UUID]V) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
