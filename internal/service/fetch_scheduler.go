// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// Time box of one scheduler step: long while the inventory is first being
// loaded, short afterwards so a large queue does not stall the owner loop.
const (
	initialLoadTimeBox = time.Second
	steadyTimeBox      = 5 * time.Millisecond
)

type callKind uint8

const (
	callFolder callKind = iota
	callContents
	callItem
	callOrphans
	callLegacyFolders
	callLegacyItems
)

// fetchCall remembers why a fetch was sent so its reply can be followed up.
type fetchCall struct {
	kind     callKind
	id       uuid.UUID
	mode     models.FetchMode
	children []uuid.UUID

	library   bool
	legacy    models.LegacyFolderRequest
	recursive map[uuid.UUID]struct{}
}

// FetchScheduler keeps the tree filled in the background. It pops folder
// and item requests from two deduplicating queues, turns them into protocol
// calls within the pool's capacity, and follows each reply up with the next
// requests.
type FetchScheduler struct {
	store    *store.TreeStore
	api      adapter.InventoryAPI
	notifier Notifier

	folders fetchQueue
	items   fetchQueue

	calls           map[adapter.CallID]fetchCall
	itemsInFlight   map[uuid.UUID]struct{}
	// orphansInFlight is set while an orphans request is outstanding.
	orphansInFlight bool
	fetchCount      int
	folderCount     int

	batchSize           int
	legacyBatchSize     int
	legacyMaxConcurrent int
	legacyRetry         []fetchCall
	agentID             uuid.UUID

	initialLoad bool
	timeBox     func() time.Duration

	backgroundActive bool
	folderActive     bool
	inventoryStarted bool
	libraryStarted   bool
	allFetched       bool
	limitWarned      bool

	relocations []models.Relocation

	now func() time.Time
	log *logger.Logger
}

func NewFetchScheduler(s *store.TreeStore, api adapter.InventoryAPI, n Notifier, cfg config.ClientWorkers, agentID uuid.UUID, log *logger.Logger) *FetchScheduler {
	f := &FetchScheduler{
		store:               s,
		api:                 api,
		notifier:            n,
		calls:               make(map[adapter.CallID]fetchCall),
		itemsInFlight:       make(map[uuid.UUID]struct{}),
		batchSize:           cfg.BatchSize,
		legacyBatchSize:     cfg.LegacyBatchSize,
		legacyMaxConcurrent: cfg.LegacyMaxConcurrent,
		agentID:             agentID,
		initialLoad:         true,
		now:                 time.Now,
		log:                 log.Component("fetch_scheduler"),
	}
	f.timeBox = f.defaultTimeBox
	return f
}

func (s *FetchScheduler) defaultTimeBox() time.Duration {
	if s.initialLoad {
		return initialLoadTimeBox
	}
	return steadyTimeBox
}

// SetInitialLoad switches between the long and the short step time box.
func (s *FetchScheduler) SetInitialLoad(on bool) {
	s.initialLoad = on
}

// Start queues a fetch of id. A nil id queues both roots, the agent root
// first. An unknown id or a complete item is ignored.
func (s *FetchScheduler) Start(id uuid.UUID, recursive bool) {
	_, isFolder := s.store.Folder(id)
	if id != uuid.Nil && !isFolder {
		if it, ok := s.store.Item(id); ok && !it.Complete {
			s.ScheduleItemFetch(id, false)
		}
		return
	}
	if id == uuid.Nil && s.allFetched {
		return
	}

	s.backgroundActive, s.folderActive = true, true
	mode := models.FetchDefault
	if recursive {
		mode = models.FetchRecursive
	}

	if id != uuid.Nil {
		req := models.FetchRequest{ID: id, Kind: models.FetchKindFolder, Mode: mode}
		if s.api.AISAvailable(false) {
			s.folders.pushBack(req)
		} else {
			s.folders.pushFront(req)
		}
		if id == s.store.RootID() {
			s.inventoryStarted = s.inventoryStarted || recursive
		}
		if id == s.store.LibraryRootID() {
			s.libraryStarted = s.libraryStarted || recursive
		}
		return
	}

	if !s.inventoryStarted {
		s.inventoryStarted = recursive
		if root := s.store.RootID(); root != uuid.Nil {
			if recursive && s.api.AISAvailable(false) {
				// The root is listed alone, then its content in batches.
				s.folders.pushFront(models.FetchRequest{ID: root, Kind: models.FetchKindFolder, Mode: models.FetchFolderAndContent})
			} else {
				s.folders.pushBack(models.FetchRequest{ID: root, Kind: models.FetchKindFolder, Mode: mode})
			}
		}
	}
	if !s.libraryStarted {
		library := s.store.LibraryRootID()
		s.libraryStarted = recursive || library == uuid.Nil
		if library != uuid.Nil {
			s.folders.pushBack(models.FetchRequest{ID: library, Kind: models.FetchKindFolder, Mode: mode})
		}
	}
}

// ScheduleFolderFetch puts a folder at the head of the queue.
func (s *FetchScheduler) ScheduleFolderFetch(id uuid.UUID, force bool) {
	mode := models.FetchDefault
	if force {
		mode = models.FetchForced
	}
	s.backgroundActive, s.folderActive = true, true
	s.folders.pushFront(models.FetchRequest{ID: id, Kind: models.FetchKindFolder, Mode: mode})
	s.log.Debug().
		Str("func", "FetchScheduler.ScheduleFolderFetch").
		Stringer("category_id", id).
		Bool("forced", force).
		Msg("folder fetch scheduled")
}

// ScheduleItemFetch puts an item at the head of the queue.
func (s *FetchScheduler) ScheduleItemFetch(id uuid.UUID, force bool) {
	mode := models.FetchDefault
	if force {
		mode = models.FetchForced
	}
	s.backgroundActive = true
	s.items.pushFront(models.FetchRequest{ID: id, Kind: models.FetchKindItem, Mode: mode})
}

func (s *FetchScheduler) ForceFetchFolder(id uuid.UUID) {
	s.ScheduleFolderFetch(id, true)
}

// ForceFetchItem refetches an item. With the inventory service the parent
// folder is listed again as well, since a single item reply does not carry
// the folder's new version.
func (s *FetchScheduler) ForceFetchItem(id uuid.UUID) {
	it, ok := s.store.Item(id)
	if !ok {
		return
	}
	s.ScheduleItemFetch(id, true)
	if s.api.AISAvailable(false) {
		s.ScheduleFolderFetch(it.ParentID, true)
	}
}

// FindLostItems queues the orphans request.
func (s *FetchScheduler) FindLostItems() {
	s.backgroundActive, s.folderActive = true, true
	s.folders.pushBack(models.FetchRequest{ID: uuid.Nil, Kind: models.FetchKindFolder, Mode: models.FetchRecursive})
}

// FetchQueueContainsNoDescendentsOf reports whether no queued request
// targets a node below id.
func (s *FetchScheduler) FetchQueueContainsNoDescendentsOf(id uuid.UUID) bool {
	below := func(req models.FetchRequest) bool {
		return s.store.IsDescendentOf(req.ID, id)
	}
	return !s.folders.any(below) && !s.items.any(below)
}

func (s *FetchScheduler) IsBulkFetchProcessingComplete() bool {
	return s.fetchCount <= 0 && s.folders.len() == 0 && s.items.len() == 0 && len(s.legacyRetry) == 0
}

func (s *FetchScheduler) IsFolderFetchProcessingComplete() bool {
	return s.folderCount <= 0 && s.folders.len() == 0 && len(s.legacyRetry) == 0
}

func (s *FetchScheduler) IsBackgroundFetchActive() bool {
	return s.backgroundActive
}

// IsEverythingFetched reports whether both recursive root fetches ran to
// completion at least once.
func (s *FetchScheduler) IsEverythingFetched() bool {
	return s.allFetched
}

func (s *FetchScheduler) InventoryFetchCompleted() bool {
	return s.inventoryStarted && s.FetchQueueContainsNoDescendentsOf(s.store.RootID())
}

func (s *FetchScheduler) LibraryFetchCompleted() bool {
	return s.libraryStarted && s.FetchQueueContainsNoDescendentsOf(s.store.LibraryRootID())
}

// Reset drops every queued and in-flight request, for a disconnect.
func (s *FetchScheduler) Reset() {
	for _, call := range s.calls {
		s.store.SetFetching(call.id, models.FetchingNone)
		for _, child := range call.children {
			s.store.SetFetching(child, models.FetchingNone)
		}
	}
	for _, call := range s.legacyRetry {
		s.releaseLegacyFolders(call)
	}
	s.orphansInFlight = false
	s.folders.reset()
	s.items.reset()
	clear(s.calls)
	clear(s.itemsInFlight)
	s.legacyRetry = nil
	s.fetchCount, s.folderCount = 0, 0
	s.backgroundActive, s.folderActive = false, false
}

// takeRelocations returns the moves made while applying legacy replies.
func (s *FetchScheduler) takeRelocations() []models.Relocation {
	moved := s.relocations
	s.relocations = nil
	return moved
}

// Step sends as many queued requests as the pool and the time box allow.
func (s *FetchScheduler) Step(ctx context.Context) {
	if !s.backgroundActive {
		return
	}

	switch {
	case s.api.AISAvailable(false):
		s.stepAIS(ctx)
	case s.api.LegacyAvailable(false):
		s.stepLegacy(ctx)
	default:
		s.log.Warn().Str("func", "FetchScheduler.Step").Msg("no capability to fetch inventory")
		return
	}

	if s.folderActive && s.IsFolderFetchProcessingComplete() {
		s.setAllFoldersFetched()
	}
	if s.IsBulkFetchProcessingComplete() {
		s.backgroundActive = false
	}
}

func (s *FetchScheduler) stepAIS(ctx context.Context) {
	// One slot stays free for user actions such as renames.
	maxFetches := s.api.PoolSize() - 1
	box := s.timeBox()
	start := s.now()
	before := s.fetchCount

	for s.folders.len() > 0 && s.fetchCount < maxFetches && s.now().Sub(start) < box {
		req, _ := s.folders.pop()
		s.fetchFolderAIS(ctx, req)
	}
	// Items keep going even while folders are pending, so one slow folder
	// cannot stall everything.
	for s.items.len() > 0 && s.fetchCount < maxFetches && s.now().Sub(start) < box {
		req, _ := s.items.pop()
		s.fetchItemAIS(ctx, req)
	}

	if s.fetchCount != before {
		s.log.Debug().
			Str("func", "FetchScheduler.stepAIS").
			Int("active", s.fetchCount).
			Int("queued_folders", s.folders.len()).
			Int("queued_items", s.items.len()).
			Msg("fetches sent")
	}
}

func (s *FetchScheduler) fetchItemAIS(ctx context.Context, req models.FetchRequest) {
	if _, inFlight := s.itemsInFlight[req.ID]; inFlight {
		return
	}

	it, known := s.store.Item(req.ID)
	if known && it.Complete && req.Mode != models.FetchForced {
		return
	}

	callID, err := s.api.FetchItem(ctx, req.ID, known && s.store.IsInLibrary(req.ID))
	if err != nil {
		s.log.Err(err).Str("func", "FetchScheduler.fetchItemAIS").Stringer("item_id", req.ID).Msg("item fetch not sent")
		return
	}
	s.fetchCount++
	s.itemsInFlight[req.ID] = struct{}{}
	s.calls[callID] = fetchCall{kind: callItem, id: req.ID}
}

func (s *FetchScheduler) fetchFolderAIS(ctx context.Context, req models.FetchRequest) {
	if req.ID == uuid.Nil {
		if s.orphansInFlight {
			return
		}
		// Not counted against the pool budget: orphan discovery must not
		// hold back the completion of the background fetch.
		callID, err := s.api.FetchOrphans(ctx)
		if err != nil {
			s.log.Err(err).Str("func", "FetchScheduler.fetchFolderAIS").Msg("orphans fetch not sent")
			return
		}
		s.orphansInFlight = true
		s.calls[callID] = fetchCall{kind: callOrphans}
		return
	}

	f, ok := s.store.Folder(req.ID)
	if !ok {
		return
	}
	library := s.store.IsInLibrary(f.ID)

	switch {
	case req.Mode == models.FetchContentRecursive:
		s.fetchContents(ctx, f, library)

	case req.Mode == models.FetchForced || f.IsVersionUnknown():
		target := models.FetchingNormal
		if req.Mode == models.FetchRecursive || req.Mode == models.FetchFolderAndContent {
			target = models.FetchingRecursive
		}
		// A shallow listing in flight does not prevent a recursive one.
		if f.Fetching >= target {
			return
		}
		depth := 0
		if req.Mode == models.FetchRecursive {
			depth = adapter.MaxFolderDepthRequest
		}
		callID, err := s.api.FetchCategoryChildren(ctx, f.ID, library, depth)
		if err != nil {
			s.log.Err(err).Str("func", "FetchScheduler.fetchFolderAIS").Stringer("category_id", f.ID).Msg("folder fetch not sent")
			return
		}
		s.store.SetFetching(f.ID, target)
		s.fetchCount++
		s.folderCount++
		s.calls[callID] = fetchCall{kind: callFolder, id: f.ID, mode: req.Mode}

	case req.Mode == models.FetchRecursive || req.Mode == models.FetchFolderAndContent:
		// Already listed; walk down to find what is not.
		for _, child := range s.store.ChildFolders(f.ID) {
			s.folders.pushBack(models.FetchRequest{ID: child, Kind: models.FetchKindFolder, Mode: models.FetchRecursive})
		}
	}
}

// fetchContents lists unversioned child folders of f in subset batches.
func (s *FetchScheduler) fetchContents(ctx context.Context, f models.Folder, library bool) {
	limit := s.batchSize
	done := true
	var children []uuid.UUID

	childFolders := s.store.ChildFolders(f.ID)
	for _, id := range childFolders {
		child, _ := s.store.Folder(id)
		if child.Fetching >= models.FetchingRecursive || !child.IsVersionUnknown() {
			continue
		}
		if child.PreferredType == models.FolderMarketplaceListings {
			// Marketplace listings are fetched alone.
			if len(children) > 0 {
				done = false
				continue
			}
			limit = 0
		}
		children = append(children, id)
		if len(children) >= limit {
			done = false
			break
		}
	}

	if len(children) > 0 {
		callID, err := s.api.FetchCategorySubset(ctx, f.ID, library, children, adapter.MaxFolderDepthRequest)
		if err != nil {
			s.log.Err(err).Str("func", "FetchScheduler.fetchContents").Stringer("category_id", f.ID).Msg("subset fetch not sent")
			return
		}
		for _, id := range children {
			s.store.SetFetching(id, models.FetchingRecursive)
		}
		s.fetchCount++
		s.folderCount++
		s.calls[callID] = fetchCall{kind: callContents, id: f.ID, children: children}
	}

	if !done {
		s.folders.pushBack(models.FetchRequest{ID: f.ID, Kind: models.FetchKindFolder, Mode: models.FetchContentRecursive})
		return
	}
	// Something else may have listed some children: check theirs too.
	for _, id := range childFolders {
		if child, ok := s.store.Folder(id); ok && !child.IsVersionUnknown() {
			s.folders.pushBack(models.FetchRequest{ID: id, Kind: models.FetchKindFolder, Mode: models.FetchRecursive})
		}
	}
}

// complete follows up a reply to a call this scheduler sent. It reports
// false for calls it does not own. It must run after the reply's update was
// applied, so the tree already reflects it.
func (s *FetchScheduler) complete(c adapter.Completion) bool {
	call, ok := s.calls[c.ID]
	if !ok {
		return false
	}
	delete(s.calls, c.ID)

	switch call.kind {
	case callItem:
		s.release(false)
		delete(s.itemsInFlight, call.id)
	case callOrphans:
		s.orphansInFlight = false
	case callFolder:
		s.release(true)
		s.onFolder(call, folderReplyOK(c))
	case callContents:
		s.release(true)
		s.onContents(call, folderReplyOK(c))
	case callLegacyFolders:
		s.release(true)
		s.onLegacyFolders(call, c)
	case callLegacyItems:
		s.release(false)
		s.onLegacyItems(c)
	}

	if s.folders.len() > 0 {
		s.backgroundActive, s.folderActive = true, true
	}
	return true
}

// folderReplyOK tells a reply that described the folder from a failure.
func folderReplyOK(c adapter.Completion) bool {
	return c.Err == nil && c.Update != nil && c.Update.CategoryID != nil
}

func (s *FetchScheduler) release(folder bool) {
	s.fetchCount--
	if folder {
		s.folderCount--
	}
	if s.fetchCount < 0 || s.folderCount < 0 {
		s.log.Warn().Str("func", "FetchScheduler.release").Msg("fetch count fell below zero")
		s.fetchCount = max(s.fetchCount, 0)
		s.folderCount = max(s.folderCount, 0)
	}
}

func (s *FetchScheduler) onFolder(call fetchCall, ok bool) {
	defer s.store.SetFetching(call.id, models.FetchingNone)

	if !ok {
		switch call.mode {
		case models.FetchRecursive:
			// Too large to list whole: list the folder and its content
			// separately.
			s.folders.pushBack(models.FetchRequest{ID: call.id, Kind: models.FetchKindFolder, Mode: models.FetchContentRecursive})
		case models.FetchFolderAndContent:
			s.log.Warn().Str("func", "FetchScheduler.onFolder").Stringer("category_id", call.id).Msg("failed to list folder, requesting known content separately")
			s.folders.pushBack(models.FetchRequest{ID: call.id, Kind: models.FetchKindFolder, Mode: models.FetchContentRecursive})
			// A known version keeps the folder from being requested forever.
			if f, known := s.store.Folder(call.id); known && f.IsVersionUnknown() {
				s.store.SetVersion(call.id, 0)
			}
		}
		return
	}

	switch call.mode {
	case models.FetchRecursive:
		// The depth limit may have cut the listing: verify each child.
		for _, child := range s.store.ChildFolders(call.id) {
			s.folders.pushBack(models.FetchRequest{ID: child, Kind: models.FetchKindFolder, Mode: models.FetchRecursive})
		}
	case models.FetchFolderAndContent:
		s.folders.pushFront(models.FetchRequest{ID: call.id, Kind: models.FetchKindFolder, Mode: models.FetchContentRecursive})
	}
}

func (s *FetchScheduler) onContents(call fetchCall, ok bool) {
	for _, id := range call.children {
		s.store.SetFetching(id, models.FetchingNone)
		if !ok {
			s.folders.pushBack(models.FetchRequest{ID: id, Kind: models.FetchKindFolder, Mode: models.FetchRecursive})
			continue
		}
		for _, grandchild := range s.store.ChildFolders(id) {
			s.folders.pushBack(models.FetchRequest{ID: grandchild, Kind: models.FetchKindFolder, Mode: models.FetchRecursive})
		}
	}
}

// limitReached raises the folder-too-large alert, as an alert the first
// time and as a plain notification afterwards.
func (s *FetchScheduler) limitReached(id uuid.UUID) {
	alert := AlertInventoryLimitReached
	if !s.limitWarned {
		alert = AlertInventoryLimitReachedFirst
		s.limitWarned = true
	}
	s.log.Warn().Str("func", "FetchScheduler.limitReached").Stringer("category_id", id).Msg("folder content is over the fetch limit")
	if s.notifier != nil {
		s.notifier.Notify(alert, map[string]string{"category_id": id.String()})
	}
}

func (s *FetchScheduler) setAllFoldersFetched() {
	if s.inventoryStarted && s.libraryStarted && !s.allFetched {
		s.allFetched = true
	}
	s.folderActive = false

	repaired := s.store.RebuildBrokenLinks()
	s.log.Info().
		Str("func", "FetchScheduler.setAllFoldersFetched").
		Int("repaired_links", repaired).
		Bool("everything_fetched", s.allFetched).
		Msg("inventory background fetch completed")
}
