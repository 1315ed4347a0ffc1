// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// Root folder names used when the roots are known from login but absent
// from the cache.
const (
	rootFolderName    = "My Inventory"
	libraryFolderName = "Library"
)

// pendingApply is a reply waiting to be applied, in arrival order. Its
// update is parsed only when it reaches the head, so it sees the tree as
// left by the replies before it.
type pendingApply struct {
	completion adapter.Completion
	applier    *updateApplier
}

// Inventory is the session object: the single owner of the tree, the fetch
// scheduler and the notification bus for one logged-in agent.
type Inventory struct {
	store     *store.TreeStore
	bus       *NotificationBus
	scheduler *FetchScheduler
	api       adapter.InventoryAPI
	messages  adapter.MessageSender
	cache     store.CacheRepository
	notifier  Notifier
	ids       *utils.UUIDGenerator

	app     config.ClientApp
	workers config.ClientWorkers

	accountID    uuid.UUID
	loaded       bool
	disconnected bool

	applying  []*pendingApply
	callbacks map[adapter.CallID]func(adapter.Completion)
	// creating remembers system folders requested but not confirmed yet.
	creating map[models.FolderType]uuid.UUID

	log *logger.Logger
}

var _ InventoryService = (*Inventory)(nil)

// NewInventory wires a session. cache, messages and notifier may be nil.
func NewInventory(
	api adapter.InventoryAPI,
	cache store.CacheRepository,
	messages adapter.MessageSender,
	notifier Notifier,
	cfg *config.ClientConfig,
	log *logger.Logger,
) *Inventory {
	bus := NewNotificationBus(log)
	tree := store.NewTreeStore(bus, log)
	bus.SetLinkResolver(tree)
	tree.SetRoots(cfg.App.RootID, cfg.App.LibraryRootID, cfg.App.LibraryOwnerID)

	return &Inventory{
		store:     tree,
		bus:       bus,
		scheduler: NewFetchScheduler(tree, api, notifier, cfg.Workers, cfg.App.AgentID, log),
		api:       api,
		messages:  messages,
		cache:     cache,
		notifier:  notifier,
		ids:       utils.NewUUIDGenerator(),
		app:       cfg.App,
		workers:   cfg.Workers,
		callbacks: make(map[adapter.CallID]func(adapter.Completion)),
		creating:  make(map[models.FolderType]uuid.UUID),
		log:       log.Component("inventory"),
	}
}

// Store exposes the tree for read access from the owner goroutine.
func (s *Inventory) Store() *store.TreeStore {
	return s.store
}

// Scheduler exposes the fetch scheduler for status queries.
func (s *Inventory) Scheduler() *FetchScheduler {
	return s.scheduler
}

func (s *Inventory) Load(ctx context.Context, accountID uuid.UUID) error {
	log := s.log.With().Str("func", "Inventory.Load").Stringer("account_id", accountID).Logger()
	s.accountID = accountID

	if s.cache != nil {
		snap, err := s.cache.Load(ctx, accountID, s.app.CacheFormatVersion)
		switch {
		case err == nil:
			moved := s.store.BuildTree(snap.Folders, snap.Items)
			s.pushRelocations(ctx, moved)
			folders, items := s.store.Len()
			log.Info().Int("folders", folders).Int("items", items).Int("relocated", len(moved)).Msg("inventory cache loaded")
		case errors.Is(err, store.ErrCacheNotFound), errors.Is(err, store.ErrCacheFormatMismatch):
			log.Info().Err(err).Msg("starting from an empty inventory")
		default:
			return fmt.Errorf("load inventory cache: %w", err)
		}
	}

	s.ensureRoots()
	s.bus.Notify(models.ChangeAll)

	s.api.Start(ctx)
	s.loaded = true
	s.scheduler.Start(uuid.Nil, true)

	// Outfit links are wanted before the background fetch gets to them.
	if _, ok := s.store.FindCategoryForType(models.FolderCurrentOutfit); ok && s.api.AISAvailable(false) {
		if err := s.FetchCurrentOutfit(ctx); err != nil {
			log.Warn().Err(err).Msg("current outfit not requested")
		}
	}

	return nil
}

// ensureRoots creates skeleton root folders known from login so that the
// first fetch has something to list.
func (s *Inventory) ensureRoots() {
	if root := s.app.RootID; root != uuid.Nil {
		if _, ok := s.store.Folder(root); !ok {
			f := models.NewFolder(root, uuid.Nil, rootFolderName, models.FolderRoot)
			f.OwnerID = s.app.AgentID
			s.store.UpsertFolder(f)
		}
	}
	if library := s.app.LibraryRootID; library != uuid.Nil {
		if _, ok := s.store.Folder(library); !ok {
			f := models.NewFolder(library, uuid.Nil, libraryFolderName, models.FolderRoot)
			f.OwnerID = s.app.LibraryOwnerID
			s.store.UpsertFolder(f)
		}
	}
}

// Tick runs one pass of the owner loop.
func (s *Inventory) Tick(ctx context.Context) {
	if !s.loaded {
		return
	}

	s.drain()
	s.resumeApplies(ctx)
	s.api.Flush()
	if !s.disconnected {
		s.scheduler.Step(ctx)
		s.pushRelocations(ctx, s.scheduler.takeRelocations())
		if s.scheduler.IsEverythingFetched() {
			s.scheduler.SetInitialLoad(false)
		}
	}
	s.store.TakeRebuildableLinks()
	s.bus.Flush()
}

func (s *Inventory) drain() {
	for {
		select {
		case c, ok := <-s.api.Completions():
			if !ok {
				return
			}
			if s.disconnected {
				s.log.Debug().Str("func", "Inventory.drain").Uint64("call_id", uint64(c.ID)).Msg("reply after shutdown discarded")
				continue
			}
			s.accept(c)
		default:
			return
		}
	}
}

// accept handles the failure side effects of a reply at once and queues
// the reply for application.
func (s *Inventory) accept(c adapter.Completion) {
	if c.Err != nil {
		s.onFailure(c)
	}
	s.applying = append(s.applying, &pendingApply{completion: c})
}

func (s *Inventory) onFailure(c adapter.Completion) {
	log := s.log.With().
		Str("func", "Inventory.onFailure").
		Uint64("call_id", uint64(c.ID)).
		Stringer("command", c.Command.Kind).
		Stringer("target_id", c.Command.TargetID).
		Logger()

	switch {
	case errors.Is(c.Err, adapter.ErrGone) && c.Command.Kind == adapter.CmdRemoveCategory:
		// The server lost the folder already: the parent listing is stale.
		f, ok := s.store.Folder(c.Command.TargetID)
		if !ok {
			return
		}
		log.Warn().
			Int32("version", f.Version).
			Int32("server_count", f.DescendentCount).
			Int32("viewer_count", s.store.ViewerDescendentCount(f.ID)).
			Msg("folder no longer exists on server, refetching parent")
		s.scheduler.ForceFetchFolder(f.ParentID)

	case errors.Is(c.Err, adapter.ErrGone) && c.Command.Kind == adapter.CmdRemoveItem:
		it, ok := s.store.Item(c.Command.TargetID)
		if !ok {
			return
		}
		log.Warn().Msg("item no longer exists on server, deleting locally")
		_ = s.store.AccountForUpdate(it.ParentID, -1, true)
		if err := s.store.Remove(it.ID); err != nil {
			log.Err(err).Msg("failed to delete item")
		}

	case errors.Is(c.Err, adapter.ErrForbidden) && c.Command.Kind == adapter.CmdFetchCategoryChildren && c.Command.Depth == 0:
		s.scheduler.limitReached(c.Command.TargetID)

	default:
		log.Warn().Err(c.Err).Msg("inventory call failed")
	}
}

// resumeApplies applies queued replies in order until the yield budget of
// this tick is spent.
func (s *Inventory) resumeApplies(ctx context.Context) {
	budget := s.workers.YieldBudget
	start := time.Now()

	for len(s.applying) > 0 {
		remaining := time.Duration(0)
		if budget > 0 {
			if remaining = budget - time.Since(start); remaining <= 0 {
				return
			}
		}

		head := s.applying[0]
		if head.applier == nil && head.completion.Update != nil {
			upd := parseUpdate(s.store, s.notifier, s.log, head.completion.Command, head.completion.Update)
			head.applier = newUpdateApplier(s.store, upd, s.log)
		}
		if head.applier != nil && !head.applier.Step(remaining) {
			return
		}

		s.applying[0] = nil
		s.applying = s.applying[1:]
		s.finish(ctx, head)
	}
}

// finish runs the follow-ups of an applied reply and hands it to whoever
// sent the call.
func (s *Inventory) finish(ctx context.Context, p *pendingApply) {
	if a := p.applier; a != nil {
		for _, id := range a.refetch {
			s.scheduler.ForceFetchFolder(id)
		}
		s.pushRelocations(ctx, a.relocations)
	}

	c := p.completion
	if s.scheduler.complete(c) {
		return
	}
	if cb, ok := s.callbacks[c.ID]; ok {
		delete(s.callbacks, c.ID)
		cb(c)
	}
}

// pushRelocations sends local parent fixes to the server.
func (s *Inventory) pushRelocations(ctx context.Context, moved []models.Relocation) {
	for _, m := range moved {
		if m.NewParentID == uuid.Nil {
			continue
		}
		parent := m.NewParentID

		var err error
		if m.Kind == models.NodeFolder {
			_, err = s.api.UpdateCategory(ctx, m.ID, models.CategoryPatch{ParentID: &parent})
		} else {
			_, err = s.api.UpdateItem(ctx, m.ID, models.ItemPatch{ParentID: &parent})
		}
		if err != nil {
			s.log.Warn().Err(err).Str("func", "Inventory.pushRelocations").Stringer("id", m.ID).Msg("relocation not pushed to server")
		}
	}
}

func (s *Inventory) Save(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if !s.loaded {
		return ErrNotLoaded
	}

	if err := s.cache.Save(ctx, s.accountID, s.store.Snapshot(s.app.CacheFormatVersion)); err != nil {
		return fmt.Errorf("save inventory cache: %w", err)
	}
	return nil
}

// Shutdown marks the session disconnected, drops queued work and stops the
// protocol client.
func (s *Inventory) Shutdown() {
	if s.disconnected {
		return
	}
	s.disconnected = true
	s.scheduler.Reset()
	s.applying = nil
	clear(s.callbacks)
	s.api.Close()

	s.log.Info().Str("func", "Inventory.Shutdown").Msg("inventory session shut down")
}

func (s *Inventory) AddObserver(o Observer) ObserverHandle {
	return s.bus.Register(o)
}

func (s *Inventory) RemoveObserver(h ObserverHandle) {
	s.bus.Unregister(h)
}
