// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/models"
)

type applyPhase uint8

const (
	phaseAccounting applyPhase = iota
	phaseCreateFolders
	phaseUpdateFolders
	phaseLostItems
	phaseCreateItems
	phaseUpdateItems
	phaseDelete
	phaseVersions
	phaseDone
)

// Large fetch replies are applied in slices; the clock is read once per
// slice.
const applyCheckEvery = adapter.MaxFolderDepthRequest

// updateApplier applies a parsed reply to the tree in a fixed order. It can
// be suspended when its time budget runs out and resumed on a later tick.
type updateApplier struct {
	store *store.TreeStore
	upd   *parsedUpdate

	phase  applyPhase
	cursor int
	work   []uuid.UUID

	// Results read by the session once Step reports completion.
	refetch     []uuid.UUID
	relocations []models.Relocation

	now func() time.Time
	log *logger.Logger
}

func newUpdateApplier(s *store.TreeStore, upd *parsedUpdate, log *logger.Logger) *updateApplier {
	a := &updateApplier{
		store: s,
		upd:   upd,
		now:   time.Now,
		log:   log,
	}
	a.work = a.workFor(a.phase)
	return a
}

// Step applies the update until it is done or budget has elapsed. A zero
// budget runs to completion. It reports whether the update is fully applied.
func (a *updateApplier) Step(budget time.Duration) bool {
	start := a.now()
	ops := 0

	for a.phase != phaseDone {
		if a.cursor >= len(a.work) {
			a.phase++
			a.cursor = 0
			a.work = a.workFor(a.phase)
			continue
		}

		a.applyOne(a.work[a.cursor])
		a.cursor++
		ops++

		if budget > 0 && ops%applyCheckEvery == 0 && a.now().Sub(start) >= budget {
			a.log.Debug().
				Str("func", "updateApplier.Step").
				Int("phase", int(a.phase)).
				Int("cursor", a.cursor).
				Msg("apply suspended")
			return false
		}
	}

	return true
}

func (a *updateApplier) workFor(phase applyPhase) []uuid.UUID {
	switch phase {
	case phaseAccounting:
		return sortedIDs(a.upd.deltas)
	case phaseCreateFolders:
		return sortedIDs(a.upd.createdFolders)
	case phaseUpdateFolders:
		return sortedIDs(a.upd.updatedFolders)
	case phaseLostItems:
		return sortedIDs(a.upd.lostItems)
	case phaseCreateItems:
		return sortedIDs(a.upd.createdItems)
	case phaseUpdateItems:
		return sortedIDs(a.upd.updatedItems)
	case phaseDelete:
		return sortedIDs(a.upd.deleted)
	case phaseVersions:
		return sortedIDs(a.upd.versions)
	default:
		return nil
	}
}

func (a *updateApplier) applyOne(id uuid.UUID) {
	switch a.phase {
	case phaseAccounting:
		a.account(id)
	case phaseCreateFolders:
		a.store.UpsertFolder(a.upd.createdFolders[id])
	case phaseUpdateFolders:
		a.updateFolder(id)
	case phaseLostItems:
		a.relocateLost(id)
	case phaseCreateItems:
		a.store.UpsertItem(a.upd.createdItems[id])
	case phaseUpdateItems:
		a.store.UpsertItem(a.upd.updatedItems[id])
	case phaseDelete:
		a.delete(id)
	case phaseVersions:
		a.checkVersion(id)
	}
}

// account applies a descendant delta, but only to folders the reply says
// it changed and did not just create.
func (a *updateApplier) account(id uuid.UUID) {
	if _, created := a.upd.createdFolders[id]; created {
		return
	}
	if _, declared := a.upd.versions[id]; !declared {
		return
	}
	if _, known := a.store.Folder(id); !known {
		a.log.Debug().Str("func", "updateApplier.account").Stringer("category_id", id).Msg("accounting skipped for unknown folder")
		return
	}
	// Mismatches are logged by the store and left to the version check.
	_ = a.store.AccountForUpdate(id, a.upd.deltas[id], true)
}

// updateFolder writes a folder copy taken before accounting, so the
// accounted version and count are carried over first.
func (a *updateApplier) updateFolder(id uuid.UUID) {
	f := a.upd.updatedFolders[id]
	current, ok := a.store.Folder(id)
	if !ok {
		a.log.Warn().Str("func", "updateApplier.updateFolder").Stringer("category_id", id).Msg("cannot update unknown folder")
		return
	}
	f.Version = current.Version
	f.DescendentCount = current.DescendentCount
	a.store.UpsertFolder(f)
}

func (a *updateApplier) relocateLost(id uuid.UUID) {
	it := a.upd.createdItems[id]
	lostAndFound := a.store.LostAndFoundID()
	a.log.Debug().Str("func", "updateApplier.relocateLost").Stringer("item_id", id).Msg("lost item moved to lost and found")

	a.relocations = append(a.relocations, models.Relocation{
		ID:          id,
		Kind:        models.NodeItem,
		OldParentID: it.ParentID,
		NewParentID: lostAndFound,
	})
	it.ParentID = lostAndFound
	a.upd.createdItems[id] = it
}

func (a *updateApplier) delete(id uuid.UUID) {
	if err := a.store.Purge(id); err != nil && !errors.Is(err, store.ErrNodeNotFound) {
		a.log.Err(err).Str("func", "updateApplier.delete").Stringer("id", id).Msg("failed to delete node")
	}
}

// checkVersion makes the server's declared version authoritative. A folder
// whose version cannot be trusted on either side is listed again.
func (a *updateApplier) checkVersion(id uuid.UUID) {
	server := a.upd.versions[id]
	f, ok := a.store.Folder(id)
	if !ok || f.Version == server {
		return
	}

	a.log.Debug().
		Str("func", "updateApplier.checkVersion").
		Stringer("category_id", id).
		Int32("local_version", f.Version).
		Int32("server_version", server).
		Msg("folder version mismatch")

	if server == models.VersionUnknown || f.IsVersionUnknown() {
		a.refetch = append(a.refetch, id)
		return
	}
	a.store.SetVersion(id, server)
}
