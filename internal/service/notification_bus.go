// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// ObserverHandle identifies a registered observer.
type ObserverHandle uint64

// NotificationBus coalesces tree changes and hands them to observers once
// per tick. It is the tree store's change sink.
//
// Flush swaps the pending batch out before any observer runs, so changes
// recorded by an observer land in the next batch.
type NotificationBus struct {
	changed map[uuid.UUID]models.ChangeMask
	added   map[uuid.UUID]struct{}
	mask    models.ChangeMask
	dirty   bool

	order     []ObserverHandle
	observers map[ObserverHandle]Observer
	next      ObserverHandle

	links LinkResolver
	log   *logger.Logger
}

func NewNotificationBus(log *logger.Logger) *NotificationBus {
	return &NotificationBus{
		changed:   make(map[uuid.UUID]models.ChangeMask),
		added:     make(map[uuid.UUID]struct{}),
		observers: make(map[ObserverHandle]Observer),
		log:       log.Component("notification_bus"),
	}
}

// SetLinkResolver makes label changes propagate to the links of the
// changed node.
func (b *NotificationBus) SetLinkResolver(r LinkResolver) {
	b.links = r
}

// AddChanged records a change of id for the next dispatch.
func (b *NotificationBus) AddChanged(id uuid.UUID, mask models.ChangeMask) {
	if id == uuid.Nil || mask == models.ChangeNone {
		return
	}

	b.changed[id] |= mask
	b.mask |= mask
	b.dirty = true
	if mask.Has(models.ChangeAdd) {
		b.added[id] = struct{}{}
	}

	if mask.Has(models.ChangeLabel) && b.links != nil {
		for _, linkID := range b.links.LinksTo(id) {
			if linkID != id {
				b.changed[linkID] |= models.ChangeLabel
			}
		}
	}
}

// Notify adds mask to the next dispatch without naming any node.
func (b *NotificationBus) Notify(mask models.ChangeMask) {
	b.mask |= mask
	b.dirty = true
}

// IsDirty reports whether a dispatch is pending.
func (b *NotificationBus) IsDirty() bool {
	return b.dirty
}

func (b *NotificationBus) Register(o Observer) ObserverHandle {
	b.next++
	b.observers[b.next] = o
	b.order = append(b.order, b.next)
	return b.next
}

func (b *NotificationBus) Unregister(h ObserverHandle) {
	if _, ok := b.observers[h]; !ok {
		return
	}
	delete(b.observers, h)
	for i, registered := range b.order {
		if registered == h {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Flush dispatches the pending batch to every observer in registration
// order. Observers unregistered during the dispatch are skipped.
func (b *NotificationBus) Flush() {
	if !b.dirty {
		return
	}

	batch := models.ChangeBatch{Mask: b.mask, Changed: b.changed, Added: b.added}
	b.changed = make(map[uuid.UUID]models.ChangeMask)
	b.added = make(map[uuid.UUID]struct{})
	b.mask = models.ChangeNone
	b.dirty = false

	b.log.Debug().
		Str("func", "NotificationBus.Flush").
		Int("changed", len(batch.Changed)).
		Int("added", len(batch.Added)).
		Msg("dispatching changes")

	for _, h := range append([]ObserverHandle(nil), b.order...) {
		if o, ok := b.observers[h]; ok {
			o.Changed(batch)
		}
	}
}
