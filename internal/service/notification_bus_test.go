// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/models"
)

type staticLinks map[uuid.UUID][]uuid.UUID

func (l staticLinks) LinksTo(target uuid.UUID) []uuid.UUID { return l[target] }

// ── AddChanged / Flush ───────────────────────────────────────────────────────

func TestNotificationBus_Flush_CoalescesMasks(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	obs := &spyObserver{}
	bus.Register(obs)

	id := uuid.New()
	bus.AddChanged(id, models.ChangeAdd)
	bus.AddChanged(id, models.ChangeLabel)
	require.True(t, bus.IsDirty())

	bus.Flush()

	require.Len(t, obs.batches, 1)
	batch := obs.last()
	assert.Equal(t, models.ChangeAdd|models.ChangeLabel, batch.Changed[id])
	assert.Contains(t, batch.Added, id)
	assert.True(t, batch.Mask.Has(models.ChangeAdd|models.ChangeLabel))
	assert.False(t, bus.IsDirty())
}

func TestNotificationBus_Flush_NothingPending(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	obs := &spyObserver{}
	bus.Register(obs)

	bus.Flush()

	// без изменений наблюдатели не вызываются
	assert.Empty(t, obs.batches)
}

func TestNotificationBus_AddChanged_IgnoresNilAndEmpty(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())

	bus.AddChanged(uuid.Nil, models.ChangeAdd)
	bus.AddChanged(uuid.New(), models.ChangeNone)

	assert.False(t, bus.IsDirty())
}

func TestNotificationBus_Notify_WithoutNodes(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	obs := &spyObserver{}
	bus.Register(obs)

	bus.Notify(models.ChangeAll)
	bus.Flush()

	require.Len(t, obs.batches, 1)
	assert.Equal(t, models.ChangeAll, obs.last().Mask)
	assert.Empty(t, obs.last().Changed)
}

func TestNotificationBus_LabelChange_ReachesLinks(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	target, link := uuid.New(), uuid.New()
	bus.SetLinkResolver(staticLinks{target: {link}})
	obs := &spyObserver{}
	bus.Register(obs)

	bus.AddChanged(target, models.ChangeLabel)
	bus.Flush()

	assert.Equal(t, models.ChangeLabel, obs.last().Changed[link])
}

// ── Observers ────────────────────────────────────────────────────────────────

func TestNotificationBus_Flush_RegistrationOrder(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	var order []int
	bus.Register(ObserverFunc(func(models.ChangeBatch) { order = append(order, 1) }))
	bus.Register(ObserverFunc(func(models.ChangeBatch) { order = append(order, 2) }))

	bus.Notify(models.ChangeInternal)
	bus.Flush()

	assert.Equal(t, []int{1, 2}, order)
}

func TestNotificationBus_Unregister_DuringDispatch(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	second := &spyObserver{}
	var secondHandle ObserverHandle
	bus.Register(ObserverFunc(func(models.ChangeBatch) { bus.Unregister(secondHandle) }))
	secondHandle = bus.Register(second)

	bus.Notify(models.ChangeInternal)
	bus.Flush()

	// снятый во время рассылки наблюдатель не вызывается
	assert.Empty(t, second.batches)
}

func TestNotificationBus_ChangesDuringDispatch_GoToNextBatch(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	late := uuid.New()
	fired := false
	bus.Register(ObserverFunc(func(models.ChangeBatch) {
		if !fired {
			fired = true
			bus.AddChanged(late, models.ChangeInternal)
		}
	}))
	obs := &spyObserver{}
	bus.Register(obs)

	bus.Notify(models.ChangeInternal)
	bus.Flush()
	require.Len(t, obs.batches, 1)
	assert.NotContains(t, obs.batches[0].Changed, late)
	assert.True(t, bus.IsDirty())

	bus.Flush()
	require.Len(t, obs.batches, 2)
	assert.Contains(t, obs.batches[1].Changed, late)
}

func TestNotificationBus_Unregister_Unknown_NoPanic(t *testing.T) {
	bus := NewNotificationBus(logger.Nop())
	assert.NotPanics(t, func() { bus.Unregister(42) })
}
