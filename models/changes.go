// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/google/uuid"

// ChangeMask is a bit set describing what happened to a node.
type ChangeMask uint32

const (
	ChangeNone ChangeMask = 0
	// ChangeLabel is set when the display name changed.
	ChangeLabel ChangeMask = 1 << iota
	// ChangeInternal is set when any field changed without a structural move.
	ChangeInternal
	// ChangeAdd is set when the node was first inserted.
	ChangeAdd
	// ChangeRemove is set when the node was removed.
	ChangeRemove
	// ChangeStructure is set when the node changed parent.
	ChangeStructure
	// ChangeCallingCard is set for calling card updates.
	ChangeCallingCard
	// ChangeRebuild is set when a broken link found its target.
	ChangeRebuild
	// ChangeCreate is set for nodes created by a local request.
	ChangeCreate
	// ChangeAll forces every observer to refresh.
	ChangeAll ChangeMask = 0xffffffff
)

// Has reports whether all bits of flag are set.
func (m ChangeMask) Has(flag ChangeMask) bool {
	return m&flag == flag
}

// ChangeBatch is what observers receive once per tick.
type ChangeBatch struct {
	Mask    ChangeMask
	Changed map[uuid.UUID]ChangeMask
	Added   map[uuid.UUID]struct{}
}

// IsEmpty reports whether the batch carries no change.
func (b ChangeBatch) IsEmpty() bool {
	return b.Mask == ChangeNone && len(b.Changed) == 0
}
