// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// VersionUnknown marks a folder whose server version has not been
	// observed yet.
	VersionUnknown int32 = -1
	// VersionInitial is the version of a freshly created folder.
	VersionInitial int32 = 1
	// DescendentCountUnknown marks a folder whose server descendant count has
	// not been observed yet.
	DescendentCountUnknown int32 = -1
)

// FetchState tells whether a folder listing is in flight and how deep.
type FetchState uint8

const (
	FetchingNone FetchState = iota
	// FetchingNormal is a shallow listing in flight.
	FetchingNormal
	// FetchingRecursive is a listing with recursion requested in flight.
	FetchingRecursive
)

// Folder is a category node of the inventory tree.
//
// Version and DescendentCount are the server's view of the folder. The
// viewer's view (children present locally) is derived by the tree store.
type Folder struct {
	ID              uuid.UUID  `json:"category_id"`
	ParentID        uuid.UUID  `json:"parent_id"`
	OwnerID         uuid.UUID  `json:"agent_id"`
	Name            string     `json:"name"`
	PreferredType   FolderType `json:"type_default"`
	Version         int32      `json:"version"`
	DescendentCount int32      `json:"descendents"`
	Fetching        FetchState `json:"-"`
}

// NewFolder returns a folder with unknown version and descendant count.
func NewFolder(id, parentID uuid.UUID, name string, preferred FolderType) Folder {
	return Folder{
		ID:              id,
		ParentID:        parentID,
		Name:            name,
		PreferredType:   preferred,
		Version:         VersionUnknown,
		DescendentCount: DescendentCountUnknown,
	}
}

func (f Folder) IsVersionUnknown() bool {
	return f.Version == VersionUnknown
}

func (f Folder) IsDescendentCountUnknown() bool {
	return f.DescendentCount == DescendentCountUnknown
}

// Item is a leaf node of the inventory tree. Links carry the id of their
// target in LinkedID.
type Item struct {
	ID            uuid.UUID     `json:"item_id"`
	ParentID      uuid.UUID     `json:"parent_id"`
	OwnerID       uuid.UUID     `json:"agent_id"`
	AssetID       uuid.UUID     `json:"asset_id"`
	LinkedID      uuid.UUID     `json:"linked_id"`
	Name          string        `json:"name"`
	Description   string        `json:"desc"`
	AssetType     AssetType     `json:"type"`
	InventoryType InventoryType `json:"inv_type"`
	Flags         uint32        `json:"flags"`
	CreationDate  int64         `json:"created_at"`
	Complete      bool          `json:"-"`
	Hash          string        `json:"-"`
}

// IsLink reports whether the item points at another node.
func (i Item) IsLink() bool {
	return i.AssetType.IsLink()
}

// ContentFields returns the fields that define an item's content, in a fixed
// order, for hashing. Parent and completeness are excluded: they describe
// placement and fetch state, not content.
func (i Item) ContentFields() string {
	var b strings.Builder
	for _, part := range []string{
		i.ID.String(),
		i.OwnerID.String(),
		i.AssetID.String(),
		i.LinkedID.String(),
		i.Name,
		i.Description,
		strconv.Itoa(int(i.AssetType)),
		strconv.Itoa(int(i.InventoryType)),
		strconv.FormatUint(uint64(i.Flags), 10),
		strconv.FormatInt(i.CreationDate, 10),
	} {
		b.WriteString(part)
		b.WriteByte(0)
	}
	return b.String()
}

// NodeKind distinguishes folders from items where a single id is resolved.
type NodeKind uint8

const (
	NodeUnknown NodeKind = iota
	NodeFolder
	NodeItem
)

// Relocation records a node moved to a new parent during tree building or
// apply, so the move can be pushed back to the server.
type Relocation struct {
	ID          uuid.UUID
	Kind        NodeKind
	OldParentID uuid.UUID
	NewParentID uuid.UUID
}

// CacheSnapshot is the persisted form of an inventory.
type CacheSnapshot struct {
	FormatVersion int
	Folders       []Folder
	Items         []Item
}
