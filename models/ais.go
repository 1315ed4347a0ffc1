// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/google/uuid"

// AISObject is a category or an item as sent by the inventory service.
// Pointer fields distinguish "absent" from zero values: absent fields keep
// the locally known value.
type AISObject struct {
	CategoryID  *uuid.UUID     `json:"category_id,omitempty"`
	ItemID      *uuid.UUID     `json:"item_id,omitempty"`
	ParentID    *uuid.UUID     `json:"parent_id,omitempty"`
	OwnerID     *uuid.UUID     `json:"agent_id,omitempty"`
	AssetID     *uuid.UUID     `json:"asset_id,omitempty"`
	LinkedID    *uuid.UUID     `json:"linked_id,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"desc,omitempty"`
	Type        *AssetType     `json:"type,omitempty"`
	InvType     *InventoryType `json:"inv_type,omitempty"`
	TypeDefault *FolderType    `json:"type_default,omitempty"`
	Version     *int32         `json:"version,omitempty"`
	Flags       *uint32        `json:"flags,omitempty"`
	CreatedAt   *int64         `json:"created_at,omitempty"`
	Embedded    *AISEmbedded   `json:"_embedded,omitempty"`
}

// AISEmbedded holds the content embedded in an AISObject. A nil map means
// the collection was not sent at all, which is different from an empty one.
type AISEmbedded struct {
	Categories map[uuid.UUID]AISObject `json:"categories"`
	Items      map[uuid.UUID]AISObject `json:"items"`
	Links      map[uuid.UUID]AISObject `json:"links"`
	Category   *AISObject              `json:"category,omitempty"`
	Item       *AISObject              `json:"item,omitempty"`
}

// AISUpdate is the top level of every inventory service reply.
type AISUpdate struct {
	AISObject

	CategoriesRemoved       []uuid.UUID         `json:"_categories_removed,omitempty"`
	CategoryItemsRemoved    []uuid.UUID         `json:"_category_items_removed,omitempty"`
	RemovedItems            []uuid.UUID         `json:"_removed_items,omitempty"`
	BrokenLinksRemoved      []uuid.UUID         `json:"_broken_links_removed,omitempty"`
	CreatedItems            []uuid.UUID         `json:"_created_items,omitempty"`
	CreatedCategories       []uuid.UUID         `json:"_created_categories,omitempty"`
	UpdatedCategoryVersions map[uuid.UUID]int32 `json:"_updated_category_versions,omitempty"`
}

// NewCategory describes a folder to create.
type NewCategory struct {
	CategoryID  uuid.UUID  `json:"category_id"`
	Name        string     `json:"name"`
	TypeDefault FolderType `json:"type_default"`
}

// NewLink describes a link to create.
type NewLink struct {
	LinkedID    uuid.UUID `json:"linked_id"`
	Name        string    `json:"name"`
	Description string    `json:"desc"`
	Type        AssetType `json:"type"`
}

// NewInventory is the body of a create request.
type NewInventory struct {
	Categories []NewCategory `json:"categories,omitempty"`
	Items      []Item        `json:"items,omitempty"`
	Links      []NewLink     `json:"links,omitempty"`
}

// LinkSet is the body of a folder slam: the folder's links are replaced by
// exactly this set.
type LinkSet struct {
	Links []NewLink `json:"links"`
}

// CategoryPatch lists the folder fields to change.
type CategoryPatch struct {
	Name        *string     `json:"name,omitempty"`
	ParentID    *uuid.UUID  `json:"parent_id,omitempty"`
	TypeDefault *FolderType `json:"type_default,omitempty"`
}

// ItemPatch lists the item fields to change.
type ItemPatch struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"desc,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Flags       *uint32    `json:"flags,omitempty"`
}
