// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/google/uuid"

// LegacyFolderRef asks for the content of one folder in a batched
// descendents request.
type LegacyFolderRef struct {
	FolderID     uuid.UUID `json:"folder_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	SortOrder    int       `json:"sort_order"`
	FetchFolders bool      `json:"fetch_folders"`
	FetchItems   bool      `json:"fetch_items"`
}

type LegacyFolderRequest struct {
	Folders []LegacyFolderRef `json:"folders"`
}

// LegacyCategory is a child folder inside a descendents reply.
type LegacyCategory struct {
	CategoryID  uuid.UUID  `json:"category_id"`
	ParentID    uuid.UUID  `json:"parent_id"`
	Name        string     `json:"name"`
	TypeDefault FolderType `json:"type_default"`
}

// LegacyFolderContent is one folder of a descendents reply. A nil FolderID
// carries orphaned items.
type LegacyFolderContent struct {
	FolderID    *uuid.UUID       `json:"folder_id"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Version     int32            `json:"version"`
	Descendents int32            `json:"descendents"`
	Categories  []LegacyCategory `json:"categories"`
	Items       []Item           `json:"items"`
}

type LegacyBadFolder struct {
	FolderID uuid.UUID `json:"folder_id"`
	Error    string    `json:"error"`
}

type LegacyFolderResponse struct {
	Folders    []LegacyFolderContent `json:"folders"`
	BadFolders []LegacyBadFolder     `json:"bad_folders"`
}

type LegacyItemRef struct {
	OwnerID uuid.UUID `json:"owner_id"`
	ItemID  uuid.UUID `json:"item_id"`
}

type LegacyItemRequest struct {
	AgentID uuid.UUID       `json:"agent_id"`
	Items   []LegacyItemRef `json:"items"`
}

type LegacyItemResponse struct {
	Items    []Item      `json:"items"`
	BadItems []uuid.UUID `json:"bad_items"`
}
