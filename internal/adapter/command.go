// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// MaxFolderDepthRequest is the deepest recursion the inventory service
// accepts for a children or categories listing.
const MaxFolderDepthRequest = 50

// CommandKind names the remote intent behind a call.
type CommandKind uint8

const (
	CmdCreateInventory CommandKind = iota
	CmdSlamFolder
	CmdRemoveCategory
	CmdRemoveItem
	CmdCopyLibraryCategory
	CmdPurgeDescendents
	CmdUpdateCategory
	CmdUpdateItem
	CmdFetchItem
	CmdFetchCategoryChildren
	CmdFetchCategoryCategories
	CmdFetchCategorySubset
	CmdFetchLinks
	CmdFetchCOF
	CmdFetchOrphans
	CmdLegacyFetchFolders
	CmdLegacyFetchItems
)

var commandNames = [...]string{
	CmdCreateInventory:         "CreateInventory",
	CmdSlamFolder:              "SlamFolder",
	CmdRemoveCategory:          "RemoveCategory",
	CmdRemoveItem:              "RemoveItem",
	CmdCopyLibraryCategory:     "CopyLibraryCategory",
	CmdPurgeDescendents:        "PurgeDescendents",
	CmdUpdateCategory:          "UpdateCategory",
	CmdUpdateItem:              "UpdateItem",
	CmdFetchItem:               "FetchItem",
	CmdFetchCategoryChildren:   "FetchCategoryChildren",
	CmdFetchCategoryCategories: "FetchCategoryCategories",
	CmdFetchCategorySubset:     "FetchCategorySubset",
	CmdFetchLinks:              "FetchLinks",
	CmdFetchCOF:                "FetchCOF",
	CmdFetchOrphans:            "FetchOrphans",
	CmdLegacyFetchFolders:      "LegacyFetchFolders",
	CmdLegacyFetchItems:        "LegacyFetchItems",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "Unknown"
}

// IsFetch reports whether replies to k are a full snapshot of what they
// carry rather than the result of a mutation.
func (k CommandKind) IsFetch() bool {
	return k >= CmdFetchItem && k <= CmdLegacyFetchItems
}

// CallID identifies one submitted call. Ids are never reused within a
// client.
type CallID uint64

// Command describes a submitted call. It is echoed back unchanged in the
// call's Completion so the owner can route the reply.
type Command struct {
	Kind CommandKind
	// TargetID is the folder or item the call is about: the parent for
	// CreateInventory, the source for CopyLibraryCategory.
	TargetID uuid.UUID
	// DestinationID is set for CopyLibraryCategory only.
	DestinationID uuid.UUID
	// Children lists the requested ids of a subset fetch.
	Children []uuid.UUID
	// Depth is the requested recursion for listings, already capped.
	Depth   int
	Library bool
}

// LegacyReply holds the decoded body of a legacy capability call. Exactly
// one field is set.
type LegacyReply struct {
	Folders *models.LegacyFolderResponse
	Items   *models.LegacyItemResponse
}

// Completion is the outcome of a call, delivered on
// [InventoryAPI.Completions]. Update is set whenever the reply carried a
// JSON map, even alongside Err.
type Completion struct {
	ID      CallID
	Command Command
	Update  *models.AISUpdate
	Legacy  *LegacyReply
	Err     error
}

func capDepth(depth int) int {
	return max(0, min(depth, MaxFolderDepthRequest))
}
