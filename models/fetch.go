// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/google/uuid"

// FetchKind says whether a fetch request targets a folder or an item.
type FetchKind uint8

const (
	FetchKindFolder FetchKind = iota
	FetchKindItem
)

// FetchMode controls how much of the subtree a folder fetch covers.
type FetchMode uint8

const (
	// FetchDefault lists the folder only when its version is unknown.
	FetchDefault FetchMode = iota
	// FetchForced lists the folder even when its version is known.
	FetchForced
	// FetchRecursive walks the whole subtree.
	FetchRecursive
	// FetchFolderAndContent lists the folder and then the content of every
	// child folder.
	FetchFolderAndContent
	// FetchContentRecursive fetches unversioned children in subset batches.
	FetchContentRecursive
)

func (m FetchMode) String() string {
	switch m {
	case FetchDefault:
		return "default"
	case FetchForced:
		return "forced"
	case FetchRecursive:
		return "recursive"
	case FetchFolderAndContent:
		return "folder_and_content"
	case FetchContentRecursive:
		return "content_recursive"
	default:
		return "unknown"
	}
}

// Covers reports whether a queued request in mode m makes a new request in
// mode other redundant.
func (m FetchMode) Covers(other FetchMode) bool {
	if m == other {
		return true
	}
	return other == FetchDefault && (m == FetchRecursive || m == FetchFolderAndContent)
}

// FetchRequest is a queue entry of the fetch scheduler. A nil ID stands for
// the roots (folder kind) or orphans (item kind).
type FetchRequest struct {
	ID   uuid.UUID
	Kind FetchKind
	Mode FetchMode
}
