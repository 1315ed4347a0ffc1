// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Tree errors. Callers should use [errors.Is] to match against these values.
var (
	// ErrNodeNotFound is returned when an operation targets an id the tree
	// does not hold.
	ErrNodeNotFound = errors.New("inventory node not found")

	// ErrFolderNotEmpty is returned when removing a folder that still has
	// children. The tree is left unchanged.
	ErrFolderNotEmpty = errors.New("folder still has children")

	// ErrVersionUnknown is returned by accounting on a folder whose version
	// was never received.
	ErrVersionUnknown = errors.New("folder version unknown")

	// ErrAccountingMismatch is returned by accounting when the server and
	// viewer descendant counts already disagree.
	ErrAccountingMismatch = errors.New("descendent count mismatch")
)

// Cache errors.
var (
	// ErrCacheNotFound is returned when no cache was saved for the account.
	ErrCacheNotFound = errors.New("inventory cache not found")

	// ErrCacheFormatMismatch is returned when the saved cache has another
	// format version than the one expected.
	ErrCacheFormatMismatch = errors.New("inventory cache format mismatch")

	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRows is returned when scanning a result row fails.
	ErrScanningRows = errors.New("failed to scan cache rows")
)
