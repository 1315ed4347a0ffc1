// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrNotLoaded       = errors.New("inventory is not loaded")
	ErrDisconnected    = errors.New("inventory session is shut down")
	ErrUnknownFolder   = errors.New("unknown folder")
	ErrUnknownItem     = errors.New("unknown item")
	ErrProtectedFolder = errors.New("protected folder cannot be changed")
	ErrInvalidMove     = errors.New("invalid move")
	ErrNoCapability    = errors.New("no capability to reach the inventory service")
)
