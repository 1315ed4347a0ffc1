// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless inventory mirror.
//
// It loads the cached inventory, drives the session from a single owner
// loop until the process is asked to stop, saves the cache periodically and
// on exit, and reports user-visible alerts through the log.
package client
