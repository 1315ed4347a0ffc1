// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the inventory mirror.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetStructuredConfig] returns the merged raw configuration;
// [GetClientConfig] returns the typed, defaulted and validated view used to
// wire the runtime.
package config
