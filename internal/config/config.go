// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the agent identity and the inventory roots received at login.
	App App `envPrefix:"APP_"`

	// Storage holds the local inventory cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the capability URLs of the inventory service.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the fetch pool and tick settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds identity settings handed over by the login service.
type App struct {
	// AgentID is the id of the logged-in agent, the owner of the inventory.
	// Env: APP_AGENT_ID
	AgentID string `env:"AGENT_ID"`

	// RootID is the id of the agent's inventory root folder.
	// Env: APP_ROOT_ID
	RootID string `env:"ROOT_ID"`

	// LibraryRootID is the id of the shared library root folder.
	// Env: APP_LIBRARY_ROOT_ID
	LibraryRootID string `env:"LIBRARY_ROOT_ID"`

	// LibraryOwnerID is the id of the agent owning the library.
	// Env: APP_LIBRARY_OWNER_ID
	LibraryOwnerID string `env:"LIBRARY_OWNER_ID"`

	// CacheFormatVersion is the expected format of the cache; a cache saved
	// with another format is discarded on load.
	// Env: APP_CACHE_FORMAT_VERSION
	CacheFormatVersion int `env:"CACHE_FORMAT_VERSION"`
}

// Storage groups the local persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite cache settings.
type DB struct {
	// DSN is the path of the SQLite cache file.
	// Env: STORAGE_DB_CACHE_DSN
	DSN string `env:"CACHE_DSN"`
}

// Adapter holds the capability URLs of the inventory service. Empty URLs
// mean the capability was not granted.
type Adapter struct {
	// Env: ADAPTER_INVENTORY_URL
	InventoryURL string `env:"INVENTORY_URL"`
	// Env: ADAPTER_LIBRARY_URL
	LibraryURL string `env:"LIBRARY_URL"`
	// Env: ADAPTER_FETCH_DESCENDENTS_URL
	FetchDescendentsURL string `env:"FETCH_DESCENDENTS_URL"`
	// Env: ADAPTER_FETCH_LIB_DESCENDENTS_URL
	FetchLibDescendentsURL string `env:"FETCH_LIB_DESCENDENTS_URL"`
	// Env: ADAPTER_FETCH_ITEMS_URL
	FetchItemsURL string `env:"FETCH_ITEMS_URL"`
	// Env: ADAPTER_FETCH_LIB_ITEMS_URL
	FetchLibItemsURL string `env:"FETCH_LIB_ITEMS_URL"`

	// RequestTimeout bounds a single call (e.g. "180s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds fetch concurrency and owner loop settings.
type Workers struct {
	// PoolSize is the number of concurrent inventory service calls,
	// clamped to [2, 51]. One slot stays reserved for user actions.
	// Env: WORKERS_POOL_SIZE
	PoolSize int `env:"POOL_SIZE"`

	// BatchSize is the number of folders fetched by one subset call,
	// clamped to [1, 40].
	// Env: WORKERS_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// TickInterval is the period of the owner loop.
	// Env: WORKERS_TICK_INTERVAL
	TickInterval time.Duration `env:"TICK_INTERVAL"`

	// YieldBudget is the slice of a tick an update apply may use before
	// resuming on the next tick.
	// Env: WORKERS_YIELD_BUDGET
	YieldBudget time.Duration `env:"YIELD_BUDGET"`

	// Env: WORKERS_LEGACY_BATCH_SIZE
	LegacyBatchSize int `env:"LEGACY_BATCH_SIZE"`
	// Env: WORKERS_LEGACY_MAX_CONCURRENT
	LegacyMaxConcurrent int `env:"LEGACY_MAX_CONCURRENT"`
}

// GetStructuredConfig loads and merges the configuration from all sources
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
