// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultRequestTimeout      = 180 * time.Second
	DefaultPoolSize            = 25
	DefaultBatchSize           = 20
	DefaultTickInterval        = 10 * time.Millisecond
	DefaultYieldBudget         = time.Second / 120
	DefaultLegacyBatchSize     = 10
	DefaultLegacyMaxConcurrent = 12
	DefaultCacheFormatVersion  = 1

	MinPoolSize  = 2
	MaxPoolSize  = 51
	MinBatchSize = 1
	MaxBatchSize = 40
)

// ClientApp holds the agent identity and inventory roots.
type ClientApp struct {
	AgentID            uuid.UUID
	RootID             uuid.UUID
	LibraryRootID      uuid.UUID
	LibraryOwnerID     uuid.UUID
	CacheFormatVersion int
}

// ClientAdapter holds the inventory service capability URLs.
type ClientAdapter struct {
	InventoryURL           string
	LibraryURL             string
	FetchDescendentsURL    string
	FetchLibDescendentsURL string
	FetchItemsURL          string
	FetchLibItemsURL       string
	RequestTimeout         time.Duration
}

// ClientDB contains the cache database settings.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers holds the fetch pool and owner loop settings, already
// clamped to their allowed ranges.
type ClientWorkers struct {
	PoolSize            int
	BatchSize           int
	TickInterval        time.Duration
	YieldBudget         time.Duration
	LegacyBatchSize     int
	LegacyMaxConcurrent int
}

// ClientConfig is the typed configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig loads the merged configuration via [GetStructuredConfig]
// and returns its validated client view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg to a [ClientConfig], applying defaults and
// clamping worker settings, then validates the result.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	app, err := parseClientApp(cfg.App)
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		App: app,
		Adapter: ClientAdapter{
			InventoryURL:           cfg.Adapter.InventoryURL,
			LibraryURL:             cfg.Adapter.LibraryURL,
			FetchDescendentsURL:    cfg.Adapter.FetchDescendentsURL,
			FetchLibDescendentsURL: cfg.Adapter.FetchLibDescendentsURL,
			FetchItemsURL:          cfg.Adapter.FetchItemsURL,
			FetchLibItemsURL:       cfg.Adapter.FetchLibItemsURL,
			RequestTimeout:         orDefault(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			PoolSize:            clamp(orDefault(cfg.Workers.PoolSize, DefaultPoolSize), MinPoolSize, MaxPoolSize),
			BatchSize:           clamp(orDefault(cfg.Workers.BatchSize, DefaultBatchSize), MinBatchSize, MaxBatchSize),
			TickInterval:        orDefault(cfg.Workers.TickInterval, DefaultTickInterval),
			YieldBudget:         orDefault(cfg.Workers.YieldBudget, DefaultYieldBudget),
			LegacyBatchSize:     orDefault(cfg.Workers.LegacyBatchSize, DefaultLegacyBatchSize),
			LegacyMaxConcurrent: orDefault(cfg.Workers.LegacyMaxConcurrent, DefaultLegacyMaxConcurrent),
		},
	}
	clientCfg.App.CacheFormatVersion = orDefault(clientCfg.App.CacheFormatVersion, DefaultCacheFormatVersion)

	return clientCfg, clientCfg.validate()
}

func parseClientApp(app App) (ClientApp, error) {
	var (
		out ClientApp
		err error
	)
	fields := []struct {
		raw string
		dst *uuid.UUID
	}{
		{app.AgentID, &out.AgentID},
		{app.RootID, &out.RootID},
		{app.LibraryRootID, &out.LibraryRootID},
		{app.LibraryOwnerID, &out.LibraryOwnerID},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		if *f.dst, err = uuid.Parse(f.raw); err != nil {
			return ClientApp{}, fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
		}
	}
	out.CacheFormatVersion = app.CacheFormatVersion

	return out, nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
