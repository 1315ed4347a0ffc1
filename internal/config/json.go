// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		AgentID            string `json:"agent_id"`
		RootID             string `json:"root_id"`
		LibraryRootID      string `json:"library_root_id"`
		LibraryOwnerID     string `json:"library_owner_id"`
		CacheFormatVersion int    `json:"cache_format_version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"cache_dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		InventoryURL           string   `json:"inventory_url"`
		LibraryURL             string   `json:"library_url"`
		FetchDescendentsURL    string   `json:"fetch_descendents_url"`
		FetchLibDescendentsURL string   `json:"fetch_lib_descendents_url"`
		FetchItemsURL          string   `json:"fetch_items_url"`
		FetchLibItemsURL       string   `json:"fetch_lib_items_url"`
		RequestTimeout         Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		PoolSize            int      `json:"pool_size"`
		BatchSize           int      `json:"batch_size"`
		TickInterval        Duration `json:"tick_interval"`
		YieldBudget         Duration `json:"yield_budget"`
		LegacyBatchSize     int      `json:"legacy_batch_size"`
		LegacyMaxConcurrent int      `json:"legacy_max_concurrent"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AgentID:            jsonCfg.App.AgentID,
			RootID:             jsonCfg.App.RootID,
			LibraryRootID:      jsonCfg.App.LibraryRootID,
			LibraryOwnerID:     jsonCfg.App.LibraryOwnerID,
			CacheFormatVersion: jsonCfg.App.CacheFormatVersion,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Adapter: Adapter{
			InventoryURL:           jsonCfg.Adapter.InventoryURL,
			LibraryURL:             jsonCfg.Adapter.LibraryURL,
			FetchDescendentsURL:    jsonCfg.Adapter.FetchDescendentsURL,
			FetchLibDescendentsURL: jsonCfg.Adapter.FetchLibDescendentsURL,
			FetchItemsURL:          jsonCfg.Adapter.FetchItemsURL,
			FetchLibItemsURL:       jsonCfg.Adapter.FetchLibItemsURL,
			RequestTimeout:         time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			PoolSize:            jsonCfg.Workers.PoolSize,
			BatchSize:           jsonCfg.Workers.BatchSize,
			TickInterval:        time.Duration(jsonCfg.Workers.TickInterval),
			YieldBudget:         time.Duration(jsonCfg.Workers.YieldBudget),
			LegacyBatchSize:     jsonCfg.Workers.LegacyBatchSize,
			LegacyMaxConcurrent: jsonCfg.Workers.LegacyMaxConcurrent,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "180s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
