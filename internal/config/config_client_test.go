// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStructuredConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AgentID: uuid.NewString(),
			RootID:  uuid.NewString(),
		},
		Storage: Storage{DB: DB{DSN: "inventory.db"}},
		Adapter: Adapter{InventoryURL: "https://cap.local/inv"},
	}
}

func TestNewClientConfig_AppliesDefaults(t *testing.T) {
	cfg, err := NewClientConfig(validStructuredConfig())
	require.NoError(t, err)

	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultPoolSize, cfg.Workers.PoolSize)
	assert.Equal(t, DefaultBatchSize, cfg.Workers.BatchSize)
	assert.Equal(t, DefaultTickInterval, cfg.Workers.TickInterval)
	assert.Equal(t, DefaultYieldBudget, cfg.Workers.YieldBudget)
	assert.Equal(t, DefaultLegacyBatchSize, cfg.Workers.LegacyBatchSize)
	assert.Equal(t, DefaultLegacyMaxConcurrent, cfg.Workers.LegacyMaxConcurrent)
	assert.Equal(t, DefaultCacheFormatVersion, cfg.App.CacheFormatVersion)
	assert.Equal(t, uuid.Nil, cfg.App.LibraryRootID)
}

func TestNewClientConfig_ClampsWorkers(t *testing.T) {
	tests := []struct {
		name      string
		pool      int
		batch     int
		wantPool  int
		wantBatch int
	}{
		{"below range", 1, 0, MinPoolSize, DefaultBatchSize},
		{"above range", 200, 99, MaxPoolSize, MaxBatchSize},
		{"in range", 8, 5, 8, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validStructuredConfig()
			raw.Workers.PoolSize = tt.pool
			raw.Workers.BatchSize = tt.batch

			cfg, err := NewClientConfig(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPool, cfg.Workers.PoolSize)
			assert.Equal(t, tt.wantBatch, cfg.Workers.BatchSize)
		})
	}
}

func TestNewClientConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{"empty dsn", func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"memory dsn", func(c *StructuredConfig) { c.Storage.DB.DSN = ":memory:" }, ErrInvalidStorageConfigs},
		{"no capability", func(c *StructuredConfig) { c.Adapter.InventoryURL = "" }, ErrInvalidAdapterConfigs},
		{"missing agent", func(c *StructuredConfig) { c.App.AgentID = "" }, ErrInvalidAppConfigs},
		{"malformed root", func(c *StructuredConfig) { c.App.RootID = "root" }, ErrInvalidAppConfigs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validStructuredConfig()
			tt.mutate(raw)

			_, err := NewClientConfig(raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewClientConfig_LegacyOnly(t *testing.T) {
	raw := validStructuredConfig()
	raw.Adapter.InventoryURL = ""
	raw.Adapter.FetchDescendentsURL = "https://cap.local/desc"
	raw.Adapter.RequestTimeout = 5 * time.Second

	cfg, err := NewClientConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
}
