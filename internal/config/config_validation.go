// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"

	"github.com/google/uuid"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.InventoryURL == "" && cfg.Adapter.FetchDescendentsURL == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.TickInterval <= 0 || cfg.Workers.YieldBudget <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.AgentID == uuid.Nil || cfg.App.RootID == uuid.Nil {
		return ErrInvalidAppConfigs
	}

	return nil
}
