// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/service"
	"github.com/MKhiriev/go-inventory-sync/internal/workers"
)

const autosaveInterval = 5 * time.Minute

// App is the headless mirror: one inventory session and its owner loop.
type App struct {
	inventory service.InventoryService
	cfg       *config.ClientConfig
	log       *logger.Logger

	autosaveEvery time.Duration
}

var _ Client = (*App)(nil)

func NewApp(inventory service.InventoryService, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	if inventory == nil {
		return nil, errors.New("nil inventory service")
	}
	if cfg == nil {
		return nil, errors.New("nil client config")
	}

	return &App{
		inventory:     inventory,
		cfg:           cfg,
		log:           log.Component("app"),
		autosaveEvery: autosaveInterval,
	}, nil
}

// Run loads the inventory of the configured agent and keeps it in sync
// until ctx is cancelled. The cache is saved before the session shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.inventory.Load(ctx, a.cfg.App.AgentID); err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	handle := a.inventory.AddObserver(newProgressObserver(a.inventory, a.log))

	loop := workers.NewTickWorker(a.inventory, a.cfg.Workers.TickInterval, a.log)
	autosave := workers.NewPeriodicWorker("autosave", a.autosaveEvery, func(ctx context.Context) error {
		var saveErr error
		if err := loop.Do(ctx, func(ctx context.Context) { saveErr = a.inventory.Save(ctx) }); err != nil {
			return err
		}
		return saveErr
	}, a.log)

	a.log.Info().Str("func", "App.Run").Stringer("agent_id", a.cfg.App.AgentID).Msg("inventory mirror started")
	runErr := workers.NewWorkers(loop, autosave).Run(ctx)

	// the owner loop has exited; the session is ours again
	a.inventory.RemoveObserver(handle)
	if err := a.inventory.Save(context.WithoutCancel(ctx)); err != nil {
		a.log.Err(err).Str("func", "App.Run").Msg("final cache save failed")
	}
	a.inventory.Shutdown()
	a.log.Info().Str("func", "App.Run").Msg("inventory mirror stopped")

	return runErr
}
