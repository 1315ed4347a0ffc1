// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/service"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// LogNotifier reports user-visible alerts as log warnings.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notifier")}
}

func (n *LogNotifier) Notify(alert service.Alert, args map[string]string) {
	ev := n.log.Warn().Str("func", "LogNotifier.Notify").Str("alert", string(alert))
	for k, v := range args {
		ev = ev.Str(k, v)
	}
	ev.Msg("inventory alert")
}

// progressObserver logs once when the background fetch has covered the
// whole tree.
type progressObserver struct {
	inventory service.InventoryService
	log       *logger.Logger

	batches  int
	reported bool
}

func newProgressObserver(inventory service.InventoryService, log *logger.Logger) *progressObserver {
	return &progressObserver{inventory: inventory, log: log}
}

func (o *progressObserver) Changed(batch models.ChangeBatch) {
	o.batches++
	if o.reported || !o.inventory.IsEverythingFetched() {
		return
	}
	o.reported = true
	o.log.Info().
		Str("func", "progressObserver.Changed").
		Int("batches", o.batches).
		Int("last_batch_size", len(batch.Changed)).
		Msg("inventory fully fetched")
}
