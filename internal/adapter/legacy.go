// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// LegacyFetchFolders implements [InventoryAPI] against the
// FetchInventoryDescendents2 or FetchLibDescendents2 capability.
func (c *inventoryClient) LegacyFetchFolders(ctx context.Context, library bool, req models.LegacyFolderRequest) (CallID, error) {
	base := c.urls.fetchDescendents
	if library {
		base = c.urls.fetchLibDescendents
	}

	decode := func(body []byte) (*LegacyReply, error) {
		resp := &models.LegacyFolderResponse{}
		if err := decodeMap(body, resp); err != nil {
			return nil, err
		}
		return &LegacyReply{Folders: resp}, nil
	}

	return c.submitLegacy(ctx, Command{Kind: CmdLegacyFetchFolders, Library: library}, base, req, decode)
}

// LegacyFetchItems implements [InventoryAPI] against the FetchInventory2 or
// FetchLib2 capability.
func (c *inventoryClient) LegacyFetchItems(ctx context.Context, library bool, req models.LegacyItemRequest) (CallID, error) {
	base := c.urls.fetchItems
	if library {
		base = c.urls.fetchLibItems
	}
	if req.AgentID == uuid.Nil {
		req.AgentID = c.agentID
	}

	decode := func(body []byte) (*LegacyReply, error) {
		resp := &models.LegacyItemResponse{}
		if err := decodeMap(body, resp); err != nil {
			return nil, err
		}
		return &LegacyReply{Items: resp}, nil
	}

	return c.submitLegacy(ctx, Command{Kind: CmdLegacyFetchItems, Library: library}, base, req, decode)
}

func (c *inventoryClient) submitLegacy(
	ctx context.Context,
	cmd Command,
	base string,
	body any,
	decode func([]byte) (*LegacyReply, error),
) (CallID, error) {
	if base == "" {
		return 0, fmt.Errorf("%w: %s", ErrUnavailable, cmd.Kind)
	}

	req := aisRequest{method: http.MethodPost, base: base, body: body}
	id, err := c.pool.submit(cmd, func(poolCtx context.Context) Completion {
		raw, err := c.execute(poolCtx, req)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("func", "inventoryClient.submitLegacy").
				Stringer("command", cmd.Kind).
				Msg("legacy fetch failed")
			return Completion{Err: err}
		}
		reply, err := decode(raw)
		return Completion{Legacy: reply, Err: err}
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}
