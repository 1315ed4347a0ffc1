// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/utils"
	"github.com/MKhiriev/go-inventory-sync/models"
)

const methodCopy = "COPY"

type inventoryClient struct {
	http    *utils.HTTPClient
	pool    *callPool
	tids    *utils.UUIDGenerator
	urls    capabilityURLs
	agentID uuid.UUID
	logger  *logger.Logger
}

type capabilityURLs struct {
	inventory           string
	library             string
	fetchDescendents    string
	fetchLibDescendents string
	fetchItems          string
	fetchLibItems       string
}

// aisRequest is one HTTP exchange with a capability URL.
type aisRequest struct {
	method  string
	base    string
	path    string
	query   map[string]string
	headers map[string]string
	body    any
}

// NewInventoryClient builds an [InventoryAPI] over the capability URLs in
// adapterCfg. Empty URLs are allowed and make the matching calls fail with
// [ErrUnavailable]; malformed ones are an error.
func NewInventoryClient(adapterCfg config.ClientAdapter, workersCfg config.ClientWorkers, agentID uuid.UUID, log *logger.Logger) (InventoryAPI, error) {
	urls := capabilityURLs{}
	targets := []struct {
		raw string
		dst *string
	}{
		{adapterCfg.InventoryURL, &urls.inventory},
		{adapterCfg.LibraryURL, &urls.library},
		{adapterCfg.FetchDescendentsURL, &urls.fetchDescendents},
		{adapterCfg.FetchLibDescendentsURL, &urls.fetchLibDescendents},
		{adapterCfg.FetchItemsURL, &urls.fetchItems},
		{adapterCfg.FetchLibItemsURL, &urls.fetchLibItems},
	}
	for _, t := range targets {
		if strings.TrimSpace(t.raw) == "" {
			continue
		}
		normalized, err := normalizeBaseURL(t.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid capability url %q: %w", t.raw, err)
		}
		*t.dst = normalized
	}

	clientLog := log.Component("inventory_client")

	return &inventoryClient{
		http:    utils.NewHTTPClient(adapterCfg.RequestTimeout),
		pool:    newCallPool(workersCfg.PoolSize, clientLog),
		tids:    utils.NewUUIDGenerator(),
		urls:    urls,
		agentID: agentID,
		logger:  clientLog,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Start implements [InventoryAPI]. Calls submitted before Start are
// released in submission order.
func (c *inventoryClient) Start(ctx context.Context) {
	c.pool.start(ctx)
}

func (c *inventoryClient) Flush() {
	c.pool.flush()
}

func (c *inventoryClient) Close() {
	c.pool.close()
}

func (c *inventoryClient) Completions() <-chan Completion {
	return c.pool.completions
}

func (c *inventoryClient) PoolSize() int {
	return c.pool.size
}

func (c *inventoryClient) Outstanding() int {
	return c.pool.outstanding()
}

func (c *inventoryClient) AISAvailable(library bool) bool {
	return c.aisBase(library) != ""
}

func (c *inventoryClient) LegacyAvailable(library bool) bool {
	if library {
		return c.urls.fetchLibDescendents != "" && c.urls.fetchLibItems != ""
	}
	return c.urls.fetchDescendents != "" && c.urls.fetchItems != ""
}

func (c *inventoryClient) aisBase(library bool) string {
	if library {
		return c.urls.library
	}
	return c.urls.inventory
}

func (c *inventoryClient) CreateInventory(ctx context.Context, parentID uuid.UUID, body models.NewInventory) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdCreateInventory, TargetID: parentID}, aisRequest{
		method: http.MethodPost,
		path:   "/category/" + parentID.String(),
		query:  map[string]string{"tid": c.tids.Generate().String()},
		body:   body,
	})
}

func (c *inventoryClient) SlamFolder(ctx context.Context, folderID uuid.UUID, links models.LinkSet) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdSlamFolder, TargetID: folderID}, aisRequest{
		method: http.MethodPut,
		path:   "/category/" + folderID.String() + "/links",
		query:  map[string]string{"tid": c.tids.Generate().String()},
		body:   links,
	})
}

func (c *inventoryClient) RemoveCategory(ctx context.Context, categoryID uuid.UUID) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdRemoveCategory, TargetID: categoryID}, aisRequest{
		method: http.MethodDelete,
		path:   "/category/" + categoryID.String(),
	})
}

func (c *inventoryClient) RemoveItem(ctx context.Context, itemID uuid.UUID) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdRemoveItem, TargetID: itemID}, aisRequest{
		method: http.MethodDelete,
		path:   "/item/" + itemID.String(),
	})
}

func (c *inventoryClient) CopyLibraryCategory(ctx context.Context, sourceID, destinationID uuid.UUID, copySubfolders bool) (CallID, error) {
	query := map[string]string{"tid": c.tids.Generate().String()}
	if !copySubfolders {
		query["depth"] = "0"
	}
	return c.submitAIS(ctx, Command{Kind: CmdCopyLibraryCategory, TargetID: sourceID, DestinationID: destinationID, Library: true}, aisRequest{
		method:  methodCopy,
		path:    "/category/" + sourceID.String(),
		query:   query,
		headers: map[string]string{"Destination": destinationID.String()},
	})
}

func (c *inventoryClient) PurgeDescendents(ctx context.Context, categoryID uuid.UUID) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdPurgeDescendents, TargetID: categoryID}, aisRequest{
		method: http.MethodDelete,
		path:   "/category/" + categoryID.String() + "/children",
	})
}

func (c *inventoryClient) UpdateCategory(ctx context.Context, categoryID uuid.UUID, patch models.CategoryPatch) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdUpdateCategory, TargetID: categoryID}, aisRequest{
		method: http.MethodPatch,
		path:   "/category/" + categoryID.String(),
		body:   patch,
	})
}

func (c *inventoryClient) UpdateItem(ctx context.Context, itemID uuid.UUID, patch models.ItemPatch) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdUpdateItem, TargetID: itemID}, aisRequest{
		method: http.MethodPatch,
		path:   "/item/" + itemID.String(),
		body:   patch,
	})
}

func (c *inventoryClient) FetchItem(ctx context.Context, itemID uuid.UUID, library bool) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdFetchItem, TargetID: itemID, Library: library}, aisRequest{
		method: http.MethodGet,
		path:   "/item/" + itemID.String(),
	})
}

func (c *inventoryClient) FetchCategoryChildren(ctx context.Context, categoryID uuid.UUID, library bool, depth int) (CallID, error) {
	depth = capDepth(depth)
	return c.submitAIS(ctx, Command{Kind: CmdFetchCategoryChildren, TargetID: categoryID, Depth: depth, Library: library}, aisRequest{
		method: http.MethodGet,
		path:   "/category/" + categoryID.String() + "/children",
		query:  map[string]string{"depth": strconv.Itoa(depth)},
	})
}

func (c *inventoryClient) FetchCategoryCategories(ctx context.Context, categoryID uuid.UUID, library bool, depth int) (CallID, error) {
	depth = capDepth(depth)
	return c.submitAIS(ctx, Command{Kind: CmdFetchCategoryCategories, TargetID: categoryID, Depth: depth, Library: library}, aisRequest{
		method: http.MethodGet,
		path:   "/category/" + categoryID.String() + "/categories",
		query:  map[string]string{"depth": strconv.Itoa(depth)},
	})
}

func (c *inventoryClient) FetchCategorySubset(ctx context.Context, categoryID uuid.UUID, library bool, children []uuid.UUID, depth int) (CallID, error) {
	depth = capDepth(depth)
	ids := make([]string, 0, len(children))
	for _, id := range children {
		ids = append(ids, id.String())
	}
	cmd := Command{
		Kind:     CmdFetchCategorySubset,
		TargetID: categoryID,
		Children: append([]uuid.UUID(nil), children...),
		Depth:    depth,
		Library:  library,
	}
	return c.submitAIS(ctx, cmd, aisRequest{
		method: http.MethodGet,
		path:   "/category/" + categoryID.String() + "/children",
		query: map[string]string{
			"depth":    strconv.Itoa(depth),
			"children": strings.Join(ids, ","),
		},
	})
}

func (c *inventoryClient) FetchLinks(ctx context.Context, categoryID uuid.UUID) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdFetchLinks, TargetID: categoryID}, aisRequest{
		method: http.MethodGet,
		path:   "/category/" + categoryID.String() + "/links",
	})
}

func (c *inventoryClient) FetchCOF(ctx context.Context) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdFetchCOF}, aisRequest{
		method: http.MethodGet,
		path:   "/category/current/links",
	})
}

func (c *inventoryClient) FetchOrphans(ctx context.Context) (CallID, error) {
	return c.submitAIS(ctx, Command{Kind: CmdFetchOrphans}, aisRequest{
		method: http.MethodGet,
		path:   "/orphans",
	})
}

func (c *inventoryClient) submitAIS(ctx context.Context, cmd Command, req aisRequest) (CallID, error) {
	req.base = c.aisBase(cmd.Library)
	if req.base == "" {
		return 0, fmt.Errorf("%w: %s", ErrUnavailable, cmd.Kind)
	}

	id, err := c.pool.submit(cmd, func(poolCtx context.Context) Completion {
		return c.doAIS(poolCtx, cmd, req)
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "inventoryClient.submitAIS").
		Uint64("call_id", uint64(id)).
		Stringer("command", cmd.Kind).
		Stringer("target_id", cmd.TargetID).
		Msg("call queued")

	return id, nil
}

func (c *inventoryClient) doAIS(ctx context.Context, cmd Command, req aisRequest) Completion {
	body, err := c.execute(ctx, req)
	if err != nil && body == nil {
		return Completion{Err: err}
	}

	comp := Completion{Err: err}
	if len(body) > 0 {
		update := &models.AISUpdate{}
		if decodeErr := decodeMap(body, update); decodeErr != nil {
			if comp.Err == nil {
				comp.Err = decodeErr
			}
		} else {
			comp.Update = update
		}
	} else if comp.Err == nil && cmd.Kind.IsFetch() {
		comp.Err = fmt.Errorf("%w: empty body", ErrMalformed)
	}

	if comp.Err != nil {
		c.logger.Warn().
			Err(comp.Err).
			Str("func", "inventoryClient.doAIS").
			Stringer("command", cmd.Kind).
			Stringer("target_id", cmd.TargetID).
			Msg("inventory call failed")
	}

	return comp
}

// execute performs req. A nil body with an error means no reply was
// received; an HTTP error status returns the body alongside the error.
func (c *inventoryClient) execute(ctx context.Context, req aisRequest) ([]byte, error) {
	r := c.http.R().SetContext(ctx)
	if req.query != nil {
		r.SetQueryParams(req.query)
	}
	for k, v := range req.headers {
		r.SetHeader(k, v)
	}
	if req.body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.body)
	}

	resp, err := r.Execute(req.method, req.base+req.path)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("%w: %w", ErrShuttingDown, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	body := resp.Body()
	if body == nil {
		body = []byte{}
	}
	return body, mapHTTPError(resp)
}

// decodeMap rejects any reply that is not a JSON object.
func decodeMap(body []byte, dst any) error {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return fmt.Errorf("%w: reply is not a map", ErrMalformed)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}
