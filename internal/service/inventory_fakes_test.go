// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/models"
)

// sentCall is one call recorded by fakeAPI.
type sentCall struct {
	id        adapter.CallID
	cmd       adapter.Command
	category  models.CategoryPatch
	item      models.ItemPatch
	create    models.NewInventory
	legacy    models.LegacyFolderRequest
	legacyRef models.LegacyItemRequest
}

// fakeAPI records calls in order and lets the test deliver replies.
type fakeAPI struct {
	ais    bool
	legacy bool
	pool   int

	next        adapter.CallID
	sent        []sentCall
	completions chan adapter.Completion

	started bool
	closed  bool
	flushes int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{ais: true, pool: 25, completions: make(chan adapter.Completion, 256)}
}

func (f *fakeAPI) submit(call sentCall) (adapter.CallID, error) {
	if f.closed {
		return 0, adapter.ErrShuttingDown
	}
	f.next++
	call.id = f.next
	f.sent = append(f.sent, call)
	return f.next, nil
}

// reply delivers a completion for call.
func (f *fakeAPI) reply(call sentCall, upd *models.AISUpdate, err error) {
	f.completions <- adapter.Completion{ID: call.id, Command: call.cmd, Update: upd, Err: err}
}

func (f *fakeAPI) replyLegacy(call sentCall, legacy *adapter.LegacyReply, err error) {
	f.completions <- adapter.Completion{ID: call.id, Command: call.cmd, Legacy: legacy, Err: err}
}

// calls returns the recorded calls of the given kind.
func (f *fakeAPI) calls(kind adapter.CommandKind) []sentCall {
	var out []sentCall
	for _, c := range f.sent {
		if c.cmd.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) Start(context.Context)                  { f.started = true }
func (f *fakeAPI) Flush()                                 { f.flushes++ }
func (f *fakeAPI) Close()                                 { f.closed = true }
func (f *fakeAPI) Completions() <-chan adapter.Completion { return f.completions }
func (f *fakeAPI) PoolSize() int                          { return f.pool }
func (f *fakeAPI) Outstanding() int                       { return 0 }
func (f *fakeAPI) AISAvailable(bool) bool                 { return f.ais }
func (f *fakeAPI) LegacyAvailable(bool) bool              { return f.legacy }

func (f *fakeAPI) CreateInventory(_ context.Context, parentID uuid.UUID, body models.NewInventory) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdCreateInventory, TargetID: parentID}, create: body})
}

func (f *fakeAPI) SlamFolder(_ context.Context, folderID uuid.UUID, _ models.LinkSet) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdSlamFolder, TargetID: folderID}})
}

func (f *fakeAPI) RemoveCategory(_ context.Context, categoryID uuid.UUID) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdRemoveCategory, TargetID: categoryID}})
}

func (f *fakeAPI) RemoveItem(_ context.Context, itemID uuid.UUID) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdRemoveItem, TargetID: itemID}})
}

func (f *fakeAPI) CopyLibraryCategory(_ context.Context, sourceID, destinationID uuid.UUID, _ bool) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdCopyLibraryCategory, TargetID: sourceID, DestinationID: destinationID}})
}

func (f *fakeAPI) PurgeDescendents(_ context.Context, categoryID uuid.UUID) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdPurgeDescendents, TargetID: categoryID}})
}

func (f *fakeAPI) UpdateCategory(_ context.Context, categoryID uuid.UUID, patch models.CategoryPatch) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdUpdateCategory, TargetID: categoryID}, category: patch})
}

func (f *fakeAPI) UpdateItem(_ context.Context, itemID uuid.UUID, patch models.ItemPatch) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdUpdateItem, TargetID: itemID}, item: patch})
}

func (f *fakeAPI) FetchItem(_ context.Context, itemID uuid.UUID, library bool) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdFetchItem, TargetID: itemID, Library: library}})
}

func (f *fakeAPI) FetchCategoryChildren(_ context.Context, categoryID uuid.UUID, library bool, depth int) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdFetchCategoryChildren, TargetID: categoryID, Library: library, Depth: depth}})
}

func (f *fakeAPI) FetchCategoryCategories(_ context.Context, categoryID uuid.UUID, library bool, depth int) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdFetchCategoryCategories, TargetID: categoryID, Library: library, Depth: depth}})
}

func (f *fakeAPI) FetchCategorySubset(_ context.Context, categoryID uuid.UUID, library bool, children []uuid.UUID, depth int) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdFetchCategorySubset, TargetID: categoryID, Library: library, Children: children, Depth: depth}})
}

func (f *fakeAPI) FetchLinks(_ context.Context, categoryID uuid.UUID) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdFetchLinks, TargetID: categoryID}})
}

func (f *fakeAPI) FetchCOF(context.Context) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdFetchCOF}})
}

func (f *fakeAPI) FetchOrphans(context.Context) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdFetchOrphans}})
}

func (f *fakeAPI) LegacyFetchFolders(_ context.Context, library bool, req models.LegacyFolderRequest) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdLegacyFetchFolders, Library: library}, legacy: req})
}

func (f *fakeAPI) LegacyFetchItems(_ context.Context, library bool, req models.LegacyItemRequest) (adapter.CallID, error) {
	return f.submit(sentCall{cmd: adapter.Command{Kind: adapter.CmdLegacyFetchItems, Library: library}, legacyRef: req})
}

// spyNotifier records alerts in order.
type spyNotifier struct {
	alerts []Alert
	args   []map[string]string
}

func (n *spyNotifier) Notify(alert Alert, args map[string]string) {
	n.alerts = append(n.alerts, alert)
	n.args = append(n.args, args)
}

// spyObserver records every batch it receives.
type spyObserver struct {
	batches []models.ChangeBatch
}

func (o *spyObserver) Changed(batch models.ChangeBatch) {
	o.batches = append(o.batches, batch)
}

func (o *spyObserver) last() models.ChangeBatch {
	if len(o.batches) == 0 {
		return models.ChangeBatch{}
	}
	return o.batches[len(o.batches)-1]
}

// testWorkers is a worker config that applies every reply in one tick.
func testWorkers() config.ClientWorkers {
	return config.ClientWorkers{
		PoolSize:            25,
		BatchSize:           20,
		LegacyBatchSize:     10,
		LegacyMaxConcurrent: 12,
	}
}

// newTestTree returns a store wired to a bus, holding a root folder whose
// version is known.
func newTestTree(rootID uuid.UUID) (*store.TreeStore, *NotificationBus) {
	bus := NewNotificationBus(logger.Nop())
	tree := store.NewTreeStore(bus, logger.Nop())
	bus.SetLinkResolver(tree)
	tree.SetRoots(rootID, uuid.Nil, uuid.Nil)

	root := models.NewFolder(rootID, uuid.Nil, "My Inventory", models.FolderRoot)
	root.Version, root.DescendentCount = 1, 0
	tree.UpsertFolder(root)
	bus.Flush()

	return tree, bus
}

// addFolder puts a folder under parent and keeps the parent's counts
// consistent.
func addFolder(tree *store.TreeStore, id, parent uuid.UUID, name string, version, count int32) {
	f := models.NewFolder(id, parent, name, models.FolderNone)
	f.Version, f.DescendentCount = version, count
	tree.UpsertFolder(f)
	bumpCount(tree, parent)
}

func addItem(tree *store.TreeStore, id, parent uuid.UUID, name string) {
	tree.UpsertItem(models.Item{ID: id, ParentID: parent, Name: name, AssetType: models.AssetNotecard, InventoryType: models.InventoryNone, Complete: true})
	bumpCount(tree, parent)
}

func bumpCount(tree *store.TreeStore, parent uuid.UUID) {
	if p, ok := tree.Folder(parent); ok && !p.IsVersionUnknown() {
		tree.SetDescendentCount(parent, tree.ViewerDescendentCount(parent))
	}
}

func ptr[T any](v T) *T {
	return &v
}

// fullEmbedded returns an embedded block declaring every collection, so the
// reply fully describes the folder's content.
func fullEmbedded() *models.AISEmbedded {
	return &models.AISEmbedded{
		Categories: map[uuid.UUID]models.AISObject{},
		Items:      map[uuid.UUID]models.AISObject{},
		Links:      map[uuid.UUID]models.AISObject{},
	}
}
