// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-inventory-sync/internal/adapter"
	"github.com/MKhiriev/go-inventory-sync/internal/config"
	"github.com/MKhiriev/go-inventory-sync/internal/logger"
	"github.com/MKhiriev/go-inventory-sync/internal/mock"
	"github.com/MKhiriev/go-inventory-sync/internal/store"
	"github.com/MKhiriev/go-inventory-sync/models"
)

type inventoryFixture struct {
	inv      *Inventory
	api      *fakeAPI
	notifier *spyNotifier
	root     uuid.UUID
	agent    uuid.UUID
}

func newInventoryFixture(t *testing.T, cache store.CacheRepository, messages adapter.MessageSender) *inventoryFixture {
	t.Helper()
	fx := &inventoryFixture{api: newFakeAPI(), notifier: &spyNotifier{}, root: uuid.New(), agent: uuid.New()}
	cfg := &config.ClientConfig{
		App:     config.ClientApp{AgentID: fx.agent, RootID: fx.root},
		Workers: testWorkers(),
	}
	fx.inv = NewInventory(fx.api, cache, messages, fx.notifier, cfg, logger.Nop())
	return fx
}

// loaded returns a fixture whose root is listed and empty, with the initial
// fetch finished.
func loaded(t *testing.T) *inventoryFixture {
	t.Helper()
	fx := newInventoryFixture(t, nil, nil)
	ctx := context.Background()
	require.NoError(t, fx.inv.Load(ctx, fx.agent))

	fx.inv.Tick(ctx)
	calls := fx.api.calls(adapter.CmdFetchCategoryChildren)
	require.Len(t, calls, 1)
	fx.api.reply(calls[0], rootListing(fx.root), nil)
	fx.inv.Tick(ctx)
	require.True(t, fx.inv.IsEverythingFetched())

	return fx
}

func rootListing(root uuid.UUID) *models.AISUpdate {
	return &models.AISUpdate{AISObject: models.AISObject{
		CategoryID: ptr(root), Name: ptr("My Inventory"), Version: ptr(int32(1)), Embedded: fullEmbedded(),
	}}
}

// ── Load / Tick ──────────────────────────────────────────────────────────────

func TestInventory_Load_EmptyCache_FetchesRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCacheRepository(ctrl)
	fx := newInventoryFixture(t, cache, nil)
	cache.EXPECT().Load(gomock.Any(), fx.agent, gomock.Any()).Return(models.CacheSnapshot{}, store.ErrCacheNotFound)

	require.NoError(t, fx.inv.Load(context.Background(), fx.agent))
	fx.inv.Tick(context.Background())

	assert.True(t, fx.api.started)
	root, ok := fx.inv.Store().Folder(fx.root)
	require.True(t, ok)
	assert.True(t, root.IsVersionUnknown())
	calls := fx.api.calls(adapter.CmdFetchCategoryChildren)
	require.Len(t, calls, 1)
	assert.Equal(t, fx.root, calls[0].cmd.TargetID)
	assert.Empty(t, fx.api.calls(adapter.CmdFetchCOF))
}

func TestInventory_Load_CachedOutfit_FetchesCurrentOutfit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCacheRepository(ctrl)
	fx := newInventoryFixture(t, cache, nil)

	root := models.NewFolder(fx.root, uuid.Nil, "My Inventory", models.FolderRoot)
	root.Version, root.DescendentCount = 2, 1
	cof := models.NewFolder(uuid.New(), fx.root, "Current Outfit", models.FolderCurrentOutfit)
	cache.EXPECT().Load(gomock.Any(), fx.agent, gomock.Any()).
		Return(models.CacheSnapshot{Folders: []models.Folder{root, cof}}, nil)

	require.NoError(t, fx.inv.Load(context.Background(), fx.agent))

	assert.Len(t, fx.api.calls(adapter.CmdFetchCOF), 1)
}

func TestInventory_Load_CacheError(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCacheRepository(ctrl)
	fx := newInventoryFixture(t, cache, nil)
	cache.EXPECT().Load(gomock.Any(), fx.agent, gomock.Any()).Return(models.CacheSnapshot{}, errors.New("disk gone"))

	err := fx.inv.Load(context.Background(), fx.agent)

	require.Error(t, err)
	assert.False(t, fx.api.started)
}

func TestInventory_Load_FromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCacheRepository(ctrl)
	fx := newInventoryFixture(t, cache, nil)
	folder := uuid.New()

	root := models.NewFolder(fx.root, uuid.Nil, "My Inventory", models.FolderRoot)
	root.Version, root.DescendentCount = 4, 1
	f := models.NewFolder(folder, fx.root, "Cached", models.FolderNone)
	f.Version, f.DescendentCount = 2, 0
	cache.EXPECT().Load(gomock.Any(), fx.agent, gomock.Any()).
		Return(models.CacheSnapshot{Folders: []models.Folder{root, f}}, nil)

	require.NoError(t, fx.inv.Load(context.Background(), fx.agent))

	got, ok := fx.inv.Store().Folder(folder)
	require.True(t, ok)
	assert.Equal(t, "Cached", got.Name)
	assert.True(t, fx.inv.Store().IsComplete(fx.root))
}

func TestInventory_InitialFetch_Completes(t *testing.T) {
	fx := loaded(t)

	assert.False(t, fx.inv.IsBackgroundFetchActive())
	root, _ := fx.inv.Store().Folder(fx.root)
	assert.Equal(t, int32(1), root.Version)
	assert.Equal(t, int32(0), root.DescendentCount)
}

func TestInventory_Tick_NotifiesObservers(t *testing.T) {
	fx := newInventoryFixture(t, nil, nil)
	obs := &spyObserver{}
	fx.inv.AddObserver(obs)
	ctx := context.Background()

	require.NoError(t, fx.inv.Load(ctx, fx.agent))
	fx.inv.Tick(ctx)

	require.Len(t, obs.batches, 1)
	assert.Equal(t, models.ChangeAll, obs.last().Mask)
}

func TestInventory_RemoveObserver(t *testing.T) {
	fx := newInventoryFixture(t, nil, nil)
	obs := &spyObserver{}
	h := fx.inv.AddObserver(obs)
	fx.inv.RemoveObserver(h)

	require.NoError(t, fx.inv.Load(context.Background(), fx.agent))
	fx.inv.Tick(context.Background())

	assert.Empty(t, obs.batches)
}

func TestInventory_BrokenLink_RepairedNextTick(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	link, target := uuid.New(), uuid.New()
	tree := fx.inv.Store()
	tree.UpsertItem(models.Item{ID: link, ParentID: fx.root, Name: "link", AssetType: models.AssetLink, LinkedID: target, Complete: true})
	require.True(t, tree.IsBrokenLink(link))
	fx.inv.Tick(ctx)

	obs := &spyObserver{}
	fx.inv.AddObserver(obs)

	// цель ссылки приходит ответом на отдельный запрос
	_, err := fx.api.FetchItem(ctx, target, false)
	require.NoError(t, err)
	fetches := fx.api.calls(adapter.CmdFetchItem)
	fx.api.reply(fetches[len(fetches)-1], &models.AISUpdate{AISObject: models.AISObject{
		ItemID: ptr(target), ParentID: ptr(fx.root), Name: ptr("target"), Type: ptr(models.AssetNotecard),
	}}, nil)
	fx.inv.Tick(ctx)

	assert.False(t, tree.IsBrokenLink(link))
	require.NotEmpty(t, obs.batches)
	assert.True(t, obs.last().Changed[link].Has(models.ChangeRebuild))
}

func TestInventory_RepliesAfterShutdown_Discarded(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	folder := uuid.New()

	fx.inv.Shutdown()
	fx.inv.Shutdown()
	assert.True(t, fx.api.closed)

	fx.api.completions <- adapter.Completion{ID: 99, Command: adapter.Command{Kind: adapter.CmdFetchCategoryChildren, TargetID: fx.root}, Update: &models.AISUpdate{
		AISObject: models.AISObject{Embedded: &models.AISEmbedded{Categories: map[uuid.UUID]models.AISObject{
			folder: {ParentID: ptr(fx.root), Name: ptr("late")},
		}}},
	}}
	fx.inv.Tick(ctx)

	assert.Equal(t, models.NodeUnknown, fx.inv.Store().Kind(folder))
	_, err := fx.inv.CreateFolder(ctx, fx.root, "x", models.FolderNone)
	assert.ErrorIs(t, err, ErrDisconnected)
}

// ── Failures ─────────────────────────────────────────────────────────────────

func TestInventory_RemoveFolderGone_RefetchesParent(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	tree := fx.inv.Store()
	parent, gone, sibling := uuid.New(), uuid.New(), uuid.New()
	addFolder(tree, parent, fx.root, "P", 3, 0)
	addFolder(tree, gone, parent, "Gone", 1, 0)
	addFolder(tree, sibling, parent, "Sibling", 1, 0)

	require.NoError(t, fx.inv.RemoveFolder(ctx, gone))
	removes := fx.api.calls(adapter.CmdRemoveCategory)
	require.Len(t, removes, 1)
	fx.api.reply(removes[0], nil, adapter.ErrGone)
	fx.inv.Tick(ctx)

	fetches := fx.api.calls(adapter.CmdFetchCategoryChildren)
	require.NotEmpty(t, fetches)
	assert.Equal(t, parent, fetches[len(fetches)-1].cmd.TargetID)
	// соседние каталоги не трогаем
	assert.Equal(t, models.NodeFolder, tree.Kind(sibling))
	assert.Equal(t, models.NodeFolder, tree.Kind(gone))
}

func TestInventory_RemoveItemGone_DeletesLocally(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	tree := fx.inv.Store()
	parent, item := uuid.New(), uuid.New()
	addFolder(tree, parent, fx.root, "P", 5, 0)
	addItem(tree, item, parent, "x")

	require.NoError(t, fx.inv.RemoveItem(ctx, item))
	removes := fx.api.calls(adapter.CmdRemoveItem)
	require.Len(t, removes, 1)
	fx.api.reply(removes[0], nil, adapter.ErrGone)
	fx.inv.Tick(ctx)

	assert.Equal(t, models.NodeUnknown, tree.Kind(item))
	p, _ := tree.Folder(parent)
	assert.Equal(t, int32(0), p.DescendentCount)
	assert.Equal(t, int32(6), p.Version)
}

func TestInventory_RepliesAppliedInArrivalOrder(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	tree := fx.inv.Store()
	item := uuid.New()
	addItem(tree, item, fx.root, "first")

	require.NoError(t, fx.inv.RenameItem(ctx, item, "second"))
	require.NoError(t, fx.inv.RenameItem(ctx, item, "third"))
	renames := fx.api.calls(adapter.CmdUpdateItem)
	require.Len(t, renames, 2)

	fx.api.reply(renames[0], &models.AISUpdate{AISObject: models.AISObject{ItemID: ptr(item), Name: ptr("second")}}, nil)
	fx.api.reply(renames[1], &models.AISUpdate{AISObject: models.AISObject{ItemID: ptr(item), Name: ptr("third")}}, nil)
	fx.inv.Tick(ctx)

	it, _ := tree.Item(item)
	assert.Equal(t, "third", it.Name)
}

// ── Mutations ────────────────────────────────────────────────────────────────

func TestInventory_Operations_BeforeLoad(t *testing.T) {
	fx := newInventoryFixture(t, nil, nil)

	err := fx.inv.RenameFolder(context.Background(), uuid.New(), "x")

	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestInventory_RenameFolder(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	folder := uuid.New()
	addFolder(fx.inv.Store(), folder, fx.root, "Old", 1, 0)

	require.NoError(t, fx.inv.RenameFolder(ctx, folder, "New"))

	calls := fx.api.calls(adapter.CmdUpdateCategory)
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].category.Name)
	assert.Equal(t, "New", *calls[0].category.Name)
	assert.Nil(t, calls[0].category.ParentID)
}

func TestInventory_RenameFolder_SameName_NoCall(t *testing.T) {
	fx := loaded(t)
	folder := uuid.New()
	addFolder(fx.inv.Store(), folder, fx.root, "Same", 1, 0)

	require.NoError(t, fx.inv.RenameFolder(context.Background(), folder, "Same"))

	assert.Empty(t, fx.api.calls(adapter.CmdUpdateCategory))
}

func TestInventory_ProtectedFolder_Refused(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	trash := uuid.New()
	f := models.NewFolder(trash, fx.root, "Trash", models.FolderTrash)
	f.Version, f.DescendentCount = 1, 0
	fx.inv.Store().UpsertFolder(f)

	assert.ErrorIs(t, fx.inv.RenameFolder(ctx, trash, "Bin"), ErrProtectedFolder)
	assert.ErrorIs(t, fx.inv.RemoveFolder(ctx, trash), ErrProtectedFolder)
	assert.ErrorIs(t, fx.inv.RenameFolder(ctx, fx.root, "Mine"), ErrProtectedFolder)
	assert.Empty(t, fx.api.sent[1:])
}

func TestInventory_MoveFolder(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	tree := fx.inv.Store()
	a, b, inner := uuid.New(), uuid.New(), uuid.New()
	addFolder(tree, a, fx.root, "A", 1, 0)
	addFolder(tree, b, fx.root, "B", 1, 0)
	addFolder(tree, inner, a, "Inner", 1, 0)

	require.NoError(t, fx.inv.MoveFolder(ctx, b, a))
	assert.ErrorIs(t, fx.inv.MoveFolder(ctx, a, inner), ErrInvalidMove)
	assert.ErrorIs(t, fx.inv.MoveFolder(ctx, a, a), ErrInvalidMove)
	assert.ErrorIs(t, fx.inv.MoveFolder(ctx, a, uuid.New()), ErrUnknownFolder)

	calls := fx.api.calls(adapter.CmdUpdateCategory)
	require.Len(t, calls, 1)
	assert.Equal(t, b, calls[0].cmd.TargetID)
	assert.Equal(t, a, *calls[0].category.ParentID)
}

func TestInventory_MoveItem(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	tree := fx.inv.Store()
	folder, item := uuid.New(), uuid.New()
	addFolder(tree, folder, fx.root, "F", 1, 0)
	addItem(tree, item, fx.root, "x")

	require.NoError(t, fx.inv.MoveItem(ctx, item, folder))
	assert.ErrorIs(t, fx.inv.MoveItem(ctx, uuid.New(), folder), ErrUnknownItem)

	calls := fx.api.calls(adapter.CmdUpdateItem)
	require.Len(t, calls, 1)
	assert.Equal(t, folder, *calls[0].item.ParentID)
}

func TestInventory_CreateFolder_AIS(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()

	id, err := fx.inv.CreateFolder(ctx, fx.root, "Stuff", models.FolderNone)
	require.NoError(t, err)

	calls := fx.api.calls(adapter.CmdCreateInventory)
	require.Len(t, calls, 1)
	require.Len(t, calls[0].create.Categories, 1)
	assert.Equal(t, id, calls[0].create.Categories[0].CategoryID)
	assert.Equal(t, "Stuff", calls[0].create.Categories[0].Name)
	// каталог появляется только после ответа сервера
	assert.Equal(t, models.NodeUnknown, fx.inv.Store().Kind(id))

	upd := &models.AISUpdate{
		AISObject: models.AISObject{Embedded: &models.AISEmbedded{Categories: map[uuid.UUID]models.AISObject{
			id: {ParentID: ptr(fx.root), Name: ptr("Stuff"), Version: ptr(int32(1)), Embedded: fullEmbedded()},
		}}},
		CreatedCategories:       []uuid.UUID{id},
		UpdatedCategoryVersions: map[uuid.UUID]int32{fx.root: 2},
	}
	fx.api.reply(calls[0], upd, nil)
	fx.inv.Tick(ctx)

	assert.Equal(t, models.NodeFolder, fx.inv.Store().Kind(id))
	assert.True(t, fx.inv.Store().IsComplete(fx.root))
}

func TestInventory_CreateFolder_FailureAlerts(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()

	_, err := fx.inv.CreateFolder(ctx, fx.root, "Stuff", models.FolderNone)
	require.NoError(t, err)
	calls := fx.api.calls(adapter.CmdCreateInventory)
	require.Len(t, calls, 1)

	fx.api.reply(calls[0], nil, adapter.ErrUnavailable)
	fx.inv.Tick(ctx)

	assert.Contains(t, fx.notifier.alerts, AlertCreateFolderFailed)
}

func TestInventory_CreateFolder_UnknownParent(t *testing.T) {
	fx := loaded(t)

	_, err := fx.inv.CreateFolder(context.Background(), uuid.New(), "x", models.FolderNone)

	assert.ErrorIs(t, err, ErrUnknownFolder)
}

func TestInventory_CreateFolder_LegacyMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	messages := mock.NewMockMessageSender(ctrl)
	fx := newInventoryFixture(t, nil, messages)
	fx.api.ais, fx.api.legacy = false, true
	ctx := context.Background()
	require.NoError(t, fx.inv.Load(ctx, fx.agent))
	fx.inv.Store().SetVersion(fx.root, 1)
	fx.inv.Store().SetDescendentCount(fx.root, 0)

	messages.EXPECT().SendCreateFolder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.Folder) error {
			assert.Equal(t, fx.root, f.ParentID)
			assert.Equal(t, fx.agent, f.OwnerID)
			return nil
		})

	id, err := fx.inv.CreateFolder(ctx, fx.root, "Legacy", models.FolderNone)
	require.NoError(t, err)

	f, ok := fx.inv.Store().Folder(id)
	require.True(t, ok)
	assert.Equal(t, models.VersionInitial, f.Version)
	assert.True(t, fx.inv.Store().IsComplete(fx.root))
	assert.True(t, fx.inv.Store().IsComplete(id))
}

func TestInventory_CreateFolder_NoCapability(t *testing.T) {
	fx := newInventoryFixture(t, nil, nil)
	fx.api.ais = false
	require.NoError(t, fx.inv.Load(context.Background(), fx.agent))

	_, err := fx.inv.CreateFolder(context.Background(), fx.root, "x", models.FolderNone)

	assert.ErrorIs(t, err, ErrNoCapability)
}

func TestInventory_FindCategoryUUIDForType(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()

	_, err := fx.inv.FindCategoryUUIDForType(ctx, models.FolderTrash, false)
	assert.ErrorIs(t, err, ErrUnknownFolder)

	first, err := fx.inv.FindCategoryUUIDForType(ctx, models.FolderTrash, true)
	require.NoError(t, err)
	second, err := fx.inv.FindCategoryUUIDForType(ctx, models.FolderTrash, true)
	require.NoError(t, err)

	// повторный запрос не создаёт второй каталог
	assert.Equal(t, first, second)
	calls := fx.api.calls(adapter.CmdCreateInventory)
	require.Len(t, calls, 1)
	assert.Equal(t, models.FolderTrash, calls[0].create.Categories[0].TypeDefault)

	root, err := fx.inv.FindCategoryUUIDForType(ctx, models.FolderRoot, true)
	require.NoError(t, err)
	assert.Equal(t, fx.root, root)
}

func TestInventory_PurgeFolder_EmptiesLocally(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	tree := fx.inv.Store()
	trash, item := uuid.New(), uuid.New()
	f := models.NewFolder(trash, fx.root, "Trash", models.FolderTrash)
	f.Version, f.DescendentCount = 1, 0
	tree.UpsertFolder(f)
	bumpCount(tree, fx.root)
	addItem(tree, item, trash, "junk")

	require.NoError(t, fx.inv.PurgeFolder(ctx, trash))
	calls := fx.api.calls(adapter.CmdPurgeDescendents)
	require.Len(t, calls, 1)
	fx.api.reply(calls[0], &models.AISUpdate{}, nil)
	fx.inv.Tick(ctx)

	assert.Empty(t, tree.ChildItems(trash))
	got, _ := tree.Folder(trash)
	assert.Equal(t, int32(0), got.DescendentCount)
}

func TestInventory_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCacheRepository(ctrl)
	fx := newInventoryFixture(t, cache, nil)
	ctx := context.Background()

	assert.ErrorIs(t, fx.inv.Save(ctx), ErrNotLoaded)

	cache.EXPECT().Load(gomock.Any(), fx.agent, gomock.Any()).Return(models.CacheSnapshot{}, store.ErrCacheFormatMismatch)
	require.NoError(t, fx.inv.Load(ctx, fx.agent))

	cache.EXPECT().Save(gomock.Any(), fx.agent, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, snap models.CacheSnapshot) error {
			require.Len(t, snap.Folders, 1)
			assert.Equal(t, fx.root, snap.Folders[0].ID)
			return nil
		})
	require.NoError(t, fx.inv.Save(ctx))
}

// ── Library and links ────────────────────────────────────────────────────────

// withLibrary adds a library root holding one folder and returns both ids.
func withLibrary(fx *inventoryFixture) (library, folder uuid.UUID) {
	tree := fx.inv.Store()
	library, folder = uuid.New(), uuid.New()
	tree.SetRoots(uuid.Nil, library, uuid.Nil)
	lib := models.NewFolder(library, uuid.Nil, "Library", models.FolderRoot)
	lib.Version, lib.DescendentCount = 1, 0
	tree.UpsertFolder(lib)
	addFolder(tree, folder, library, "Clothing", 1, 0)
	return library, folder
}

func TestInventory_CopyLibraryFolder(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	library, folder := withLibrary(fx)

	require.NoError(t, fx.inv.CopyLibraryFolder(ctx, folder, fx.root, true))
	calls := fx.api.calls(adapter.CmdCopyLibraryCategory)
	require.Len(t, calls, 1)
	assert.Equal(t, folder, calls[0].cmd.TargetID)
	assert.Equal(t, fx.root, calls[0].cmd.DestinationID)

	// неудачное копирование: назначение перечитывается
	fx.api.reply(calls[0], nil, adapter.ErrServer)
	fx.inv.Tick(ctx)
	forced := fx.api.calls(adapter.CmdFetchCategoryChildren)
	assert.Equal(t, fx.root, forced[len(forced)-1].cmd.TargetID)

	assert.ErrorIs(t, fx.inv.CopyLibraryFolder(ctx, folder, library, true), ErrInvalidMove)
	assert.ErrorIs(t, fx.inv.CopyLibraryFolder(ctx, fx.root, fx.root, true), ErrUnknownFolder)
	assert.ErrorIs(t, fx.inv.CopyLibraryFolder(ctx, folder, uuid.New(), true), ErrUnknownFolder)
	assert.Len(t, fx.api.calls(adapter.CmdCopyLibraryCategory), 1)
}

func TestInventory_SlamFolderLinks(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	outfit := uuid.New()
	tree := fx.inv.Store()
	f := models.NewFolder(outfit, fx.root, "Evening", models.FolderOutfit)
	f.Version, f.DescendentCount = 1, 0
	tree.UpsertFolder(f)
	bumpCount(tree, fx.root)

	links := []models.NewLink{{LinkedID: uuid.New(), Name: "shirt", Type: models.AssetLink}}
	require.NoError(t, fx.inv.SlamFolderLinks(ctx, outfit, links))

	calls := fx.api.calls(adapter.CmdSlamFolder)
	require.Len(t, calls, 1)
	assert.Equal(t, outfit, calls[0].cmd.TargetID)
	assert.ErrorIs(t, fx.inv.SlamFolderLinks(ctx, uuid.New(), links), ErrUnknownFolder)
}

func TestInventory_FetchLinksAndOutfit(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()

	require.NoError(t, fx.inv.FetchCurrentOutfit(ctx))
	require.NoError(t, fx.inv.FetchFolderLinks(ctx, fx.root))
	assert.Len(t, fx.api.calls(adapter.CmdFetchCOF), 1)
	links := fx.api.calls(adapter.CmdFetchLinks)
	require.Len(t, links, 1)
	assert.Equal(t, fx.root, links[0].cmd.TargetID)

	assert.ErrorIs(t, fx.inv.FetchFolderLinks(ctx, uuid.New()), ErrUnknownFolder)

	fx.api.ais = false
	assert.ErrorIs(t, fx.inv.FetchCurrentOutfit(ctx), ErrNoCapability)
}

func TestInventory_FetchFolderStructure_AddsFoldersOnly(t *testing.T) {
	fx := loaded(t)
	ctx := context.Background()
	child := uuid.New()

	require.NoError(t, fx.inv.FetchFolderStructure(ctx, fx.root))
	calls := fx.api.calls(adapter.CmdFetchCategoryCategories)
	require.Len(t, calls, 1)
	assert.Equal(t, adapter.MaxFolderDepthRequest, calls[0].cmd.Depth)

	// только каталоги: версия ребёнка остаётся неизвестной
	upd := &models.AISUpdate{AISObject: models.AISObject{
		CategoryID: ptr(fx.root),
		Name:       ptr("My Inventory"),
		Version:    ptr(int32(1)),
		Embedded: &models.AISEmbedded{Categories: map[uuid.UUID]models.AISObject{
			child: {ParentID: ptr(fx.root), Name: ptr("Gestures"), Embedded: &models.AISEmbedded{Categories: map[uuid.UUID]models.AISObject{}}},
		}},
	}}
	fx.api.reply(calls[0], upd, nil)
	fx.inv.Tick(ctx)

	f, ok := fx.inv.Store().Folder(child)
	require.True(t, ok)
	assert.Equal(t, "Gestures", f.Name)
	assert.True(t, f.IsVersionUnknown())
}

func TestInventory_NewOperations_BeforeLoad(t *testing.T) {
	fx := newInventoryFixture(t, nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, fx.inv.CopyLibraryFolder(ctx, uuid.New(), fx.root, true), ErrNotLoaded)
	assert.ErrorIs(t, fx.inv.SlamFolderLinks(ctx, fx.root, nil), ErrNotLoaded)
	assert.ErrorIs(t, fx.inv.FetchCurrentOutfit(ctx), ErrNotLoaded)
	assert.ErrorIs(t, fx.inv.FetchFolderLinks(ctx, fx.root), ErrNotLoaded)
	assert.ErrorIs(t, fx.inv.FetchFolderStructure(ctx, fx.root), ErrNotLoaded)
}
