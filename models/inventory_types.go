// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// FolderType is the preferred type of a folder. Values match the numeric
// codes used on the wire by the inventory service.
type FolderType int

const (
	FolderNone                FolderType = -1
	FolderTexture             FolderType = 0
	FolderSound               FolderType = 1
	FolderCallingCard         FolderType = 2
	FolderLandmark            FolderType = 3
	FolderClothing            FolderType = 5
	FolderObject              FolderType = 6
	FolderNotecard            FolderType = 7
	FolderRoot                FolderType = 8
	FolderLSLText             FolderType = 10
	FolderBodypart            FolderType = 13
	FolderTrash               FolderType = 14
	FolderSnapshot            FolderType = 15
	FolderLostAndFound        FolderType = 16
	FolderAnimation           FolderType = 20
	FolderGesture             FolderType = 21
	FolderFavorite            FolderType = 23
	FolderCurrentOutfit       FolderType = 46
	FolderOutfit              FolderType = 47
	FolderMyOutfits           FolderType = 48
	FolderMesh                FolderType = 49
	FolderInbox               FolderType = 50
	FolderOutbox              FolderType = 51
	FolderBasicRoot           FolderType = 52
	FolderMarketplaceListings FolderType = 53
	FolderSettings            FolderType = 56
	FolderMaterial            FolderType = 57
)

var folderTypeNames = map[FolderType]string{
	FolderNone:                "none",
	FolderTexture:             "texture",
	FolderSound:               "sound",
	FolderCallingCard:         "callcard",
	FolderLandmark:            "landmark",
	FolderClothing:            "clothing",
	FolderObject:              "object",
	FolderNotecard:            "notecard",
	FolderRoot:                "root_inv",
	FolderLSLText:             "lsltext",
	FolderBodypart:            "bodypart",
	FolderTrash:               "trash",
	FolderSnapshot:            "snapshot",
	FolderLostAndFound:        "lstndfnd",
	FolderAnimation:           "animatn",
	FolderGesture:             "gesture",
	FolderFavorite:            "favorite",
	FolderCurrentOutfit:       "current",
	FolderOutfit:              "outfit",
	FolderMyOutfits:           "my_otfts",
	FolderMesh:                "mesh",
	FolderInbox:               "inbox",
	FolderOutbox:              "outbox",
	FolderBasicRoot:           "basic_rt",
	FolderMarketplaceListings: "merchant",
	FolderSettings:            "settings",
	FolderMaterial:            "material",
}

func (t FolderType) String() string {
	if name, ok := folderTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsRoot reports whether a folder of this type may legitimately have no parent.
func (t FolderType) IsRoot() bool {
	return t == FolderRoot || t == FolderBasicRoot
}

// IsProtected reports whether the type denotes a system folder that the user
// cannot delete or rename and which must live directly under the root.
func (t FolderType) IsProtected() bool {
	switch t {
	case FolderNone, FolderOutfit, FolderMarketplaceListings:
		return false
	case FolderRoot, FolderBasicRoot:
		return true
	default:
		_, known := folderTypeNames[t]
		return known
	}
}

// IsSingleton reports whether at most one folder of this type may exist under
// the agent root.
func (t FolderType) IsSingleton() bool {
	return t.IsProtected() && !t.IsRoot()
}

// LinksOnly reports whether folders of this type hold only links, in which
// case a fetch reply carrying just the links is complete.
func (t FolderType) LinksOnly() bool {
	return t == FolderCurrentOutfit || t == FolderOutfit
}

// AssetType is the asset type of an item.
type AssetType int

const (
	AssetNone        AssetType = -1
	AssetTexture     AssetType = 0
	AssetSound       AssetType = 1
	AssetCallingCard AssetType = 2
	AssetLandmark    AssetType = 3
	AssetClothing    AssetType = 5
	AssetObject      AssetType = 6
	AssetNotecard    AssetType = 7
	AssetCategory    AssetType = 8
	AssetLSLText     AssetType = 10
	AssetBodypart    AssetType = 13
	AssetAnimation   AssetType = 20
	AssetGesture     AssetType = 21
	AssetLink        AssetType = 24
	AssetLinkFolder  AssetType = 25
	AssetMesh        AssetType = 49
	AssetSettings    AssetType = 56
	AssetMaterial    AssetType = 57
)

// IsLink reports whether the asset type marks an item as a link.
func (t AssetType) IsLink() bool {
	return t == AssetLink || t == AssetLinkFolder
}

// DefaultFolder returns the folder type that conventionally stores items of
// this asset type, or FolderNone if there is none.
func (t AssetType) DefaultFolder() FolderType {
	switch t {
	case AssetTexture:
		return FolderTexture
	case AssetSound:
		return FolderSound
	case AssetCallingCard:
		return FolderCallingCard
	case AssetLandmark:
		return FolderLandmark
	case AssetClothing:
		return FolderClothing
	case AssetObject:
		return FolderObject
	case AssetNotecard:
		return FolderNotecard
	case AssetLSLText:
		return FolderLSLText
	case AssetBodypart:
		return FolderBodypart
	case AssetAnimation:
		return FolderAnimation
	case AssetGesture:
		return FolderGesture
	case AssetMesh:
		return FolderMesh
	case AssetSettings:
		return FolderSettings
	case AssetMaterial:
		return FolderMaterial
	default:
		return FolderNone
	}
}

// InventoryType is the inventory type of an item, used for display and
// permissions. The engine treats it as opaque.
type InventoryType int

const (
	InventoryNone        InventoryType = -1
	InventoryCallingCard InventoryType = 2
	InventoryGesture     InventoryType = 20
)
