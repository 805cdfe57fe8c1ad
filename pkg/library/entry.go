// Romshelf Core
// Copyright (c) 2026 The Romshelf Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Romshelf Core.
//
// Romshelf Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Romshelf Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Romshelf Core.  If not, see <http://www.gnu.org/licenses/>.

package library

import (
	"github.com/RomShelfProject/romshelf-core/pkg/titles"
)

// AssetKind is one category of artwork associated with a game.
type AssetKind string

const (
	AssetIcon       AssetKind = "icon"
	AssetHero       AssetKind = "hero"
	AssetLogo       AssetKind = "logo"
	AssetScreenshot AssetKind = "screenshot"
)

// AssetKinds lists every asset kind in a fixed order.
var AssetKinds = []AssetKind{AssetIcon, AssetHero, AssetLogo, AssetScreenshot}

// Asset is one resolved artwork file. Generated reports whether the filename
// exactly matches the fixed name Romshelf uses when it writes artwork, as
// opposed to an externally supplied file under a recognized convention.
type Asset struct {
	Path      string
	Generated bool
}

// GameEntry is one discovered game. RawName is the literal folder name and
// is used for all path construction; the derived display and search names
// are computed once at construction since RawName never changes. Identity is
// FolderPath: two entries with equal FolderPath are the same game even if
// their asset fields differ across scans.
type GameEntry struct {
	Assets      map[AssetKind]Asset
	RawName     string
	FolderPath  string
	DisplayName string
	SearchNames []string
}

// NewGameEntry builds an entry with its derived names computed eagerly.
func NewGameEntry(rawName, folderPath string, assets map[AssetKind]Asset) GameEntry {
	if assets == nil {
		assets = make(map[AssetKind]Asset)
	}
	return GameEntry{
		Assets:      assets,
		RawName:     rawName,
		FolderPath:  folderPath,
		DisplayName: titles.CleanTitle(rawName),
		SearchNames: titles.SearchVariants(rawName),
	}
}

// Has reports whether an asset of the given kind was found.
func (e *GameEntry) Has(kind AssetKind) bool {
	_, ok := e.Assets[kind]
	return ok
}

// AssetPath returns the resolved file path for a kind, or "" if absent.
func (e *GameEntry) AssetPath(kind AssetKind) string {
	return e.Assets[kind].Path
}

// Generated reports whether the asset of the given kind was produced by this
// tool. False when the asset is absent or externally supplied.
func (e *GameEntry) Generated(kind AssetKind) bool {
	return e.Assets[kind].Generated
}

// Same reports whether two entries refer to the same game. Comparison is by
// folder path only, so callers can diff lists across scans.
func (e *GameEntry) Same(other *GameEntry) bool {
	return e.FolderPath == other.FolderPath
}
