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

package cache

import (
	"github.com/RomShelfProject/romshelf-core/pkg/library"
	"github.com/RomShelfProject/romshelf-core/pkg/platformdefs"
)

// PlatformInfo is the cached per-platform aggregate: display name, game
// count, how many games are missing each artwork kind that matters for icon
// generation, and a representative icon path (empty means none). It is
// derived entirely from a scanned game list and recomputed on every rescan.
type PlatformInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	IconPath    string `json:"icon_path"`
	GameCount   int    `json:"game_count"`
	MissingIcon int    `json:"missing_icon"`
	MissingHero int    `json:"missing_hero"`
	MissingLogo int    `json:"missing_logo"`
}

// buildPlatformInfo aggregates a platform's game list. The representative
// icon is the first game's icon in scan order.
func buildPlatformInfo(platformFolder string, games []library.GameEntry) PlatformInfo {
	info := PlatformInfo{
		Key:       platformFolder,
		Name:      platformdefs.DisplayName(platformFolder),
		GameCount: len(games),
	}
	for i := range games {
		g := &games[i]
		if !g.Has(library.AssetIcon) {
			info.MissingIcon++
		} else if info.IconPath == "" {
			info.IconPath = g.AssetPath(library.AssetIcon)
		}
		if !g.Has(library.AssetHero) {
			info.MissingHero++
		}
		if !g.Has(library.AssetLogo) {
			info.MissingLogo++
		}
	}
	return info
}
