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
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// generatedNames are the fixed filenames Romshelf itself writes, always PNG.
// Anything found under a different recognized name (JPEG variants, numbered
// slides) was supplied externally. Classification is an exact filename match
// so it can be re-derived later from a resolved path alone.
var generatedNames = map[AssetKind]string{
	AssetIcon:       "icon.png",
	AssetScreenshot: "screenshot.png",
	AssetHero:       "hero_1.png",
	AssetLogo:       "logo.png",
}

// numberedVariants is how many slide_N/hero_N files are probed per kind.
const numberedVariants = 10

// assetCandidates returns the ordered probe list for a kind. The first
// existing candidate wins, so the order encodes the precedence between the
// app-generated convention and the external one.
func assetCandidates(kind AssetKind) []string {
	var names []string
	switch kind {
	case AssetIcon:
		for _, ext := range []string{"png", "jpg", "jpeg"} {
			names = append(names, "icon."+ext)
		}
	case AssetScreenshot:
		for _, ext := range []string{"png", "jpg", "jpeg"} {
			names = append(names, "screenshot."+ext)
		}
		for i := 1; i <= numberedVariants; i++ {
			for _, ext := range []string{"png", "jpg", "jpeg"} {
				names = append(names, fmt.Sprintf("slide_%d.%s", i, ext))
			}
		}
	case AssetHero:
		names = append(names, "hero_1.png")
		for i := 1; i <= numberedVariants; i++ {
			for _, ext := range []string{"jpg", "jpeg", "png"} {
				names = append(names, fmt.Sprintf("hero_%d.%s", i, ext))
			}
		}
	case AssetLogo:
		for _, ext := range []string{"png", "jpg", "jpeg"} {
			names = append(names, "logo."+ext)
		}
		for _, ext := range []string{"png", "jpg", "jpeg"} {
			names = append(names, "title."+ext)
		}
	}
	return names
}

// IsGeneratedName reports whether filename is the fixed name Romshelf writes
// for the given asset kind.
func IsGeneratedName(kind AssetKind, filename string) bool {
	return generatedNames[kind] == filename
}

// probeAssets detects which asset kinds are present in a game folder and
// resolves their file paths. Missing assets are a normal state; the returned
// map only holds the kinds that were found.
func probeAssets(fs afero.Fs, gameDir string) map[AssetKind]Asset {
	assets := make(map[AssetKind]Asset)
	for _, kind := range AssetKinds {
		for _, name := range assetCandidates(kind) {
			path := filepath.Join(gameDir, name)
			ok, err := afero.Exists(fs, path)
			if err != nil || !ok {
				continue
			}
			assets[kind] = Asset{
				Path:      path,
				Generated: IsGeneratedName(kind, name),
			}
			break
		}
	}
	return assets
}
