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
	"path/filepath"
	"sort"
	"strings"

	"github.com/RomShelfProject/romshelf-core/pkg/platformdefs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Scanner enumerates platform and game folders under a resolved library
// root. Scans are read-only; every failure is reported as an empty result
// since missing directories and unreadable nodes are expected steady states.
type Scanner struct {
	fs afero.Fs
}

// NewScanner creates a scanner over fs.
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// ListPlatforms returns the raw folder names of every platform directory
// immediately under root, alphabetically. Reserved system folders and
// anything not recognizable as a platform are skipped. An absent root yields
// an empty list, not an error.
func (s *Scanner) ListPlatforms(root string) []string {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		log.Debug().Err(err).Msgf("cannot list platforms under %s", root)
		return nil
	}

	var platforms []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if platformdefs.IsReservedFolder(name) {
			continue
		}
		if _, ok := platformdefs.Lookup(name); !ok {
			continue
		}
		platforms = append(platforms, name)
	}
	sort.Strings(platforms)
	return platforms
}

// ListGames returns every game found in the platform folder, ordered
// case-insensitively by raw folder name so list positions are stable across
// scans. Hidden folders and reserved names are skipped. A game with no
// matching assets is still included with an empty asset map.
func (s *Scanner) ListGames(root, platformFolder string) []GameEntry {
	dir := filepath.Join(root, platformFolder)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		log.Debug().Err(err).Msgf("cannot list games under %s", dir)
		return nil
	}

	var games []GameEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if platformdefs.IsReservedFolder(name) {
			continue
		}
		gameDir := filepath.Join(dir, name)
		games = append(games, NewGameEntry(name, gameDir, probeAssets(s.fs, gameDir)))
	}

	sort.SliceStable(games, func(i, j int) bool {
		a, b := strings.ToLower(games[i].RawName), strings.ToLower(games[j].RawName)
		if a == b {
			return games[i].RawName < games[j].RawName
		}
		return a < b
	})
	return games
}
