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

// Package library locates the game-library root on device storage and
// enumerates the platforms and games found under it. All filesystem access
// goes through an injected afero.Fs so the package is testable against an
// in-memory tree.
package library

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/RomShelfProject/romshelf-core/pkg/helpers/syncutil"
	"github.com/RomShelfProject/romshelf-core/pkg/platformdefs"
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// DefaultRoot is the most common install location on device storage. It
	// is also the unconditional fallback when no candidate looks like a
	// library; callers must tolerate a non-existent root.
	DefaultRoot = "/sdcard/Android/media/com.iisulauncher/iiSULauncher/assets/media/roms/consoles"

	// LegacyRoot is where installs prior to the Android/media migration kept
	// their library.
	LegacyRoot = "/sdcard/iiSULauncher/roms"

	brandToken = "iisu"

	mediaParent = "/sdcard/Android/media"
	dataParent  = "/sdcard/Android/data"
)

// packageNames are the known launcher package identifiers, in preference
// order. The first entry is the canonical one and anchors fuzzy ranking.
var packageNames = []string{
	"com.iisulauncher",
	"com.iisulauncher.beta",
	"com.iisu.launcher",
}

// candidateLayouts are the conventional sublayouts probed under each
// candidate directory, relative to the candidate. The empty string is the
// candidate itself.
var candidateLayouts = []string{
	"",
	"files",
	"files/roms",
	"iiSULauncher/assets/media/roms/consoles",
	"iiSULauncher/roms",
}

// sharedRoots are common shared ROM folder names tried as a last resort.
var sharedRoots = []string{
	"/sdcard/Roms",
	"/sdcard/roms",
	"/sdcard/ROMs",
	"/sdcard/RetroArch/roms",
	"/sdcard/Download/roms",
}

// Locator resolves the library root directory, trying candidates in a strict
// priority order and memoizing the winner. Resolution is configuration
// sensitive, not time sensitive: the memo is only dropped when the override
// changes or on explicit invalidation.
type Locator struct {
	fs       afero.Fs
	override string
	resolved string
	mu       syncutil.RWMutex
	valid    bool
}

// NewLocator creates a locator over fs with an optional user override path
// (empty string for none).
func NewLocator(fs afero.Fs, override string) *Locator {
	return &Locator{fs: fs, override: override}
}

// SetOverride replaces the user override path and drops the memoized root.
func (l *Locator) SetOverride(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.override = path
	l.valid = false
}

// Invalidate drops the memoized root so the next ResolveRoot re-probes.
func (l *Locator) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.valid = false
}

// ResolveRoot returns the library root directory. It never fails: when no
// candidate looks like a library it returns DefaultRoot, which may not
// exist.
func (l *Locator) ResolveRoot() string {
	l.mu.RLock()
	if l.valid {
		defer l.mu.RUnlock()
		return l.resolved
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.valid {
		return l.resolved
	}

	root := l.resolve()
	l.resolved = root
	l.valid = true
	return root
}

func (l *Locator) resolve() string {
	// 1. User override, if it still looks like a library. An invalid
	// override is not an error, just skipped.
	if l.override != "" {
		if l.looksLikeLibrary(l.override) {
			log.Debug().Msgf("using override library root: %s", l.override)
			return l.override
		}
		log.Warn().Msgf("override root does not look like a library, ignoring: %s", l.override)
	}

	// 2. Most common install path.
	if l.looksLikeLibrary(DefaultRoot) {
		return DefaultRoot
	}

	// 3. Known package locations under Android/media and Android/data.
	for _, pkg := range packageNames {
		for _, parent := range []string{mediaParent, dataParent} {
			if root, ok := l.checkCandidate(filepath.Join(parent, pkg)); ok {
				return root
			}
		}
	}

	// 4. Fuzzy scan for anything brand-named under Android/media.
	if root, ok := l.fuzzyScan(); ok {
		return root
	}

	// 5. Legacy install location.
	if l.looksLikeLibrary(LegacyRoot) {
		return LegacyRoot
	}

	// 6. Shared ROM folders.
	for _, shared := range sharedRoots {
		if l.looksLikeLibrary(shared) {
			return shared
		}
	}

	log.Info().Msgf("no library root found, falling back to default: %s", DefaultRoot)
	return DefaultRoot
}

// checkCandidate probes the conventional sublayouts under a candidate
// directory and returns the first one that looks like a library.
func (l *Locator) checkCandidate(candidate string) (string, bool) {
	for _, layout := range candidateLayouts {
		dir := candidate
		if layout != "" {
			dir = filepath.Join(candidate, layout)
		}
		if l.looksLikeLibrary(dir) {
			log.Debug().Msgf("library root found at %s", dir)
			return dir, true
		}
	}
	return "", false
}

// fuzzyScan looks through the Android/media parent for any directory whose
// name contains the brand token, ranked by similarity to the canonical
// package name so "com.iisulauncher2" beats "org.iisu.tools".
func (l *Locator) fuzzyScan() (string, bool) {
	entries, err := afero.ReadDir(l.fs, mediaParent)
	if err != nil {
		log.Debug().Err(err).Msgf("cannot read %s", mediaParent)
		return "", false
	}

	type scored struct {
		name  string
		score float32
	}
	var matches []scored
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !strings.Contains(strings.ToLower(entry.Name()), brandToken) {
			continue
		}
		score, err := edlib.StringsSimilarity(entry.Name(), packageNames[0], edlib.Levenshtein)
		if err != nil {
			score = 0
		}
		matches = append(matches, scored{name: entry.Name(), score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	for _, m := range matches {
		if root, ok := l.checkCandidate(filepath.Join(mediaParent, m.name)); ok {
			return root, true
		}
	}
	return "", false
}

// looksLikeLibrary is the predicate every candidate must pass: the directory
// is readable and holds at least one immediate subdirectory recognizable as
// a platform folder. Reserved app-data folders (cache, databases, ...) never
// count as platforms.
func (l *Locator) looksLikeLibrary(dir string) bool {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if platformdefs.IsReservedFolder(entry.Name()) {
			continue
		}
		if _, ok := platformdefs.Lookup(entry.Name()); ok {
			return true
		}
	}
	return false
}
