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

// Package cache is the single source of truth for what the last library
// scan saw. It holds memory-resident caches of scan results with TTL-based
// expiry plus a write-through persisted snapshot of the platform aggregates,
// so large libraries are not re-walked on every lookup. Persistence failures
// are logged and degrade to cache misses; a cache that always misses is
// still correct, only slower.
package cache

import (
	"errors"
	"slices"
	"time"

	"github.com/RomShelfProject/romshelf-core/pkg/helpers/syncutil"
	"github.com/RomShelfProject/romshelf-core/pkg/library"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DefaultTTL is how long a cached scan result stays valid. Expiry is
// evaluated lazily at read time; there is no background sweep.
const DefaultTTL = 5 * time.Minute

// snapshotNamespace keys the persisted platform-info snapshot in the Store.
const snapshotNamespace = "platform_info"

// entry wraps a cached value with the time it was computed.
type entry[T any] struct {
	computedAt time.Time
	value      T
}

func (e *entry[T]) fresh(now time.Time, ttl time.Duration) bool {
	return e != nil && now.Sub(e.computedAt) < ttl
}

// Manager orchestrates the two cache tiers in front of the library scanner.
// All cache-map access happens under one mutex, so concurrent callers never
// observe a half-updated cache.
type Manager struct {
	fs      afero.Fs
	locator *library.Locator
	scanner *library.Scanner
	store   Store
	clock   clockwork.Clock

	mu               syncutil.Mutex
	platforms        *entry[[]string]
	games            map[string]*entry[[]library.GameEntry]
	info             map[string]*entry[PlatformInfo]
	snapshotConsumed bool

	ttl time.Duration
}

// NewManager wires a cache manager. store may be nil for a memory-only
// cache; clock may be nil for the real clock.
func NewManager(
	fs afero.Fs,
	locator *library.Locator,
	scanner *library.Scanner,
	store Store,
	clock clockwork.Clock,
) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		fs:      fs,
		locator: locator,
		scanner: scanner,
		store:   store,
		clock:   clock,
		games:   make(map[string]*entry[[]library.GameEntry]),
		info:    make(map[string]*entry[PlatformInfo]),
		ttl:     DefaultTTL,
	}
}

// GetPlatforms returns the raw platform folder names, from cache when fresh
// unless forceRefresh is set.
func (m *Manager) GetPlatforms(forceRefresh bool) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getPlatformsLocked(forceRefresh)
}

func (m *Manager) getPlatformsLocked(forceRefresh bool) []string {
	now := m.clock.Now()
	if !forceRefresh && m.platforms.fresh(now, m.ttl) {
		return slices.Clone(m.platforms.value)
	}

	root := m.locator.ResolveRoot()
	list := m.scanner.ListPlatforms(root)
	m.platforms = &entry[[]string]{computedAt: now, value: list}
	return slices.Clone(list)
}

// GetGames returns the game list for one platform folder, from cache when
// fresh unless forceRefresh is set.
func (m *Manager) GetGames(platformKey string, forceRefresh bool) []library.GameEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getGamesLocked(platformKey, forceRefresh)
}

func (m *Manager) getGamesLocked(platformKey string, forceRefresh bool) []library.GameEntry {
	now := m.clock.Now()
	if !forceRefresh {
		if e, ok := m.games[platformKey]; ok && e.fresh(now, m.ttl) {
			return slices.Clone(e.value)
		}
	}

	root := m.locator.ResolveRoot()
	games := m.scanner.ListGames(root, platformKey)
	m.games[platformKey] = &entry[[]library.GameEntry]{computedAt: now, value: games}
	return slices.Clone(games)
}

// GetPlatformInfoList returns the per-platform aggregates, in platform
// order. Resolution order on a miss: in-memory aggregates, then the
// persisted snapshot (adopted at most once per process unless the cache is
// cleared), then a full rebuild that rescans every platform and writes the
// snapshot through.
func (m *Manager) GetPlatformInfoList(forceRefresh bool) []PlatformInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	platforms := m.getPlatformsLocked(forceRefresh)
	now := m.clock.Now()

	if !forceRefresh {
		if infos, ok := m.infoFromMemoryLocked(platforms, now); ok {
			return infos
		}
		if infos, ok := m.adoptSnapshotLocked(now); ok {
			return infos
		}
	}

	// Full rebuild. Scanning each platform also refreshes the per-platform
	// game-list cache as a side effect.
	infos := make([]PlatformInfo, 0, len(platforms))
	for _, p := range platforms {
		games := m.getGamesLocked(p, forceRefresh)
		pi := buildPlatformInfo(p, games)
		m.info[p] = &entry[PlatformInfo]{computedAt: now, value: pi}
		infos = append(infos, pi)
	}
	m.persistSnapshot(infos, now)
	return infos
}

// infoFromMemoryLocked returns the in-memory aggregates when every platform
// has a fresh entry.
func (m *Manager) infoFromMemoryLocked(platforms []string, now time.Time) ([]PlatformInfo, bool) {
	infos := make([]PlatformInfo, 0, len(platforms))
	for _, p := range platforms {
		e, ok := m.info[p]
		if !ok || !e.fresh(now, m.ttl) {
			return nil, false
		}
		infos = append(infos, e.value)
	}
	return infos, true
}

// adoptSnapshotLocked loads the persisted snapshot and takes it over into
// memory when it is still within TTL. Only the icon paths are re-verified
// against the filesystem; game counts and missing-asset counts are trusted
// as saved, so files changed out-of-band within the TTL window can be
// misreported until the next rebuild. That staleness boundary is inherited
// behavior and covered by tests.
func (m *Manager) adoptSnapshotLocked(now time.Time) ([]PlatformInfo, bool) {
	if m.store == nil || m.snapshotConsumed {
		return nil, false
	}
	m.snapshotConsumed = true

	data, savedAt, err := m.store.Get(snapshotNamespace)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("failed to load platform info snapshot")
		}
		return nil, false
	}
	if now.Sub(savedAt) >= m.ttl {
		return nil, false
	}

	infos, err := decodeSnapshot(data)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable platform info snapshot")
		return nil, false
	}
	if len(infos) == 0 {
		return nil, false
	}

	for i := range infos {
		if infos[i].IconPath == "" {
			continue
		}
		ok, err := afero.Exists(m.fs, infos[i].IconPath)
		if err != nil || !ok {
			infos[i].IconPath = ""
		}
	}

	for _, pi := range infos {
		m.info[pi.Key] = &entry[PlatformInfo]{computedAt: savedAt, value: pi}
	}
	log.Debug().Msgf("adopted platform info snapshot with %d records", len(infos))
	return infos, true
}

// persistSnapshot writes the full aggregate set through to the store.
// Failures are logged and otherwise ignored.
func (m *Manager) persistSnapshot(infos []PlatformInfo, now time.Time) {
	if m.store == nil {
		return
	}
	data, err := encodeSnapshot(infos)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode platform info snapshot")
		return
	}
	if err := m.store.Put(snapshotNamespace, data, now); err != nil {
		log.Warn().Err(err).Msg("failed to persist platform info snapshot")
	}
}

// Invalidate drops one platform's cached game list and aggregate. The
// platform list and every other platform stay cached. Any mutation path
// that adds, removes or replaces a game asset must call this. The persisted
// snapshot is marked consumed so the dropped entry cannot be resurrected
// from disk before the next rebuild.
func (m *Manager) Invalidate(platformKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, platformKey)
	delete(m.info, platformKey)
	m.snapshotConsumed = true
}

// ClearAll drops every in-memory entry and erases the persisted snapshot.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.platforms = nil
	m.games = make(map[string]*entry[[]library.GameEntry])
	m.info = make(map[string]*entry[PlatformInfo])
	m.snapshotConsumed = false
	if m.store != nil {
		if err := m.store.Clear(snapshotNamespace); err != nil {
			log.Warn().Err(err).Msg("failed to clear persisted snapshot")
		}
	}
}

// SetOverrideRoot replaces the user override library root (empty for none).
// Everything cached describes the old root, so the whole cache is cleared.
func (m *Manager) SetOverrideRoot(path string) {
	m.locator.SetOverride(path)
	m.ClearAll()
}
