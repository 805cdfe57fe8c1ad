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
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RomShelfProject/romshelf-core/pkg/library"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFs wraps an afero.Fs and counts directory opens so tests can
// assert whether a call hit the filesystem or the cache.
type countingFs struct {
	afero.Fs
	opens atomic.Int64
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens.Add(1)
	return c.Fs.Open(name)
}

func (c *countingFs) Stat(name string) (os.FileInfo, error) {
	c.opens.Add(1)
	return c.Fs.Stat(name)
}

// memStore is an in-memory Store used to test persistence behavior without
// bolt. failPut/failGet switch it into a degraded mode.
type memStore struct {
	blobs   map[string][]byte
	times   map[string]time.Time
	failPut bool
	failGet bool
	mu      sync.Mutex
	puts    int
	gets    int
}

func newMemStore() *memStore {
	return &memStore{
		blobs: make(map[string][]byte),
		times: make(map[string]time.Time),
	}
}

func (m *memStore) Put(namespace string, data []byte, savedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failPut {
		return errors.New("store unavailable")
	}
	m.blobs[namespace] = append([]byte(nil), data...)
	m.times[namespace] = savedAt
	return nil
}

func (m *memStore) Get(namespace string) ([]byte, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet {
		return nil, time.Time{}, errors.New("store unavailable")
	}
	data, ok := m.blobs[namespace]
	if !ok {
		return nil, time.Time{}, ErrNotFound
	}
	return data, m.times[namespace], nil
}

func (m *memStore) Clear(namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, namespace)
	delete(m.times, namespace)
	return nil
}

// newTestLibrary builds a small in-memory library and returns the pieces a
// manager needs on top of it.
func newTestLibrary(t *testing.T) (*countingFs, *library.Locator, *library.Scanner) {
	t.Helper()
	base := afero.NewMemMapFs()

	mk := func(platform, game string, assets ...string) {
		dir := filepath.Join("/roms", platform, game)
		require.NoError(t, base.MkdirAll(dir, 0o755))
		for _, a := range assets {
			require.NoError(t, afero.WriteFile(base, filepath.Join(dir, a), []byte{}, 0o644))
		}
	}
	mk("snes", "Chrono Trigger (USA)", "icon.png", "screenshot.png")
	mk("snes", "EarthBound (USA)", "hero_1.png")
	mk("psx", "Final Fantasy VII (USA) (Disc 1)", "icon.png", "logo.png")

	fs := &countingFs{Fs: base}
	return fs, library.NewLocator(fs, "/roms"), library.NewScanner(fs)
}

func TestGetPlatformsCached(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	clock := clockwork.NewFakeClock()
	m := NewManager(fs, loc, scan, nil, clock)

	first := m.GetPlatforms(false)
	require.Equal(t, []string{"psx", "snes"}, first)

	opens := fs.opens.Load()
	second := m.GetPlatforms(false)
	assert.Equal(t, first, second)
	assert.Equal(t, opens, fs.opens.Load(), "fresh cache hit must not touch the filesystem")
}

func TestGetPlatformsTTLExpiry(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	clock := clockwork.NewFakeClock()
	m := NewManager(fs, loc, scan, nil, clock)

	m.GetPlatforms(false)
	clock.Advance(DefaultTTL - time.Second)
	opens := fs.opens.Load()
	m.GetPlatforms(false)
	assert.Equal(t, opens, fs.opens.Load(), "still within TTL")

	clock.Advance(2 * time.Second)
	m.GetPlatforms(false)
	assert.Greater(t, fs.opens.Load(), opens, "expired entry must rescan")
}

func TestGetPlatformsForceRefresh(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	m := NewManager(fs, loc, scan, nil, clockwork.NewFakeClock())

	m.GetPlatforms(false)
	opens := fs.opens.Load()
	m.GetPlatforms(true)
	assert.Greater(t, fs.opens.Load(), opens)
}

func TestGetGamesCachedPerPlatform(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	m := NewManager(fs, loc, scan, nil, clockwork.NewFakeClock())

	snes := m.GetGames("snes", false)
	require.Len(t, snes, 2)
	assert.Equal(t, "Chrono Trigger (USA)", snes[0].RawName)

	opens := fs.opens.Load()
	again := m.GetGames("snes", false)
	assert.Equal(t, snes, again)
	assert.Equal(t, opens, fs.opens.Load())

	// A different platform is its own cache slot.
	psx := m.GetGames("psx", false)
	require.Len(t, psx, 1)
	assert.Greater(t, fs.opens.Load(), opens)
}

func TestInvalidateDropsOnlyOnePlatform(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	m := NewManager(fs, loc, scan, nil, clockwork.NewFakeClock())

	m.GetGames("snes", false)
	m.GetGames("psx", false)

	m.Invalidate("snes")

	opens := fs.opens.Load()
	m.GetGames("psx", false)
	assert.Equal(t, opens, fs.opens.Load(), "psx cache must survive snes invalidation")

	m.GetGames("snes", false)
	assert.Greater(t, fs.opens.Load(), opens, "snes must rescan after invalidation")
}

func TestGetPlatformInfoListAggregates(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	m := NewManager(fs, loc, scan, nil, clockwork.NewFakeClock())

	infos := m.GetPlatformInfoList(false)
	require.Len(t, infos, 2)

	psx, snes := infos[0], infos[1]
	require.Equal(t, "psx", psx.Key)
	assert.Equal(t, "PlayStation", psx.Name)
	assert.Equal(t, 1, psx.GameCount)
	assert.Equal(t, 0, psx.MissingIcon)
	assert.Equal(t, 1, psx.MissingHero)
	assert.Equal(t, 0, psx.MissingLogo)
	assert.Equal(t,
		filepath.Join("/roms", "psx", "Final Fantasy VII (USA) (Disc 1)", "icon.png"),
		psx.IconPath)

	require.Equal(t, "snes", snes.Key)
	assert.Equal(t, 2, snes.GameCount)
	assert.Equal(t, 1, snes.MissingIcon)
	assert.Equal(t, 1, snes.MissingHero)
	assert.Equal(t, 2, snes.MissingLogo)
}

func TestGetPlatformInfoListMemoryHit(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	m := NewManager(fs, loc, scan, store, clockwork.NewFakeClock())

	first := m.GetPlatformInfoList(false)
	require.Equal(t, 1, store.puts)

	opens := fs.opens.Load()
	second := m.GetPlatformInfoList(false)
	assert.Equal(t, first, second)
	assert.Equal(t, opens, fs.opens.Load(), "memory hit must not rescan")
	assert.Equal(t, 1, store.puts, "memory hit must not rewrite the snapshot")
}

func TestSnapshotAdoptedByFreshManager(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	clock := clockwork.NewFakeClock()

	first := NewManager(fs, loc, scan, store, clock)
	want := first.GetPlatformInfoList(false)

	// A new manager over the same store starts with cold memory but a warm
	// snapshot.
	second := NewManager(fs, library.NewLocator(fs, "/roms"), scan, store, clock)
	second.GetPlatforms(false)
	opens := fs.opens.Load()

	got := second.GetPlatformInfoList(false)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, store.puts, "adoption must not rewrite the snapshot")
	// Only icon paths are re-verified; no per-platform rescans happen.
	assert.Less(t, fs.opens.Load()-opens, int64(6))
}

func TestSnapshotIconReverified(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	clock := clockwork.NewFakeClock()

	first := NewManager(fs, loc, scan, store, clock)
	infos := first.GetPlatformInfoList(false)
	require.NotEmpty(t, infos[0].IconPath)

	// Delete the psx icon behind the cache's back.
	require.NoError(t, fs.Remove(infos[0].IconPath))

	second := NewManager(fs, library.NewLocator(fs, "/roms"), scan, store, clock)
	got := second.GetPlatformInfoList(false)
	assert.Empty(t, got[0].IconPath, "missing icon must be nulled on adoption")
	// Counts are trusted as saved, even though the icon is gone.
	assert.Equal(t, 0, got[0].MissingIcon)
}

func TestSnapshotExpiredIgnored(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	clock := clockwork.NewFakeClock()

	first := NewManager(fs, loc, scan, store, clock)
	first.GetPlatformInfoList(false)

	clock.Advance(DefaultTTL + time.Second)

	second := NewManager(fs, library.NewLocator(fs, "/roms"), scan, store, clock)
	second.GetPlatformInfoList(false)
	assert.Equal(t, 2, store.puts, "expired snapshot must trigger a rebuild and rewrite")
}

func TestSnapshotNotResurrectedAfterInvalidate(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	clock := clockwork.NewFakeClock()
	m := NewManager(fs, loc, scan, store, clock)

	m.GetPlatformInfoList(false)
	m.Invalidate("snes")

	opens := fs.opens.Load()
	infos := m.GetPlatformInfoList(false)
	require.Len(t, infos, 2)
	// The snes aggregate must come from a rescan, not from the snapshot.
	assert.Greater(t, fs.opens.Load(), opens)
	assert.Equal(t, 2, store.puts)
}

func TestDegradedStoreStillCorrect(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	store.failPut = true
	store.failGet = true
	m := NewManager(fs, loc, scan, store, clockwork.NewFakeClock())

	infos := m.GetPlatformInfoList(false)
	require.Len(t, infos, 2)
	assert.Equal(t, 2, infos[1].GameCount)

	// Memory tier still works.
	opens := fs.opens.Load()
	m.GetPlatformInfoList(false)
	assert.Equal(t, opens, fs.opens.Load())
}

func TestNilStoreSupported(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	m := NewManager(fs, loc, scan, nil, clockwork.NewFakeClock())

	infos := m.GetPlatformInfoList(false)
	require.Len(t, infos, 2)
	m.ClearAll()
	infos = m.GetPlatformInfoList(false)
	require.Len(t, infos, 2)
}

func TestClearAllErasesSnapshot(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	m := NewManager(fs, loc, scan, store, clockwork.NewFakeClock())

	m.GetPlatformInfoList(false)
	require.NotEmpty(t, store.blobs)

	m.ClearAll()
	assert.Empty(t, store.blobs)

	opens := fs.opens.Load()
	m.GetPlatforms(false)
	assert.Greater(t, fs.opens.Load(), opens, "cleared cache must rescan")
}

func TestSetOverrideRootClearsEverything(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	require.NoError(t, fs.MkdirAll("/other/gba/Golden Sun", 0o755))

	store := newMemStore()
	m := NewManager(fs, loc, scan, store, clockwork.NewFakeClock())

	require.Equal(t, []string{"psx", "snes"}, m.GetPlatforms(false))

	m.SetOverrideRoot("/other")
	assert.Empty(t, store.blobs)
	assert.Equal(t, []string{"gba"}, m.GetPlatforms(false))
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	fs, loc, scan := newTestLibrary(t)
	store := newMemStore()
	m := NewManager(fs, loc, scan, store, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				switch n % 4 {
				case 0:
					m.GetPlatforms(false)
				case 1:
					m.GetGames("snes", false)
				case 2:
					m.GetPlatformInfoList(false)
				case 3:
					m.Invalidate("psx")
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"psx", "snes"}, m.GetPlatforms(false))
}
