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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeLibrary creates a directory that passes the library predicate: at
// least one recognizable platform folder with a game inside.
func makeLibrary(t *testing.T, fs afero.Fs, root string, platforms ...string) {
	t.Helper()
	for _, p := range platforms {
		require.NoError(t, fs.MkdirAll(root+"/"+p+"/Some Game", 0o755))
	}
}

func TestResolveRootOverrideWins(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, "/storage/custom", "snes", "psx")
	makeLibrary(t, fs, DefaultRoot, "nes")

	l := NewLocator(fs, "/storage/custom")
	assert.Equal(t, "/storage/custom", l.ResolveRoot())
}

func TestResolveRootInvalidOverrideSkipped(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, DefaultRoot, "snes")

	l := NewLocator(fs, "/does/not/exist")
	assert.Equal(t, DefaultRoot, l.ResolveRoot())
}

func TestResolveRootOverrideWithoutPlatformsSkipped(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	// Exists but holds nothing recognizable as a platform.
	require.NoError(t, fs.MkdirAll("/storage/empty/documents", 0o755))
	makeLibrary(t, fs, DefaultRoot, "gba")

	l := NewLocator(fs, "/storage/empty")
	assert.Equal(t, DefaultRoot, l.ResolveRoot())
}

func TestResolveRootDefaultBeforePackageProbe(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, DefaultRoot, "snes")
	makeLibrary(t, fs, "/sdcard/Android/data/com.iisulauncher/files/roms", "psx")

	l := NewLocator(fs, "")
	assert.Equal(t, DefaultRoot, l.ResolveRoot())
}

func TestResolveRootPackageDataLayout(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, "/sdcard/Android/data/com.iisulauncher/files/roms", "psx")

	l := NewLocator(fs, "")
	assert.Equal(t, "/sdcard/Android/data/com.iisulauncher/files/roms", l.ResolveRoot())
}

func TestResolveRootFuzzyPackageName(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	// A renamed fork of the launcher package, not in the known list.
	makeLibrary(t, fs,
		"/sdcard/Android/media/com.iisulauncher2/iiSULauncher/assets/media/roms/consoles",
		"genesis")

	l := NewLocator(fs, "")
	assert.Equal(t,
		"/sdcard/Android/media/com.iisulauncher2/iiSULauncher/assets/media/roms/consoles",
		l.ResolveRoot())
}

func TestResolveRootLegacyLocation(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, LegacyRoot, "gb", "gbc")

	l := NewLocator(fs, "")
	assert.Equal(t, LegacyRoot, l.ResolveRoot())
}

func TestResolveRootSharedFolder(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, "/sdcard/RetroArch/roms", "n64")

	l := NewLocator(fs, "")
	assert.Equal(t, "/sdcard/RetroArch/roms", l.ResolveRoot())
}

func TestResolveRootFallsBackToDefault(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	l := NewLocator(fs, "")
	assert.Equal(t, DefaultRoot, l.ResolveRoot())
}

func TestResolveRootReservedFoldersDontQualify(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	// App data folders alone must not make a directory look like a library.
	for _, d := range []string{"cache", "databases", "shared_prefs"} {
		require.NoError(t, fs.MkdirAll("/storage/appdata/"+d, 0o755))
	}

	l := NewLocator(fs, "/storage/appdata")
	assert.Equal(t, DefaultRoot, l.ResolveRoot())
}

func TestResolveRootMemoized(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, LegacyRoot, "snes")

	l := NewLocator(fs, "")
	require.Equal(t, LegacyRoot, l.ResolveRoot())

	// A better candidate appearing later is not picked up until the memo is
	// dropped.
	makeLibrary(t, fs, DefaultRoot, "snes")
	assert.Equal(t, LegacyRoot, l.ResolveRoot())

	l.Invalidate()
	assert.Equal(t, DefaultRoot, l.ResolveRoot())
}

func TestSetOverrideDropsMemo(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	makeLibrary(t, fs, DefaultRoot, "snes")
	makeLibrary(t, fs, "/storage/custom", "psx")

	l := NewLocator(fs, "")
	require.Equal(t, DefaultRoot, l.ResolveRoot())

	l.SetOverride("/storage/custom")
	assert.Equal(t, "/storage/custom", l.ResolveRoot())

	l.SetOverride("")
	assert.Equal(t, DefaultRoot, l.ResolveRoot())
}
