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

package helpers

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// CreateLibraryRoot creates the library root directory along with any
// platform folders given.
func (h *FSHelper) CreateLibraryRoot(root string, platforms ...string) error {
	if err := h.Fs.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create library root %s: %w", root, err)
	}
	for _, p := range platforms {
		if err := h.Fs.MkdirAll(filepath.Join(root, p), 0o755); err != nil {
			return fmt.Errorf("failed to create platform directory %s: %w", p, err)
		}
	}
	return nil
}

// CreateGame creates a game folder with the given asset filenames as empty
// files.
func (h *FSHelper) CreateGame(root, platform, game string, assets ...string) error {
	gameDir := filepath.Join(root, platform, game)
	if err := h.Fs.MkdirAll(gameDir, 0o755); err != nil {
		return fmt.Errorf("failed to create game directory %s: %w", gameDir, err)
	}
	for _, a := range assets {
		path := filepath.Join(gameDir, a)
		if err := afero.WriteFile(h.Fs, path, []byte{}, 0o644); err != nil {
			return fmt.Errorf("failed to create asset file %s: %w", path, err)
		}
	}
	return nil
}

// CreateDirectoryStructure creates a nested directory structure for testing.
// String and []byte values become files, map values become directories, nil
// values become empty directories.
func (h *FSHelper) CreateDirectoryStructure(structure map[string]any) error {
	return h.createStructureRecursive("", structure)
}

func (h *FSHelper) createStructureRecursive(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := h.Fs.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
				return fmt.Errorf("failed to create directory for file %s: %w", fullPath, err)
			}
			if err := afero.WriteFile(h.Fs, fullPath, []byte(v), 0o644); err != nil {
				return fmt.Errorf("failed to write file %s: %w", fullPath, err)
			}
		case []byte:
			if err := h.Fs.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
				return fmt.Errorf("failed to create directory for binary file %s: %w", fullPath, err)
			}
			if err := afero.WriteFile(h.Fs, fullPath, v, 0o644); err != nil {
				return fmt.Errorf("failed to write binary file %s: %w", fullPath, err)
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.createStructureRecursive(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

// FileExists checks if a file exists
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

// GetBasicLibraryStructure returns a small two-platform library for testing.
func GetBasicLibraryStructure() map[string]any {
	return map[string]any{
		"/roms": map[string]any{
			"snes": map[string]any{
				"Chrono Trigger (USA)": map[string]any{
					"icon.png":       []byte{0x89, 0x50, 0x4E, 0x47},
					"screenshot.png": []byte{0x89, 0x50, 0x4E, 0x47},
				},
				"EarthBound (USA)": map[string]any{
					"boxart.jpg": []byte{0xFF, 0xD8},
				},
			},
			"psx": map[string]any{
				"Final Fantasy VII (USA) (Disc 1)": map[string]any{
					"icon.png":   []byte{0x89, 0x50, 0x4E, 0x47},
					"hero_1.png": []byte{0x89, 0x50, 0x4E, 0x47},
					"logo.png":   []byte{0x89, 0x50, 0x4E, 0x47},
				},
			},
			"cache": nil,
		},
	}
}
