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

package titles

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// realisticNameGen generates strings from the character set found in real
// ROM folder names, including the metadata punctuation the cleaner targets.
func realisticNameGen() *rapid.Generator[string] {
	chars := []rune(
		"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
			" -:.'&!+_(),[]" +
			"àáâäçèéêëñöüÀÉÑÖÜ",
	)
	return rapid.StringOfN(rapid.SampledFrom(chars), 0, 64, -1)
}

func TestNormalizeForSearchIdempotent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		raw := realisticNameGen().Draw(t, "raw")
		once := NormalizeForSearch(raw)
		twice := NormalizeForSearch(once)
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	})
}

func TestNormalizeForSearchOutputShape(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		raw := realisticNameGen().Draw(t, "raw")
		out := NormalizeForSearch(raw)

		if out != strings.TrimSpace(out) {
			t.Fatalf("output has surrounding whitespace: %q", out)
		}
		if strings.Contains(out, "  ") {
			t.Fatalf("output has uncollapsed whitespace: %q", out)
		}
		for _, banned := range []string{"(", ")", "[", "]", "&", "+", ":", "!"} {
			if strings.Contains(out, banned) {
				t.Fatalf("output %q contains banned character %q", out, banned)
			}
		}
	})
}

func TestSearchVariantsProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		raw := realisticNameGen().Draw(t, "raw")
		variants := SearchVariants(raw)

		seen := make(map[string]struct{}, len(variants))
		for _, v := range variants {
			if v == "" {
				t.Fatalf("empty variant for %q", raw)
			}
			if _, ok := seen[v]; ok {
				t.Fatalf("duplicate variant %q for %q", v, raw)
			}
			seen[v] = struct{}{}
		}

		if cleaned := CleanTitle(raw); cleaned != "" {
			if len(variants) == 0 || variants[0] != cleaned {
				t.Fatalf("cleaned title %q is not the first variant of %q", cleaned, raw)
			}
		}
	})
}
