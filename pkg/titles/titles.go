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

// Package titles turns raw ROM folder and file names into display titles and
// search-friendly variants. All functions are pure; the cleaning pipeline is
// an ordered table of pattern rules and the order is a tested contract, since
// reordering changes output.
package titles

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cleanRule is one step of the CleanTitle pipeline.
type cleanRule struct {
	name string
	re   *regexp.Regexp
	repl string
}

// cleanRules runs in order. Extension removal must come first so the
// parenthetical rules never see extension-adjacent text, and whitespace
// collapse is handled separately after the table runs.
var cleanRules = []cleanRule{
	{
		// Known archive and ROM extensions only; an unrecognized suffix is
		// treated as part of the title.
		name: "extension",
		re: regexp.MustCompile(`(?i)\.(?:zip|7z|rar|gz|chd|iso|cue|bin|img|pbp|cso|wbfs|rvz|` +
			`nes|fds|sfc|smc|gb|gbc|gba|nds|3ds|n64|z64|v64|gcm|` +
			`gen|md|smd|sms|gg|32x|pce|a26|a52|a78|lnx|j64|` +
			`ngp|ngc|ws|wsc|vb|min|int|col|vec|rom|d64|adf|dsk|tap|tzx)$`),
		repl: "",
	},
	{
		name: "dump-tags",
		re:   regexp.MustCompile(`\[[^\]]*\]`),
		repl: "",
	},
	{
		name: "size-annotations",
		re:   regexp.MustCompile(`(?i)\(\s*\d+(?:\.\d+)?\s*[KMGT]B\s*\)|\(\s*\d{6,}\s*\)`),
		repl: "",
	},
	{
		name: "region-names",
		re: regexp.MustCompile(`(?i)\(\s*(?:usa|europe|japan|world|asia|australia|brazil|canada|` +
			`china|france|germany|italy|korea|netherlands|spain|sweden|taiwan|uk)` +
			`(?:\s*,\s*[a-z ]+)*\s*\)`),
		repl: "",
	},
	{
		name: "language-codes",
		re:   regexp.MustCompile(`\(\s*[A-Za-z]{2}(?:\s*,\s*[A-Za-z]{2})*\s*\)`),
		repl: "",
	},
	{
		name: "status-tags",
		re: regexp.MustCompile(`(?i)\(\s*(?:proto(?:type)?|beta|alpha|demo|sample|promo|kiosk|debug|` +
			`unl|unlicensed|pirate|aftermarket|homebrew)[^)]*\)`),
		repl: "",
	},
	{
		name: "revision",
		re:   regexp.MustCompile(`(?i)\(\s*rev(?:ision)?[\s.]*[0-9a-z.]*\s*\)`),
		repl: "",
	},
	{
		name: "version",
		re:   regexp.MustCompile(`(?i)\b(?:v\d+(?:\.\d+)*[a-z]?|version\s*\d+(?:\.\d+)*)\b`),
		repl: "",
	},
	{
		name: "disc-number",
		re:   regexp.MustCompile(`(?i)\(\s*(?:dis[ck]|cd|side)\s*\w+(?:\s*of\s*\d+)?\s*\)`),
		repl: "",
	},
	{
		name: "update-dlc",
		re:   regexp.MustCompile(`(?i)(?:\(\s*[^)]*\b(?:update|dlc|patch)\b[^)]*\)|\+?\s*\b(?:update|dlc|patch)\b)`),
		repl: "",
	},
	{
		name: "empty-parens",
		re:   regexp.MustCompile(`\(\s*\)`),
		repl: "",
	},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// symbolTable substitutes symbol characters for NormalizeForSearch. Word
// substitutions are space-padded so they never glue onto neighboring words.
var symbolTable = []struct{ from, to string }{
	{"&", " and "},
	{"+", " plus "},
	{"@", " at "},
	{"’", "'"},
	{"‘", "'"},
	{"“", "\""},
	{"”", "\""},
	{"–", "-"},
	{"—", "-"},
	{"…", "..."},
	{"™", ""},
	{"®", ""},
	{"©", ""},
}

// searchPunctRe strips punctuation for search, keeping apostrophe and hyphen.
var searchPunctRe = regexp.MustCompile(`[^\p{L}\p{N}\s'-]`)

// romanNumeralTable maps whole-word Roman numerals to their Arabic variants
// for SearchVariants. I, V and X are omitted on purpose: they are too
// ambiguous in game titles ("Mega Man X").
var romanNumeralTable = []struct{ numeral, arabic string }{
	{"II", "2"},
	{"III", "3"},
	{"IV", "4"},
	{"VI", "6"},
	{"VII", "7"},
	{"VIII", "8"},
	{"IX", "9"},
	{"XI", "11"},
	{"XII", "12"},
}

var romanNumeralRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(romanNumeralTable))
	for _, e := range romanNumeralTable {
		res[e.numeral] = regexp.MustCompile(`\b` + e.numeral + `\b`)
	}
	return res
}()

// CleanTitle strips dump metadata from a raw folder or file name and returns
// a display title.
//
// Examples:
//   - "Chrono Trigger (USA) (Rev 1) [!].sfc" → "Chrono Trigger"
//   - "Final Fantasy VII (Disc 1 of 3) (USA)" → "Final Fantasy VII"
func CleanTitle(raw string) string {
	s := raw
	for _, rule := range cleanRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "-_. ")
	return strings.TrimSpace(s)
}

// removeDiacritics decomposes accented characters and drops the combining
// marks, so "Pokémon" matches a plain-ASCII "Pokemon" search.
func removeDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		return normalized
	}
	return s
}

// NormalizeForSearch cleans a raw name and reduces it to a search-friendly
// form: diacritics removed, symbols substituted for words, punctuation other
// than apostrophe and hyphen stripped. The result is stable under repeated
// application.
func NormalizeForSearch(raw string) string {
	s := normalizeOnce(raw)
	// Punctuation stripping can expose a token the clean rules match ("v.2"
	// becomes "v2"), so iterate until the result is a fixed point.
	for i := 0; i < 4; i++ {
		next := normalizeOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func normalizeOnce(raw string) string {
	s := CleanTitle(raw)
	s = removeDiacritics(s)
	for _, sub := range symbolTable {
		s = strings.ReplaceAll(s, sub.from, sub.to)
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = searchPunctRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	// Substitutions can leave a trailing separator (an en dash becomes "-"),
	// which a repeated run would otherwise trim. Trim it here so the result
	// is a fixed point.
	s = strings.TrimRight(s, "-_. ")
	return strings.TrimSpace(s)
}

// SearchVariants returns the ordered, deduplicated list of query strings to
// try when searching for artwork for a raw name. The cleaned title always
// comes first when it is non-empty, followed by the normalized form, subtitle
// truncations, and whole-word Roman numeral substitutions.
//
// Example: "Final Fantasy VII (Disc 1 of 3) (USA)" yields
// "Final Fantasy VII" and "Final Fantasy 7" among its variants.
func SearchVariants(raw string) []string {
	var variants []string
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		variants = append(variants, s)
	}

	cleaned := CleanTitle(raw)
	add(cleaned)
	add(NormalizeForSearch(raw))

	// Main title before a colon-separated subtitle.
	if prefix, _, ok := strings.Cut(cleaned, ":"); ok {
		add(prefix)
	}

	// Main title before a dash-separated subtitle.
	if prefix, _, ok := strings.Cut(cleaned, " - "); ok {
		add(prefix)
	}

	// Each numeral is tried independently against the cleaned title, so
	// "Final Fantasy VII" also yields "Final Fantasy 7".
	for _, e := range romanNumeralTable {
		re := romanNumeralRes[e.numeral]
		if re.MatchString(cleaned) {
			add(re.ReplaceAllString(cleaned, e.arabic))
		}
	}

	return variants
}
