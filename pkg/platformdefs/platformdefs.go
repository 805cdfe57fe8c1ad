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

// Package platformdefs is the reference list of gaming platforms Romshelf can
// recognize inside a library folder. Each platform has a canonical lowercase
// key, a display name and a set of accepted folder-name tokens, so that
// real-world naming variants (snes/sfc, genesis/megadrive) collapse to one
// canonical platform. New platforms are added by extending the table, not by
// adding branches.
package platformdefs

import (
	"sort"
	"strings"
	"unicode"
)

// Platform describes one recognizable gaming platform.
type Platform struct {
	Key     string
	Name    string
	Aliases []string
}

const (
	KeyNES              = "nes"
	KeySNES             = "snes"
	KeyN64              = "n64"
	KeyGameCube         = "gamecube"
	KeyWii              = "wii"
	KeyWiiU             = "wiiu"
	KeySwitch           = "switch"
	KeyGB               = "gb"
	KeyGBC              = "gbc"
	KeyGBA              = "gba"
	KeyNDS              = "nds"
	Key3DS              = "3ds"
	KeyVirtualBoy       = "virtualboy"
	KeyPSX              = "psx"
	KeyPS2              = "ps2"
	KeyPS3              = "ps3"
	KeyPSP              = "psp"
	KeyPSVita           = "psvita"
	KeyGenesis          = "genesis"
	KeyMasterSystem     = "mastersystem"
	KeyGameGear         = "gamegear"
	KeySegaCD           = "segacd"
	KeySega32X          = "sega32x"
	KeySaturn           = "saturn"
	KeyDreamcast        = "dreamcast"
	KeySG1000           = "sg1000"
	KeyArcade           = "arcade"
	KeyNeoGeo           = "neogeo"
	KeyNeoGeoCD         = "neogeocd"
	KeyNeoGeoPocket     = "ngp"
	KeyNeoGeoPocketCol  = "ngpc"
	KeyCPS1             = "cps1"
	KeyCPS2             = "cps2"
	KeyCPS3             = "cps3"
	KeyAtari2600        = "atari2600"
	KeyAtari5200        = "atari5200"
	KeyAtari7800        = "atari7800"
	KeyAtariLynx        = "lynx"
	KeyAtariJaguar      = "jaguar"
	KeyAtariST          = "atarist"
	KeyPCEngine         = "pcengine"
	KeyPCEngineCD       = "pcenginecd"
	KeyWonderSwan       = "wonderswan"
	KeyWonderSwanColor  = "wonderswancolor"
	KeyMSX              = "msx"
	KeyC64              = "c64"
	KeyAmiga            = "amiga"
	KeyAmstradCPC       = "amstradcpc"
	KeyZXSpectrum       = "zxspectrum"
	KeyX68000           = "x68000"
	KeyPC98             = "pc98"
	KeyDOS              = "dos"
	KeyScummVM          = "scummvm"
	KeyPico8            = "pico8"
	KeyIntellivision    = "intellivision"
	KeyColecoVision     = "colecovision"
	KeyVectrex          = "vectrex"
	KeyOdyssey2         = "odyssey2"
	KeyChannelF         = "channelf"
	Key3DO              = "3do"
	KeyCDi              = "cdi"
	KeyNaomi            = "naomi"
	KeyAtomiswave       = "atomiswave"
	KeyPokemonMini      = "pokemini"
	KeyGameAndWatch     = "gameandwatch"
	KeyFamicomDiskSys   = "fds"
	KeySufamiTurbo      = "sufami"
	KeySatellaview      = "satellaview"
	KeyPorts            = "ports"
)

// Platforms maps canonical key to platform definition. Aliases hold
// normalized tokens (see NormalizeToken) accepted as folder names for the
// platform in addition to the key itself.
var Platforms = map[string]Platform{
	KeyNES: {
		Key: KeyNES, Name: "Nintendo Entertainment System",
		Aliases: []string{"famicom", "fc", "nintendoentertainmentsystem"},
	},
	KeySNES: {
		Key: KeySNES, Name: "Super Nintendo",
		Aliases: []string{"sfc", "superfamicom", "supernintendo", "supernes"},
	},
	KeyN64: {
		Key: KeyN64, Name: "Nintendo 64",
		Aliases: []string{"nintendo64"},
	},
	KeyGameCube: {
		Key: KeyGameCube, Name: "Nintendo GameCube",
		Aliases: []string{"ngc", "gc", "dolphin"},
	},
	KeyWii: {
		Key: KeyWii, Name: "Nintendo Wii",
	},
	KeyWiiU: {
		Key: KeyWiiU, Name: "Nintendo Wii U",
	},
	KeySwitch: {
		Key: KeySwitch, Name: "Nintendo Switch",
		Aliases: []string{"nsw"},
	},
	KeyGB: {
		Key: KeyGB, Name: "Game Boy",
		Aliases: []string{"gameboy"},
	},
	KeyGBC: {
		Key: KeyGBC, Name: "Game Boy Color",
		Aliases: []string{"gameboycolor"},
	},
	KeyGBA: {
		Key: KeyGBA, Name: "Game Boy Advance",
		Aliases: []string{"gameboyadvance"},
	},
	KeyNDS: {
		Key: KeyNDS, Name: "Nintendo DS",
		Aliases: []string{"nintendods"},
	},
	Key3DS: {
		Key: Key3DS, Name: "Nintendo 3DS",
		Aliases: []string{"nintendo3ds", "n3ds"},
	},
	KeyVirtualBoy: {
		Key: KeyVirtualBoy, Name: "Virtual Boy",
		Aliases: []string{"vb"},
	},
	KeyPSX: {
		Key: KeyPSX, Name: "PlayStation",
		Aliases: []string{"ps1", "playstation", "playstation1"},
	},
	KeyPS2: {
		Key: KeyPS2, Name: "PlayStation 2",
		Aliases: []string{"playstation2"},
	},
	KeyPS3: {
		Key: KeyPS3, Name: "PlayStation 3",
		Aliases: []string{"playstation3"},
	},
	KeyPSP: {
		Key: KeyPSP, Name: "PlayStation Portable",
		Aliases: []string{"playstationportable"},
	},
	KeyPSVita: {
		Key: KeyPSVita, Name: "PlayStation Vita",
		Aliases: []string{"vita"},
	},
	KeyGenesis: {
		Key: KeyGenesis, Name: "Sega Genesis",
		Aliases: []string{"megadrive", "md", "segagenesis", "segamegadrive"},
	},
	KeyMasterSystem: {
		Key: KeyMasterSystem, Name: "Sega Master System",
		Aliases: []string{"sms", "segamastersystem"},
	},
	KeyGameGear: {
		Key: KeyGameGear, Name: "Sega Game Gear",
		Aliases: []string{"gg", "segagamegear"},
	},
	KeySegaCD: {
		Key: KeySegaCD, Name: "Sega CD",
		Aliases: []string{"megacd"},
	},
	KeySega32X: {
		Key: KeySega32X, Name: "Sega 32X",
		Aliases: []string{"32x"},
	},
	KeySaturn: {
		Key: KeySaturn, Name: "Sega Saturn",
		Aliases: []string{"segasaturn"},
	},
	KeyDreamcast: {
		Key: KeyDreamcast, Name: "Sega Dreamcast",
		Aliases: []string{"dc", "segadreamcast"},
	},
	KeySG1000: {
		Key: KeySG1000, Name: "Sega SG-1000",
	},
	KeyArcade: {
		Key: KeyArcade, Name: "Arcade",
		Aliases: []string{"mame", "fbneo", "fba", "finalburnneo"},
	},
	KeyNeoGeo: {
		Key: KeyNeoGeo, Name: "Neo Geo",
		Aliases: []string{"neogeoaes", "neogeomvs"},
	},
	KeyNeoGeoCD: {
		Key: KeyNeoGeoCD, Name: "Neo Geo CD",
	},
	KeyNeoGeoPocket: {
		Key: KeyNeoGeoPocket, Name: "Neo Geo Pocket",
		Aliases: []string{"neogeopocket"},
	},
	KeyNeoGeoPocketCol: {
		Key: KeyNeoGeoPocketCol, Name: "Neo Geo Pocket Color",
		Aliases: []string{"neogeopocketcolor"},
	},
	KeyCPS1: {
		Key: KeyCPS1, Name: "Capcom Play System",
	},
	KeyCPS2: {
		Key: KeyCPS2, Name: "Capcom Play System II",
	},
	KeyCPS3: {
		Key: KeyCPS3, Name: "Capcom Play System III",
	},
	KeyAtari2600: {
		Key: KeyAtari2600, Name: "Atari 2600",
		Aliases: []string{"a26"},
	},
	KeyAtari5200: {
		Key: KeyAtari5200, Name: "Atari 5200",
		Aliases: []string{"a52"},
	},
	KeyAtari7800: {
		Key: KeyAtari7800, Name: "Atari 7800",
		Aliases: []string{"a78"},
	},
	KeyAtariLynx: {
		Key: KeyAtariLynx, Name: "Atari Lynx",
		Aliases: []string{"atarilynx"},
	},
	KeyAtariJaguar: {
		Key: KeyAtariJaguar, Name: "Atari Jaguar",
		Aliases: []string{"atarijaguar"},
	},
	KeyAtariST: {
		Key: KeyAtariST, Name: "Atari ST",
	},
	KeyPCEngine: {
		Key: KeyPCEngine, Name: "PC Engine",
		Aliases: []string{"pce", "tg16", "turbografx", "turbografx16"},
	},
	KeyPCEngineCD: {
		Key: KeyPCEngineCD, Name: "PC Engine CD",
		Aliases: []string{"pcecd", "tgcd", "turbografxcd"},
	},
	KeyWonderSwan: {
		Key: KeyWonderSwan, Name: "WonderSwan",
		Aliases: []string{"ws"},
	},
	KeyWonderSwanColor: {
		Key: KeyWonderSwanColor, Name: "WonderSwan Color",
		Aliases: []string{"wsc"},
	},
	KeyMSX: {
		Key: KeyMSX, Name: "MSX",
		Aliases: []string{"msx2"},
	},
	KeyC64: {
		Key: KeyC64, Name: "Commodore 64",
		Aliases: []string{"commodore64"},
	},
	KeyAmiga: {
		Key: KeyAmiga, Name: "Commodore Amiga",
		Aliases: []string{"commodoreamiga"},
	},
	KeyAmstradCPC: {
		Key: KeyAmstradCPC, Name: "Amstrad CPC",
		Aliases: []string{"cpc"},
	},
	KeyZXSpectrum: {
		Key: KeyZXSpectrum, Name: "ZX Spectrum",
		Aliases: []string{"zxs", "spectrum"},
	},
	KeyX68000: {
		Key: KeyX68000, Name: "Sharp X68000",
	},
	KeyPC98: {
		Key: KeyPC98, Name: "NEC PC-98",
		Aliases: []string{"pc9800"},
	},
	KeyDOS: {
		Key: KeyDOS, Name: "MS-DOS",
		Aliases: []string{"msdos", "dosbox"},
	},
	KeyScummVM: {
		Key: KeyScummVM, Name: "ScummVM",
	},
	KeyPico8: {
		Key: KeyPico8, Name: "PICO-8",
	},
	KeyIntellivision: {
		Key: KeyIntellivision, Name: "Intellivision",
	},
	KeyColecoVision: {
		Key: KeyColecoVision, Name: "ColecoVision",
		Aliases: []string{"coleco"},
	},
	KeyVectrex: {
		Key: KeyVectrex, Name: "Vectrex",
	},
	KeyOdyssey2: {
		Key: KeyOdyssey2, Name: "Magnavox Odyssey 2",
		Aliases: []string{"videopac"},
	},
	KeyChannelF: {
		Key: KeyChannelF, Name: "Fairchild Channel F",
	},
	Key3DO: {
		Key: Key3DO, Name: "3DO Interactive Multiplayer",
	},
	KeyCDi: {
		Key: KeyCDi, Name: "Philips CD-i",
	},
	KeyNaomi: {
		Key: KeyNaomi, Name: "Sega NAOMI",
	},
	KeyAtomiswave: {
		Key: KeyAtomiswave, Name: "Sammy Atomiswave",
	},
	KeyPokemonMini: {
		Key: KeyPokemonMini, Name: "Pokemon Mini",
		Aliases: []string{"pokemonmini"},
	},
	KeyGameAndWatch: {
		Key: KeyGameAndWatch, Name: "Game & Watch",
		Aliases: []string{"gw"},
	},
	KeyFamicomDiskSys: {
		Key: KeyFamicomDiskSys, Name: "Famicom Disk System",
		Aliases: []string{"famicomdisksystem"},
	},
	KeySufamiTurbo: {
		Key: KeySufamiTurbo, Name: "Sufami Turbo",
		Aliases: []string{"sufamiturbo"},
	},
	KeySatellaview: {
		Key: KeySatellaview, Name: "Satellaview",
		Aliases: []string{"bsx"},
	},
	KeyPorts: {
		Key: KeyPorts, Name: "Ports",
	},
}

// reservedFolders are folder names that live alongside platform folders in an
// app data directory and must never be treated as platforms or games.
var reservedFolders = map[string]struct{}{
	"platforms":   {},
	"cache":       {},
	"shared_prefs": {},
	"databases":   {},
	"lib":         {},
	"code_cache":  {},
	"files":       {},
	"no_backup":   {},
	"app_webview": {},
}

// IsReservedFolder reports whether name is a reserved system folder.
func IsReservedFolder(name string) bool {
	_, ok := reservedFolders[strings.ToLower(name)]
	return ok
}

// NormalizeToken case-folds a folder name and strips the separator characters
// that vary between naming conventions, so "Super_Nintendo", "super-nintendo"
// and "SuperNintendo" all produce the same token.
func NormalizeToken(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// minContainsLen guards substring matching against short tokens like "md" or
// "gg" matching inside unrelated words.
const minContainsLen = 4

// Lookup resolves a raw folder name to a platform definition. The folder name
// is normalized and matched against every key and alias: exact match first,
// then containment for tokens long enough to be unambiguous ("snes_roms"
// still resolves to snes, "cmd" does not resolve to md).
func Lookup(folderName string) (Platform, bool) {
	token := NormalizeToken(folderName)
	if token == "" {
		return Platform{}, false
	}

	// Iterate in key order so containment matches are deterministic when a
	// name could match more than one platform.
	for _, key := range AllKeys() {
		p := Platforms[key]
		if token == p.Key {
			return p, true
		}
		for _, alias := range p.Aliases {
			if token == alias {
				return p, true
			}
		}
	}

	for _, key := range AllKeys() {
		p := Platforms[key]
		if len(p.Key) >= minContainsLen && strings.Contains(token, p.Key) {
			return p, true
		}
		for _, alias := range p.Aliases {
			if len(alias) >= minContainsLen && strings.Contains(token, alias) {
				return p, true
			}
		}
	}

	return Platform{}, false
}

// DisplayName returns the canonical display name for a folder, falling back
// to a title-cased version of the raw name for unknown platforms.
func DisplayName(folderName string) string {
	if p, ok := Lookup(folderName); ok {
		return p.Name
	}
	return titleCaseFolder(folderName)
}

func titleCaseFolder(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// AllKeys returns every canonical platform key in alphabetical order.
func AllKeys() []string {
	keys := make([]string, 0, len(Platforms))
	for k := range Platforms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
