/*
Romshelf Core
Copyright (C) 2026 The Romshelf Project Contributors

This file is part of Romshelf Core.

Romshelf Core is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Romshelf Core is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Romshelf Core.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RomShelfProject/romshelf-core/pkg/cache"
	"github.com/RomShelfProject/romshelf-core/pkg/config"
	"github.com/RomShelfProject/romshelf-core/pkg/database/snapshotdb"
	"github.com/RomShelfProject/romshelf-core/pkg/helpers"
	"github.com/RomShelfProject/romshelf-core/pkg/library"
	"github.com/RomShelfProject/romshelf-core/pkg/platformdefs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const appVersion = "1.0.0"

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	listPlatforms := flag.Bool(
		"platforms",
		false,
		"list detected platform folders",
	)
	listGames := flag.String(
		"games",
		"",
		"list games for a platform folder",
	)
	refresh := flag.Bool(
		"refresh",
		false,
		"bypass caches and rescan the library",
	)
	setRoot := flag.String(
		"set-root",
		"",
		"set the library root override and save it",
	)
	clearCache := flag.Bool(
		"clear-cache",
		false,
		"drop all cached scan results",
	)
	version := flag.Bool(
		"version",
		false,
		"print version and exit",
	)
	flag.Parse()

	if *version {
		fmt.Printf("romshelf v%s\n", appVersion)
		return nil
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := helpers.InitLogging(helpers.DataDir(), nil); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}
	helpers.SetLogLevel(cfg.DebugLogging())

	fs := afero.NewOsFs()
	locator := library.NewLocator(fs, cfg.RomFolder())
	scanner := library.NewScanner(fs)

	var store cache.Store
	db, err := snapshotdb.Open(filepath.Join(helpers.DataDir(), "snapshots.db"))
	if err != nil {
		// A missing snapshot store only costs rescans on startup.
		log.Warn().Err(err).Msg("continuing without persisted cache")
	} else {
		store = db
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Warn().Msgf("error closing snapshot database: %s", closeErr)
			}
		}()
	}

	mgr := cache.NewManager(fs, locator, scanner, store, nil)

	if *setRoot != "" {
		if err := cfg.SetRomFolder(*setRoot); err != nil {
			return fmt.Errorf("error saving library root: %w", err)
		}
		mgr.SetOverrideRoot(*setRoot)
		fmt.Printf("library root set to %s\n", *setRoot)
		return nil
	}

	if *clearCache {
		mgr.ClearAll()
		fmt.Println("cache cleared")
		return nil
	}

	switch {
	case *listGames != "":
		games := mgr.GetGames(*listGames, *refresh)
		for _, g := range games {
			marker := " "
			if g.Has(library.AssetIcon) {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, g.DisplayName)
		}
		fmt.Printf("%d games in %s\n", len(games), platformdefs.DisplayName(*listGames))
	case *listPlatforms:
		fallthrough
	default:
		infos := mgr.GetPlatformInfoList(*refresh)
		if len(infos) == 0 {
			fmt.Println("no platforms found")
			fmt.Printf("library root: %s\n", locator.ResolveRoot())
			return nil
		}
		for _, pi := range infos {
			fmt.Printf("%-28s %4d games  (missing: %d icons, %d heroes, %d logos)\n",
				pi.Name, pi.GameCount, pi.MissingIcon, pi.MissingHero, pi.MissingLogo)
		}
	}

	return nil
}
