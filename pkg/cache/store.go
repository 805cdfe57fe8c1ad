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
	"time"
)

// ErrNotFound is returned by Store.Get when no blob exists for a namespace.
var ErrNotFound = errors.New("cache: snapshot not found")

// Store is the persistence capability behind the disk cache tier: a small
// key-value blob store with one timestamp per namespace. Writers must store
// a complete blob or nothing; partial writes are not representable.
type Store interface {
	Put(namespace string, data []byte, savedAt time.Time) error
	Get(namespace string) (data []byte, savedAt time.Time, err error)
	Clear(namespace string) error
}
