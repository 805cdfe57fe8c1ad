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

// Package snapshotdb persists cache snapshots in a bolt database next to
// the app's other data files. Each namespace maps to one record carrying
// the payload and the time it was saved.
package snapshotdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RomShelfProject/romshelf-core/pkg/cache"
	bolt "go.etcd.io/bbolt"
)

const bucketSnapshots = "snapshots"

// record is the stored envelope for one namespace.
type record struct {
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

type SnapshotDB struct {
	bdb *bolt.DB
}

// Open opens or creates the snapshot database at path.
func Open(path string) (*SnapshotDB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(txn *bolt.Tx) error {
		_, createErr := txn.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return createErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshots bucket: %w", err)
	}

	return &SnapshotDB{bdb: db}, nil
}

func (d *SnapshotDB) Close() error {
	if err := d.bdb.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	return nil
}

// Put stores data under namespace, replacing any previous record.
func (d *SnapshotDB) Put(namespace string, data []byte, savedAt time.Time) error {
	rec := record{
		SavedAt: savedAt,
		Data:    data,
	}
	val, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot record: %w", err)
	}

	err = d.bdb.Update(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(bucketSnapshots))
		if b == nil {
			return fmt.Errorf("bucket %q does not exist", bucketSnapshots)
		}
		return b.Put([]byte(namespace), val)
	})
	if err != nil {
		return fmt.Errorf("failed to update bolt database: %w", err)
	}
	return nil
}

// Get returns the payload and save time stored under namespace, or
// cache.ErrNotFound when the namespace has no record.
func (d *SnapshotDB) Get(namespace string) ([]byte, time.Time, error) {
	var rec record
	err := d.bdb.View(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(bucketSnapshots))
		if b == nil {
			return cache.ErrNotFound
		}
		val := b.Get([]byte(namespace))
		if val == nil {
			return cache.ErrNotFound
		}
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot record: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, time.Time{}, cache.ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("failed to view bolt database: %w", err)
	}
	return rec.Data, rec.SavedAt, nil
}

// Clear removes the record stored under namespace, if any.
func (d *SnapshotDB) Clear(namespace string) error {
	err := d.bdb.Update(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(bucketSnapshots))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(namespace))
	})
	if err != nil {
		return fmt.Errorf("failed to update bolt database: %w", err)
	}
	return nil
}
