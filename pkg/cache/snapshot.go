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
	"encoding/json"
	"fmt"
)

// The persisted snapshot is one JSON array of PlatformInfo records in
// platform order. The snapshot's timestamp lives with the Store, not in the
// payload.

func encodeSnapshot(infos []PlatformInfo) ([]byte, error) {
	data, err := json.Marshal(infos)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) ([]PlatformInfo, error) {
	var infos []PlatformInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return infos, nil
}
