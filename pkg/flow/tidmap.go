/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package flow

import "fmt"

// TidMap anonymizes raw TIDs into stable sequential names tid_0, tid_1,
// … for level-2 rendering. Encapsulated behind the reconstructor rather
// than a process-wide singleton, per spec.md §9's explicit design note
// (the original Rust program used a global `static Mutex<Lazy<...>>`).
type TidMap struct {
	names map[int64]string
}

// NewTidMap returns an empty anonymization table.
func NewTidMap() *TidMap {
	return &TidMap{names: make(map[int64]string)}
}

// Mask returns the stable tid_N name for raw, allocating a new one on
// first occurrence.
func (m *TidMap) Mask(raw int64) string {
	if name, ok := m.names[raw]; ok {
		return name
	}
	name := fmt.Sprintf("tid_%d", len(m.names))
	m.names[raw] = name
	return name
}
