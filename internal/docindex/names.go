/*
 * Copyright (c) 2011 jamra.source@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not
 * use this file except in compliance with the License. You may obtain a copy of
 * the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations under
 * the License.
 */

package docindex

import "strings"

// nameTable interns book path segments so the container's
// shared name section stores each distinct string once, however many
// books reference it.
type nameTable struct {
	names []string
	index map[string]uint32
}

func newNameTable() *nameTable {
	return &nameTable{index: make(map[string]uint32)}
}

// intern returns the id for s, assigning a new one if s hasn't been seen.
func (t *nameTable) intern(s string) uint32 {
	if id, ok := t.index[s]; ok {
		return id
	}
	id := uint32(len(t.names))
	t.names = append(t.names, s)
	t.index[s] = id
	return id
}

// pathRef splits a filesystem path into its components and interns each
// one, returning a PathRef that shares segments with any other book path
// rooted at the same directories.
func (t *nameTable) pathRef(path string) PathRef {
	parts := strings.Split(path, "/")
	segs := make([]uint32, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		segs = append(segs, t.intern(p))
	}
	return PathRef{Segments: segs}
}
