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

// Package docindex accumulates a single book collection into the shape
// internal/container knows how to serialize: a shared name table, a
// per-book path list, and a minimized transducer mapping each distinct
// token to the group of books it occurs in.
package docindex

import "github.com/jamra/bookdex/internal/mast"

// PathRef is a book's filesystem path, stored as a sequence of indices
// into the shard's shared name table rather than as a string, so that
// repeated directory components across books are stored once.
type PathRef struct {
	Segments []uint32
}

// BookEntry is a single book's record: its path, via the name table.
type BookEntry struct {
	Path PathRef
}

// Entry is one posting: a book id plus the number of times the owning
// token occurred in that book's title and in its content. Both channels
// share a single posting so a book that matches in both counts once, not
// twice.
type Entry struct {
	BookID      uint32
	TitleFreq   uint64
	ContentFreq uint64
}

// Shard is the fully accumulated, not-yet-columnarized result of indexing
// a collection: the deduplicated name table, every book's path, the
// minimized transducer over the token dictionary, and the per-token
// posting groups the transducer's output values index into.
type Shard struct {
	Names   []string
	Books   []BookEntry
	Tokens  []string // sorted token dictionary; Tokens[v] fed the transducer output value v
	States  []mast.State
	Entries [][]Entry // Entries[v] is the posting group for Tokens[v]
}
