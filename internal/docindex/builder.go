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

import "github.com/jamra/bookdex/internal/mast"

// Builder accumulates books and their tokenized title/content into a
// Shard. Books may be added in any order; the book id returned by AddBook
// is the only stable handle into the eventual Shard.Books slice. A
// Builder is owned by exactly one goroutine; build-time parallelism comes
// from running several Builders over disjoint file ranges, not from
// sharing one.
type Builder struct {
	names *nameTable
	books []BookEntry
	tok   *tokenAccumulator
}

// New creates an empty index builder.
func New() *Builder {
	return &Builder{
		names: newNameTable(),
		tok:   newTokenAccumulator(),
	}
}

// AddBook registers a book at path with its already-tokenized title and
// content, returning the book id assigned to it. Ids are handed out
// sequentially starting at zero, in call order.
func (b *Builder) AddBook(path string, titleTokens, contentTokens []string) uint32 {
	bookID := uint32(len(b.books))
	b.books = append(b.books, BookEntry{Path: b.names.pathRef(path)})

	for _, t := range titleTokens {
		b.tok.bumpTitle(t, bookID)
	}
	for _, t := range contentTokens {
		b.tok.bumpContent(t, bookID)
	}

	return bookID
}

// Build finalizes accumulation: the token dictionary is sorted and fed to
// a mast.Builder in order, and the resulting minimized transducer is
// packaged alongside the per-token posting groups and book metadata into
// an immutable Shard.
func (b *Builder) Build() (*Shard, error) {
	tokens := b.tok.sortedTokens()

	fb := mast.New()
	entries := make([][]Entry, 0, len(tokens))
	for _, tok := range tokens {
		if err := fb.Add([]byte(tok), uint32(len(entries))); err != nil {
			return nil, err
		}
		entries = append(entries, b.tok.entries[tok])
	}

	return &Shard{
		Names:   b.names.names,
		Books:   b.books,
		Tokens:  tokens,
		States:  fb.Build(),
		Entries: entries,
	}, nil
}
