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

import "sort"

// tokenAccumulator is the "unmerged" structure of spec.md §4.3: a map
// keyed by token, then by book id, holding both frequency channels for
// that (token, book) pair. It is an ordered map in the sense that matters
// here: Build sorts the token keys once, which is the only ordering the
// transducer builder requires.
type tokenAccumulator struct {
	entries map[string][]Entry
	slot    map[string]map[uint32]int // token -> bookID -> index into entries[token]
}

func newTokenAccumulator() *tokenAccumulator {
	return &tokenAccumulator{
		entries: make(map[string][]Entry),
		slot:    make(map[string]map[uint32]int),
	}
}

// bumpTitle increments the title frequency of token for bookID, creating
// the posting with (title_freq=1, content_freq=0) if this is the first
// occurrence.
func (a *tokenAccumulator) bumpTitle(token string, bookID uint32) {
	a.entry(token, bookID).TitleFreq++
}

// bumpContent increments the content frequency of token for bookID,
// creating the posting with (title_freq=0, content_freq=1) if this is the
// first occurrence.
func (a *tokenAccumulator) bumpContent(token string, bookID uint32) {
	a.entry(token, bookID).ContentFreq++
}

func (a *tokenAccumulator) entry(token string, bookID uint32) *Entry {
	byBook, ok := a.slot[token]
	if !ok {
		byBook = make(map[uint32]int)
		a.slot[token] = byBook
	}
	if idx, ok := byBook[bookID]; ok {
		return &a.entries[token][idx]
	}
	idx := len(a.entries[token])
	byBook[bookID] = idx
	a.entries[token] = append(a.entries[token], Entry{BookID: bookID})
	return &a.entries[token][idx]
}

// sortedTokens returns every distinct token seen, in ascending
// lexicographic order — the sorted key stream the transducer builder
// requires.
func (a *tokenAccumulator) sortedTokens() []string {
	tokens := make([]string, 0, len(a.entries))
	for t := range a.entries {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}
