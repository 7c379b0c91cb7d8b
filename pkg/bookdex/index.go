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

package bookdex

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jamra/bookdex/internal/shard"
)

// Index is a handle onto a compiled, mmapped index file. It's safe for
// concurrent use by multiple goroutines: shard.Reader's underlying map is
// read-only, and Search's own bookkeeping holds no mutable state across
// calls.
type Index struct {
	reader *shard.Reader

	// Jobs is the number of worker goroutines SearchParallel fans lookups
	// across. Zero or one means sequential (the default).
	Jobs int
}

// Open mmaps path and prepares it for searching.
func Open(path string) (*Index, error) {
	r, err := shard.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bookdex: open %s: %w", path, err)
	}
	return &Index{reader: r}, nil
}

// Close unmaps the underlying file.
func (idx *Index) Close() error {
	return idx.reader.Close()
}

// Search looks up every token in ch across all shards, sequentially.
// Results are ordered by shard, then by ascending book id within shard.
func (idx *Index) Search(tokens []string, ch Channel) (map[string][]string, error) {
	results := make(map[string][]string, len(tokens))
	for _, tok := range tokens {
		results[tok] = nil
	}

	for i := 0; i < idx.reader.Len(); i++ {
		view, err := idx.reader.View(i)
		if err != nil {
			return nil, fmt.Errorf("bookdex: shard %d: %w", i, err)
		}
		for _, tok := range tokens {
			paths, err := lookup(view, tok, ch)
			if err != nil {
				return nil, fmt.Errorf("bookdex: shard %d, token %q: %w", i, tok, err)
			}
			results[tok] = append(results[tok], paths...)
		}
	}
	return results, nil
}

// SearchParallel is Search's concurrent counterpart: shards are split
// into idx.Jobs contiguous ranges, each scanned by its own goroutine into
// its own result map, and the maps are merged in range order once every
// goroutine has finished. If Jobs is 0 or 1, it behaves exactly like Search.
func (idx *Index) SearchParallel(ctx context.Context, tokens []string, ch Channel) (map[string][]string, error) {
	jobs := idx.Jobs
	if jobs < 1 {
		jobs = 1
	}
	n := idx.reader.Len()
	if jobs > n {
		jobs = n
	}
	if jobs <= 1 {
		return idx.Search(tokens, ch)
	}

	// Each worker's hits are kept in its own map, indexed by worker
	// number, and merged in worker order once every worker has finished.
	// Merging in completion order instead would make cross-shard result
	// order depend on goroutine scheduling; keeping per-worker buckets
	// and folding them back in range order preserves the shard-then-
	// book-id ordering guarantee regardless of which worker finishes
	// first.
	perWorker := make([]map[string][]string, jobs)

	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + jobs - 1) / jobs
	for w := 0; w < jobs; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			localHits := make(map[string][]string, len(tokens))
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				view, err := idx.reader.View(i)
				if err != nil {
					return fmt.Errorf("shard %d: %w", i, err)
				}
				for _, tok := range tokens {
					paths, err := lookup(view, tok, ch)
					if err != nil {
						return fmt.Errorf("shard %d, token %q: %w", i, tok, err)
					}
					localHits[tok] = append(localHits[tok], paths...)
				}
			}
			perWorker[w] = localHits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bookdex: parallel search: %w", err)
	}

	results := make(map[string][]string, len(tokens))
	for _, tok := range tokens {
		results[tok] = nil
	}
	for _, hits := range perWorker {
		for tok, paths := range hits {
			results[tok] = append(results[tok], paths...)
		}
	}
	return results, nil
}

type searchable interface {
	SearchTitle(string) ([]string, error)
	SearchContent(string) ([]string, error)
}

func lookup(view searchable, token string, ch Channel) ([]string, error) {
	if ch == ChannelTitle {
		return view.SearchTitle(token)
	}
	return view.SearchContent(token)
}
