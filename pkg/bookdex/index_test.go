package bookdex

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jamra/bookdex/internal/container"
	"github.com/jamra/bookdex/internal/docindex"
	"github.com/jamra/bookdex/internal/shard"
)

func buildIndexFile(t *testing.T, books map[string][]string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "index.bookdex")

	w, err := shard.Create(path)
	if err != nil {
		t.Fatalf("shard.Create: %v", err)
	}
	for bookPath, content := range books {
		b := docindex.New()
		b.AddBook(bookPath, nil, content)
		sh, err := b.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		buf, err := container.Compile(sh)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if err := w.Append(buf); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestIndex_Search(t *testing.T) {
	path := buildIndexFile(t, map[string][]string{
		"books/a.txt": {"whale"},
		"books/b.txt": {"whale", "castle"},
	})

	idx, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()

	results, err := idx.Search([]string{"whale", "castle", "nope"}, ChannelContent)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results["whale"]) != 2 {
		t.Errorf("whale hits = %v, want 2 results", results["whale"])
	}
	if len(results["castle"]) != 1 {
		t.Errorf("castle hits = %v, want 1 result", results["castle"])
	}
	if len(results["nope"]) != 0 {
		t.Errorf("nope hits = %v, want 0 results", results["nope"])
	}
}

func TestIndex_SearchParallelMatchesSequential(t *testing.T) {
	path := buildIndexFile(t, map[string][]string{
		"books/a.txt": {"whale"},
		"books/b.txt": {"whale"},
		"books/c.txt": {"whale"},
		"books/d.txt": {"whale"},
	})

	idx, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()
	idx.Jobs = 3

	sequential, err := idx.Search([]string{"whale"}, ChannelContent)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	parallel, err := idx.SearchParallel(context.Background(), []string{"whale"}, ChannelContent)
	if err != nil {
		t.Fatalf("SearchParallel: %v", err)
	}

	if len(sequential["whale"]) != len(parallel["whale"]) {
		t.Fatalf("sequential=%v parallel=%v", sequential["whale"], parallel["whale"])
	}
	for i := range sequential["whale"] {
		if sequential["whale"][i] != parallel["whale"][i] {
			t.Errorf("result[%d]: sequential=%q parallel=%q", i, sequential["whale"][i], parallel["whale"][i])
		}
	}
}
