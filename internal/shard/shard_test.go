package shard

import (
	"path/filepath"
	"testing"

	"github.com/jamra/bookdex/internal/container"
	"github.com/jamra/bookdex/internal/docindex"
)

func compileOneShard(t *testing.T, bookPath string, content []string) []byte {
	t.Helper()
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
	return buf
}

func TestWriterReader_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.bookdex")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	shardA := compileOneShard(t, "books/a.txt", []string{"whale"})
	shardB := compileOneShard(t, "books/b.txt", []string{"castle"})
	if err := w.Append(shardA); err != nil {
		t.Fatalf("Append shardA: %v", err)
	}
	if err := w.Append(shardB); err != nil {
		t.Fatalf("Append shardB: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	v0, err := r.View(0)
	if err != nil {
		t.Fatalf("View(0): %v", err)
	}
	paths, err := v0.SearchContent("whale")
	if err != nil {
		t.Fatalf("SearchContent: %v", err)
	}
	if len(paths) != 1 || paths[0] != "books/a.txt" {
		t.Errorf("shard 0 SearchContent(whale) = %v, want [books/a.txt]", paths)
	}

	v1, err := r.View(1)
	if err != nil {
		t.Fatalf("View(1): %v", err)
	}
	if paths, _ := v1.SearchContent("whale"); len(paths) != 0 {
		t.Errorf("shard 1 should not contain whale, got %v", paths)
	}
}

func TestReader_ViewOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.bookdex")
	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Append(compileOneShard(t, "books/a.txt", nil)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if _, err := r.View(5); err == nil {
		t.Error("View(5) on a 1-shard file: expected an error, got nil")
	}
}
