package container

import (
	"testing"

	"github.com/jamra/bookdex/internal/docindex"
)

func buildShard(t *testing.T) *docindex.Shard {
	t.Helper()
	b := docindex.New()
	b.AddBook("library/fiction/moby-dick.txt", []string{"moby", "dick"}, []string{"whale", "sea", "whale"})
	b.AddBook("library/fiction/dracula.txt", []string{"dracula"}, []string{"whale", "castle"})

	shard, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return shard
}

func TestCompileAndView_RoundTrip(t *testing.T) {
	shard := buildShard(t)
	buf, err := Compile(shard)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	view, err := NewView(buf)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}

	content, err := view.SearchContent("whale")
	if err != nil {
		t.Fatalf("SearchContent: %v", err)
	}
	want := []string{"library/fiction/moby-dick.txt", "library/fiction/dracula.txt"}
	if len(content) != len(want) {
		t.Fatalf("SearchContent(whale) = %v, want %v", content, want)
	}
	for i := range want {
		if content[i] != want[i] {
			t.Errorf("SearchContent(whale)[%d] = %q, want %q", i, content[i], want[i])
		}
	}

	title, err := view.SearchTitle("dracula")
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if len(title) != 1 || title[0] != "library/fiction/dracula.txt" {
		t.Errorf("SearchTitle(dracula) = %v, want [library/fiction/dracula.txt]", title)
	}

	// "castle" only occurs in dracula's content, never its title.
	if got, _ := view.SearchTitle("castle"); len(got) != 0 {
		t.Errorf("SearchTitle(castle) = %v, want empty", got)
	}

	if got, _ := view.SearchContent("nonexistent"); got != nil {
		t.Errorf("SearchContent(nonexistent) = %v, want nil", got)
	}
}

func TestView_EmptyShard(t *testing.T) {
	b := docindex.New()
	shard, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	buf, err := Compile(shard)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	view, err := NewView(buf)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if got, _ := view.SearchContent("anything"); got != nil {
		t.Errorf("SearchContent on empty shard = %v, want nil", got)
	}
}
