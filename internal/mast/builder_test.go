package mast

import "testing"

func buildAndCompile(t *testing.T, pairs []struct {
	key   string
	value uint32
}) *CompiledFST {
	t.Helper()
	b := New()
	for _, p := range pairs {
		if err := b.Add([]byte(p.key), p.value); err != nil {
			t.Fatalf("Add(%q, %d): %v", p.key, p.value, err)
		}
	}
	return Compile(b.Build())
}

func TestBuilder_CatDeerDog(t *testing.T) {
	pairs := []struct {
		key   string
		value uint32
	}{
		{"cat", 3},
		{"deer", 2},
		{"dog", 1},
	}
	fst := buildAndCompile(t, pairs)

	for _, p := range pairs {
		got, ok := fst.Get([]byte(p.key))
		if !ok {
			t.Errorf("Get(%q): not found", p.key)
			continue
		}
		if got != p.value {
			t.Errorf("Get(%q) = %d, want %d", p.key, got, p.value)
		}
	}

	for _, missing := range []string{"ca", "do", "deers", "cats"} {
		if _, ok := fst.Get([]byte(missing)); ok {
			t.Errorf("Get(%q): expected miss, got a hit", missing)
		}
	}
}

func TestBuilder_SuffixSharing(t *testing.T) {
	pairs := []struct {
		key   string
		value uint32
	}{
		{"tap", 1},
		{"top", 1},
	}
	fst := buildAndCompile(t, pairs)

	for _, p := range pairs {
		got, ok := fst.Get([]byte(p.key))
		if !ok || got != p.value {
			t.Errorf("Get(%q) = (%d, %v), want (%d, true)", p.key, got, ok, p.value)
		}
	}
}

func TestBuilder_OutputPushBack(t *testing.T) {
	pairs := []struct {
		key   string
		value uint32
	}{
		{"ab", 5},
		{"ac", 7},
	}
	fst := buildAndCompile(t, pairs)

	if got, ok := fst.Get([]byte("ab")); !ok || got != 5 {
		t.Errorf("Get(ab) = (%d, %v), want (5, true)", got, ok)
	}
	if got, ok := fst.Get([]byte("ac")); !ok || got != 7 {
		t.Errorf("Get(ac) = (%d, %v), want (7, true)", got, ok)
	}
}

func TestBuilder_EmptyKey(t *testing.T) {
	b := New()
	if err := b.Add(nil, 1); err != ErrEmptyKey {
		t.Errorf("Add(nil) = %v, want ErrEmptyKey", err)
	}
	if err := b.Add([]byte(""), 1); err != ErrEmptyKey {
		t.Errorf(`Add("") = %v, want ErrEmptyKey`, err)
	}
}

func TestBuilder_DuplicateKey(t *testing.T) {
	b := New()
	if err := b.Add([]byte("cat"), 1); err != nil {
		t.Fatalf("Add(cat): %v", err)
	}
	if err := b.Add([]byte("cat"), 2); err != ErrDuplicateKey {
		t.Errorf("Add(cat) again = %v, want ErrDuplicateKey", err)
	}
}

func TestBuilder_UnsortedKey(t *testing.T) {
	b := New()
	if err := b.Add([]byte("dog"), 1); err != nil {
		t.Fatalf("Add(dog): %v", err)
	}
	if err := b.Add([]byte("cat"), 2); err != ErrUnsortedKey {
		t.Errorf("Add(cat) after dog = %v, want ErrUnsortedKey", err)
	}
}

func TestBuilder_RootUnifiesOnFirstByteDivergence(t *testing.T) {
	// Exercises freezing all the way back to the root (depth 0) on the very
	// first divergence, which is exactly the path the "if (i-1 > 0)" guard
	// in the original implementation would have skipped.
	pairs := []struct {
		key   string
		value uint32
	}{
		{"a", 1},
		{"b", 1},
	}
	fst := buildAndCompile(t, pairs)
	for _, p := range pairs {
		got, ok := fst.Get([]byte(p.key))
		if !ok || got != p.value {
			t.Errorf("Get(%q) = (%d, %v), want (%d, true)", p.key, got, ok, p.value)
		}
	}
}

func TestBuilder_Minimality(t *testing.T) {
	// "lat" and "mat" share the suffix "at" and both end with the same
	// output (0), so they must collapse onto the same frozen state once
	// both have been processed.
	pairs := []struct {
		key   string
		value uint32
	}{
		{"lat", 0},
		{"mat", 0},
	}
	b := New()
	for _, p := range pairs {
		if err := b.Add([]byte(p.key), p.value); err != nil {
			t.Fatalf("Add(%q): %v", p.key, err)
		}
	}
	states := b.Build()

	seen := make(map[string]int)
	for _, s := range states {
		seen[signatureKey(s)]++
	}
	for sig, count := range seen {
		if count > 1 {
			t.Errorf("state signature %q appears %d times, transducer is not minimal", sig, count)
		}
	}
}

func signatureKey(s State) string {
	key := string(signature(s.Final, s.Arcs))
	return key
}
