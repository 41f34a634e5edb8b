package filter

import (
	"net/url"
	"path/filepath"
	"testing"
)

func TestDefaultEncodesEmpty(t *testing.T) {
	if got := Default().EncodeString(); got != "" {
		t.Errorf("expected empty encoding for defaults, got %q", got)
	}
}

func TestEncodeOmitsDefaults(t *testing.T) {
	s := Default()
	s.MinScore = 0.5
	s.Search = "login"

	v := s.Encode()
	if v.Get("min_score") != "0.5" {
		t.Errorf("expected min_score=0.5, got %q", v.Get("min_score"))
	}
	if v.Get("search") != "login" {
		t.Errorf("expected search=login, got %q", v.Get("search"))
	}
	for _, k := range []string{"max_score", "algorithm", "sort_by", "sort_order"} {
		if v.Has(k) {
			t.Errorf("expected default field %q omitted", k)
		}
	}
}

func TestRoundTripIdempotent(t *testing.T) {
	states := []State{
		Default(),
		{MinScore: 0.25, MaxScore: 0.9, Algorithm: "tfidf", SortBy: "created_at", SortOrder: "asc", Search: "auth flow"},
		{MinScore: 0, MaxScore: 1, Algorithm: "all", SortBy: "score", SortOrder: "desc", Search: "ü&="},
		{MinScore: 0.333333, MaxScore: 1, Algorithm: "embedding", SortBy: "score", SortOrder: "desc"},
	}

	for _, s := range states {
		once := s.Encode().Encode()
		again := Decode(s.Encode()).Encode().Encode()
		if once != again {
			t.Errorf("round trip not idempotent: %q != %q", once, again)
		}
	}
}

func TestDecodeClampsScores(t *testing.T) {
	v := url.Values{}
	v.Set("min_score", "-3")
	v.Set("max_score", "7.5")
	s := Decode(v)
	if s.MinScore != 0 {
		t.Errorf("expected min clamped to 0, got %v", s.MinScore)
	}
	if s.MaxScore != 1 {
		t.Errorf("expected max clamped to 1, got %v", s.MaxScore)
	}
}

func TestDecodeIgnoresUnknownAndMalformed(t *testing.T) {
	v := url.Values{}
	v.Set("min_score", "banana")
	v.Set("mystery", "1")
	s := Decode(v)
	if !s.IsDefault() {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.json")
	want := State{MinScore: 0.4, MaxScore: 1, Algorithm: "tfidf", SortBy: "score", SortOrder: "desc", Search: "api"}

	if err := SaveSnapshot(path, want); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	got, ok := LoadSnapshot(path)
	if !ok {
		t.Fatal("expected snapshot to load")
	}
	if got != want {
		t.Errorf("snapshot mismatch: got %+v want %+v", got, want)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	s, ok := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	if ok {
		t.Error("expected ok=false for missing snapshot")
	}
	if !s.IsDefault() {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "filters.json")
	snap := State{MinScore: 0.2, MaxScore: 1, Algorithm: "all", SortBy: "score", SortOrder: "desc"}
	if err := SaveSnapshot(snapPath, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	// Explicit view wins when it carries a recognized key.
	got := Resolve("min_score=0.7", snapPath)
	if got.MinScore != 0.7 {
		t.Errorf("expected view string to win, got %+v", got)
	}

	// A view string with no recognized keys falls back to the snapshot.
	got = Resolve("unrelated=1", snapPath)
	if got != snap {
		t.Errorf("expected snapshot fallback, got %+v", got)
	}

	// No view, no snapshot: defaults.
	got = Resolve("", filepath.Join(dir, "absent.json"))
	if !got.IsDefault() {
		t.Errorf("expected defaults, got %+v", got)
	}
}
