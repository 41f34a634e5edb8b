package cache

import (
	"path/filepath"
	"testing"

	"github.com/covtrace/tracetriage/internal/model"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEmptyCache(t *testing.T) {
	db := openTest(t)
	reqs, err := db.Requirements()
	if err != nil {
		t.Fatalf("Requirements: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("expected empty map, got %d entries", len(reqs))
	}
}

func TestReplaceAndLoadRequirements(t *testing.T) {
	db := openTest(t)

	want := map[string]model.Requirement{
		"r1": {ID: "r1", Title: "Login must lock after 5 failures", Module: "auth", Version: 2},
		"r2": {ID: "r2", Title: "Export respects filters", Tags: []string{"export", "csv"}},
	}
	if err := db.ReplaceRequirements(want); err != nil {
		t.Fatalf("ReplaceRequirements: %v", err)
	}

	got, err := db.Requirements()
	if err != nil {
		t.Fatalf("Requirements: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got["r1"].Title != want["r1"].Title || got["r1"].Version != 2 {
		t.Errorf("r1 mismatch: %+v", got["r1"])
	}
	if len(got["r2"].Tags) != 2 {
		t.Errorf("r2 tags lost: %+v", got["r2"])
	}
}

func TestReplaceIsWholesale(t *testing.T) {
	db := openTest(t)

	if err := db.ReplaceTestCases(map[string]model.TestCase{
		"t1": {ID: "t1", Title: "old"},
	}); err != nil {
		t.Fatalf("ReplaceTestCases: %v", err)
	}
	if err := db.ReplaceTestCases(map[string]model.TestCase{
		"t2": {ID: "t2", Title: "new"},
	}); err != nil {
		t.Fatalf("ReplaceTestCases: %v", err)
	}

	got, err := db.TestCases()
	if err != nil {
		t.Fatalf("TestCases: %v", err)
	}
	if _, ok := got["t1"]; ok {
		t.Error("expected t1 gone after wholesale replace")
	}
	if got["t2"].Title != "new" {
		t.Errorf("expected t2, got %+v", got)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.ReplaceRequirements(map[string]model.Requirement{"r1": {ID: "r1"}}); err != nil {
		t.Fatalf("ReplaceRequirements: %v", err)
	}
	db.Close()

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()
	got, err := db2.Requirements()
	if err != nil {
		t.Fatalf("Requirements: %v", err)
	}
	if _, ok := got["r1"]; !ok {
		t.Error("expected r1 to survive reopen")
	}
}
