package review

import (
	"testing"

	"github.com/covtrace/tracetriage/internal/model"
)

func suggestions(ids ...string) []model.Suggestion {
	out := make([]model.Suggestion, len(ids))
	for i, id := range ids {
		out[i] = model.Suggestion{ID: id, Status: model.SuggestionPending}
	}
	return out
}

func loaded(t *testing.T, ids ...string) *Engine {
	t.Helper()
	e := NewEngine()
	gen := e.BeginLoad()
	if !e.Replace(gen, suggestions(ids...)) {
		t.Fatal("Replace rejected current generation")
	}
	return e
}

func TestMoveFocusFromNoFocus(t *testing.T) {
	e := loaded(t, "s1", "s2", "s3")

	if e.Focused() != NoFocus {
		t.Fatalf("expected NoFocus initially, got %d", e.Focused())
	}

	// n ArrowDown presses from NoFocus land on min(n-1, len-1).
	e.MoveFocus(1)
	if e.Focused() != 0 {
		t.Errorf("expected focus 0 after first down, got %d", e.Focused())
	}
	for i := 0; i < 10; i++ {
		e.MoveFocus(1)
	}
	if e.Focused() != 2 {
		t.Errorf("expected focus clamped to 2, got %d", e.Focused())
	}

	for i := 0; i < 10; i++ {
		e.MoveFocus(-1)
	}
	if e.Focused() != 0 {
		t.Errorf("expected focus clamped to 0, got %d", e.Focused())
	}
}

func TestMoveFocusEmptyList(t *testing.T) {
	e := NewEngine()
	e.MoveFocus(1)
	if e.Focused() != NoFocus {
		t.Errorf("expected NoFocus on empty list, got %d", e.Focused())
	}
}

func TestRemoveLocalClampsFocus(t *testing.T) {
	e := loaded(t, "s1", "s2", "s3")
	e.MoveFocus(1)
	e.MoveFocus(1)
	e.MoveFocus(1) // focus on s3

	e.RemoveLocal("s3")
	if e.Focused() != 1 {
		t.Errorf("expected focus 1 after removing last row, got %d", e.Focused())
	}

	e.RemoveLocal("s1")
	e.RemoveLocal("s2")
	if e.Focused() != NoFocus {
		t.Errorf("expected NoFocus on empty list, got %d", e.Focused())
	}
}

func TestSelectionSubsetInvariant(t *testing.T) {
	e := loaded(t, "s1", "s2", "s3")
	e.SelectAll()
	if e.SelectionSize() != 3 {
		t.Fatalf("expected 3 selected, got %d", e.SelectionSize())
	}

	// Wholesale replacement drops vanished ids silently.
	gen := e.BeginLoad()
	e.Replace(gen, suggestions("s2", "s4"))

	sel := e.Selection()
	if len(sel) != 1 || sel[0] != "s2" {
		t.Errorf("expected selection {s2}, got %v", sel)
	}
}

func TestToggleSelect(t *testing.T) {
	e := loaded(t, "s1", "s2")

	e.ToggleSelect("s1")
	if !e.Selected("s1") {
		t.Error("expected s1 selected")
	}
	e.ToggleSelect("s1")
	if e.Selected("s1") {
		t.Error("expected s1 deselected")
	}

	// Ids not in the loaded list cannot enter the selection.
	e.ToggleSelect("ghost")
	if e.SelectionSize() != 0 {
		t.Errorf("expected empty selection, got %v", e.Selection())
	}
}

func TestOptimisticRemoveDropsSelection(t *testing.T) {
	e := loaded(t, "s1", "s2")
	e.ToggleSelect("s1")

	if !e.BeginReview("s1") {
		t.Fatal("expected BeginReview to succeed")
	}
	e.RemoveLocal("s1")

	if e.Selected("s1") {
		t.Error("expected s1 dropped from selection")
	}
	if e.Len() != 1 || e.Suggestions()[0].ID != "s2" {
		t.Errorf("expected list [s2], got %v", e.Suggestions())
	}
}

func TestPerIDSerialization(t *testing.T) {
	e := loaded(t, "s1", "s2")

	if !e.BeginReview("s1") {
		t.Fatal("first BeginReview should succeed")
	}
	if e.BeginReview("s1") {
		t.Error("second BeginReview for same id must be rejected")
	}
	if !e.BeginReview("s2") {
		t.Error("BeginReview for a different id should succeed")
	}

	e.FinishReview("s1")
	if !e.BeginReview("s1") {
		t.Error("BeginReview should succeed after FinishReview")
	}
}

func TestBatchExcludesOverlappingSingles(t *testing.T) {
	e := loaded(t, "s1", "s2", "s3")
	e.SelectAll()

	if !e.BeginReview("s2") {
		t.Fatal("BeginReview should succeed")
	}
	if e.BeginBatch() {
		t.Error("batch must not start while a selected id is in flight")
	}

	e.FinishReview("s2")
	if !e.BeginBatch() {
		t.Error("batch should start once singles drain")
	}
	if e.BeginReview("s1") {
		t.Error("single review must be rejected while a batch runs")
	}
	if e.BeginBatch() {
		t.Error("second concurrent batch must be rejected")
	}

	e.FinishBatch()
	if !e.BeginReview("s1") {
		t.Error("single review should succeed after batch finishes")
	}
}

func TestBatchRequiresSelection(t *testing.T) {
	e := loaded(t, "s1")
	if e.BeginBatch() {
		t.Error("batch with empty selection must be rejected")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	e := NewEngine()

	gen1 := e.BeginLoad()
	gen2 := e.BeginLoad()

	// The late response from the abandoned load arrives after the
	// fresh one and must not overwrite it.
	if !e.Replace(gen2, suggestions("fresh")) {
		t.Fatal("current generation rejected")
	}
	if e.Replace(gen1, suggestions("stale")) {
		t.Error("stale generation accepted")
	}
	if e.Len() != 1 || e.Suggestions()[0].ID != "fresh" {
		t.Errorf("expected [fresh], got %v", e.Suggestions())
	}
}

func TestPreviewFollowsList(t *testing.T) {
	e := loaded(t, "s1", "s2")
	e.MoveFocus(1)
	e.OpenPreview()

	if s, ok := e.Preview(); !ok || s.ID != "s1" {
		t.Fatalf("expected preview of s1, got %v %v", s, ok)
	}

	// Reviewing the previewed suggestion closes the preview.
	e.RemoveLocal("s1")
	if e.PreviewOpen() {
		t.Error("expected preview closed after removal")
	}
}

func TestFocusedSuggestionOutOfRange(t *testing.T) {
	e := NewEngine()
	if _, ok := e.FocusedSuggestion(); ok {
		t.Error("expected no focused suggestion on empty engine")
	}
}
