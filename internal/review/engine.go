// Package review implements the pending-suggestion triage state machine:
// the loaded list, the multi-select set, the focused row, and the
// in-flight guards that keep single and batch review from racing.
//
// The engine holds no network code. The TUI drives it from the Bubble Tea
// update loop, so all methods are called from a single goroutine.
package review

import (
	"sort"

	"github.com/covtrace/tracetriage/internal/model"
)

// NoFocus is the focused index when no row has focus.
const NoFocus = -1

// Engine holds the review-dashboard state. Invariants, re-established
// after every mutation:
//   - selection is a subset of the loaded suggestion ids
//   - focused is NoFocus or a valid index into the list
type Engine struct {
	suggestions []model.Suggestion
	selection   map[string]struct{}
	focused     int
	previewID   string

	inflight   map[string]struct{}
	batchBusy  bool
	generation uint64
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		selection: make(map[string]struct{}),
		focused:   NoFocus,
		inflight:  make(map[string]struct{}),
	}
}

// Suggestions returns the loaded list in display order.
func (e *Engine) Suggestions() []model.Suggestion {
	return e.suggestions
}

// Len returns the number of loaded suggestions.
func (e *Engine) Len() int {
	return len(e.suggestions)
}

// Focused returns the focused index, NoFocus when nothing has focus.
func (e *Engine) Focused() int {
	return e.focused
}

// FocusedSuggestion returns the suggestion under focus. ok is false when
// focus is out of range, which makes every single-key action a no-op.
func (e *Engine) FocusedSuggestion() (model.Suggestion, bool) {
	if e.focused < 0 || e.focused >= len(e.suggestions) {
		return model.Suggestion{}, false
	}
	return e.suggestions[e.focused], true
}

// BeginLoad starts a new load and returns its generation tag. A response
// carrying an older tag is stale and must be discarded by Replace.
func (e *Engine) BeginLoad() uint64 {
	e.generation++
	return e.generation
}

// Replace installs a freshly loaded list. It returns false and changes
// nothing when gen is not the latest load generation; a slow response
// from an abandoned filter state never overwrites fresher data.
func (e *Engine) Replace(gen uint64, list []model.Suggestion) bool {
	if gen != e.generation {
		return false
	}
	e.suggestions = list
	e.reconcile()
	return true
}

// MoveFocus moves focus by delta, clamped to [0, len-1]. From NoFocus the
// first movement lands on index 0. No-op on an empty list.
func (e *Engine) MoveFocus(delta int) {
	if len(e.suggestions) == 0 {
		return
	}
	next := e.focused + delta
	if e.focused == NoFocus && delta > 0 {
		next = delta - 1
	}
	if next < 0 {
		next = 0
	}
	if next > len(e.suggestions)-1 {
		next = len(e.suggestions) - 1
	}
	e.focused = next
}

// ToggleSelect toggles selection of the given id if it is loaded.
func (e *Engine) ToggleSelect(id string) {
	if !e.loaded(id) {
		return
	}
	if _, ok := e.selection[id]; ok {
		delete(e.selection, id)
	} else {
		e.selection[id] = struct{}{}
	}
}

// ToggleSelectFocused toggles selection of the focused suggestion.
func (e *Engine) ToggleSelectFocused() {
	if s, ok := e.FocusedSuggestion(); ok {
		e.ToggleSelect(s.ID)
	}
}

// SelectAll selects exactly the currently loaded ids, never the full
// server-side match set.
func (e *Engine) SelectAll() {
	for _, s := range e.suggestions {
		e.selection[s.ID] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (e *Engine) ClearSelection() {
	e.selection = make(map[string]struct{})
}

// Selected reports whether the id is in the selection set.
func (e *Engine) Selected(id string) bool {
	_, ok := e.selection[id]
	return ok
}

// Selection returns the selected ids sorted for deterministic requests.
func (e *Engine) Selection() []string {
	ids := make([]string, 0, len(e.selection))
	for id := range e.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectionSize returns the number of selected ids.
func (e *Engine) SelectionSize() int {
	return len(e.selection)
}

// BeginReview reserves the id for a single review. It returns false when
// a decision for this id is already in flight, or a batch is running;
// only one decision per suggestion may be outstanding at a time.
func (e *Engine) BeginReview(id string) bool {
	if e.batchBusy {
		return false
	}
	if _, busy := e.inflight[id]; busy {
		return false
	}
	if !e.loaded(id) {
		return false
	}
	e.inflight[id] = struct{}{}
	return true
}

// FinishReview releases the per-id reservation.
func (e *Engine) FinishReview(id string) {
	delete(e.inflight, id)
}

// RemoveLocal optimistically removes the suggestion from the list and
// the selection, then re-clamps focus. Called alongside the review call,
// before the server answers.
func (e *Engine) RemoveLocal(id string) {
	for i, s := range e.suggestions {
		if s.ID == id {
			e.suggestions = append(e.suggestions[:i], e.suggestions[i+1:]...)
			break
		}
	}
	delete(e.selection, id)
	if e.previewID == id {
		e.previewID = ""
	}
	e.clampFocus()
}

// BeginBatch reserves the engine for a batch review of the current
// selection. It returns false when a batch is already running or any
// selected id has a single review in flight.
func (e *Engine) BeginBatch() bool {
	if e.batchBusy || len(e.selection) == 0 {
		return false
	}
	for id := range e.selection {
		if _, busy := e.inflight[id]; busy {
			return false
		}
	}
	e.batchBusy = true
	return true
}

// FinishBatch releases the batch reservation.
func (e *Engine) FinishBatch() {
	e.batchBusy = false
}

// BatchBusy reports whether a batch review is in flight.
func (e *Engine) BatchBusy() bool {
	return e.batchBusy
}

// OpenPreview opens the preview for the focused suggestion.
func (e *Engine) OpenPreview() {
	if s, ok := e.FocusedSuggestion(); ok {
		e.previewID = s.ID
	}
}

// ClosePreview closes the preview.
func (e *Engine) ClosePreview() {
	e.previewID = ""
}

// Preview returns the previewed suggestion, ok=false when no preview is
// open or the suggestion has left the list.
func (e *Engine) Preview() (model.Suggestion, bool) {
	if e.previewID == "" {
		return model.Suggestion{}, false
	}
	for _, s := range e.suggestions {
		if s.ID == e.previewID {
			return s, true
		}
	}
	return model.Suggestion{}, false
}

// PreviewOpen reports whether a preview modal is open.
func (e *Engine) PreviewOpen() bool {
	return e.previewID != ""
}

func (e *Engine) loaded(id string) bool {
	for _, s := range e.suggestions {
		if s.ID == id {
			return true
		}
	}
	return false
}

// reconcile intersects the selection with the loaded ids, drops a stale
// preview, and re-clamps focus after a wholesale list replacement.
func (e *Engine) reconcile() {
	ids := make(map[string]struct{}, len(e.suggestions))
	for _, s := range e.suggestions {
		ids[s.ID] = struct{}{}
	}
	for id := range e.selection {
		if _, ok := ids[id]; !ok {
			delete(e.selection, id)
		}
	}
	if e.previewID != "" {
		if _, ok := ids[e.previewID]; !ok {
			e.previewID = ""
		}
	}
	e.clampFocus()
}

func (e *Engine) clampFocus() {
	if len(e.suggestions) == 0 {
		e.focused = NoFocus
		return
	}
	if e.focused < 0 {
		// Focus stays unset until the user moves it.
		e.focused = NoFocus
		return
	}
	if e.focused > len(e.suggestions)-1 {
		e.focused = len(e.suggestions) - 1
	}
}
