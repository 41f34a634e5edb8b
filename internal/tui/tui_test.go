package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/covtrace/tracetriage/internal/api"
	"github.com/covtrace/tracetriage/internal/model"
	"github.com/covtrace/tracetriage/internal/review"
)

func testSuggestions() []model.Suggestion {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return []model.Suggestion{
		{ID: "s1", RequirementID: "r1", TestCaseID: "t1", SimilarityScore: 0.91, Method: "semantic", Status: model.SuggestionPending, CreatedAt: now},
		{ID: "s2", RequirementID: "r2", TestCaseID: "t2", SimilarityScore: 0.55, Method: "keyword", Status: model.SuggestionPending, CreatedAt: now},
		{ID: "s3", RequirementID: "r1", TestCaseID: "t3", SimilarityScore: 0.21, Method: "hybrid", Status: model.SuggestionPending, CreatedAt: now},
	}
}

func testLookups() (map[string]model.Requirement, map[string]model.TestCase) {
	reqs := map[string]model.Requirement{
		"r1": {ID: "r1", Title: "Login requires MFA", Module: "auth"},
		"r2": {ID: "r2", Title: "Sessions expire after 30m", Module: "auth"},
	}
	tcs := map[string]model.TestCase{
		"t1": {ID: "t1", Title: "MFA challenge on login", Module: "auth"},
		"t2": {ID: "t2", Title: "Session timeout", Module: "auth"},
		"t3": {ID: "t3", Title: "Remember-me flow", Module: "auth"},
	}
	return reqs, tcs
}

func setupModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{SnapshotPath: filepath.Join(t.TempDir(), "filters.json")})

	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)

	gen := m.engine.BeginLoad()
	reqs, tcs := testLookups()
	newM, _ = m.Update(suggestionsMsg{gen: gen, items: testSuggestions(), total: 3, reqs: reqs, tcs: tcs})
	return newM.(Model)
}

func pressRune(t *testing.T, m Model, r rune) Model {
	t.Helper()
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return newM.(Model)
}

func pressKey(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	newM, _ := m.Update(tea.KeyMsg{Type: k})
	return newM.(Model)
}

func TestInitialState(t *testing.T) {
	m := setupModel(t)

	if m.engine.Len() != 3 {
		t.Fatalf("expected 3 suggestions, got %d", m.engine.Len())
	}
	if m.loading {
		t.Error("expected loading cleared after replace")
	}
	if m.engine.Focused() != review.NoFocus {
		t.Errorf("expected no initial focus, got %d", m.engine.Focused())
	}
}

func TestFocusMovement(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 'j')
	if m.engine.Focused() != 0 {
		t.Errorf("expected focus 0 after first down, got %d", m.engine.Focused())
	}

	m = pressRune(t, m, 'j')
	m = pressRune(t, m, 'j')
	m = pressRune(t, m, 'j')
	if m.engine.Focused() != 2 {
		t.Errorf("expected focus clamped to 2, got %d", m.engine.Focused())
	}

	m = pressRune(t, m, 'k')
	if m.engine.Focused() != 1 {
		t.Errorf("expected focus 1 after up, got %d", m.engine.Focused())
	}
}

func TestSelection(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 'j')
	m = pressKey(t, m, tea.KeySpace)
	if m.engine.SelectionSize() != 1 {
		t.Fatalf("expected 1 selected, got %d", m.engine.SelectionSize())
	}

	m = pressKey(t, m, tea.KeyCtrlA)
	if m.engine.SelectionSize() != 3 {
		t.Fatalf("expected 3 selected after select-all, got %d", m.engine.SelectionSize())
	}

	// Escape with no overlay clears the selection.
	m = pressKey(t, m, tea.KeyEsc)
	if m.engine.SelectionSize() != 0 {
		t.Errorf("expected selection cleared, got %d", m.engine.SelectionSize())
	}
}

func TestAcceptRemovesOptimistically(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 'j')
	m = pressRune(t, m, 'a')

	if m.engine.Len() != 2 {
		t.Fatalf("expected optimistic removal, got %d rows", m.engine.Len())
	}
	for _, s := range m.engine.Suggestions() {
		if s.ID == "s1" {
			t.Error("s1 should be removed from the list")
		}
	}

	newM, _ := m.Update(reviewDoneMsg{id: "s1", decision: model.DecisionAccepted})
	m = newM.(Model)
	if m.toast.text != "Suggestion accepted" {
		t.Errorf("unexpected toast %q", m.toast.text)
	}
}

func TestReviewFailureReloads(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 'j')
	m = pressRune(t, m, 'r')

	newM, _ := m.Update(reviewDoneMsg{id: "s1", decision: model.DecisionRejected, err: errors.New("boom")})
	m = newM.(Model)

	if m.toast.severity != toastError {
		t.Errorf("expected error toast, got %v", m.toast.severity)
	}
	if !m.loading {
		t.Error("expected reconcile reload after failed review")
	}
}

func TestBatchRequiresSelection(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 'A')
	if m.toast.text != "Nothing selected" {
		t.Errorf("unexpected toast %q", m.toast.text)
	}
	if m.engine.BatchBusy() {
		t.Error("batch must not start with empty selection")
	}
}

func TestBatchResultToast(t *testing.T) {
	m := setupModel(t)

	m = pressKey(t, m, tea.KeyCtrlA)
	m = pressRune(t, m, 'A')
	if !m.engine.BatchBusy() {
		t.Fatal("expected batch in flight")
	}

	newM, _ := m.Update(batchDoneMsg{
		decision: model.DecisionAccepted,
		result:   model.BulkReviewResult{Accepted: 2, Failed: 1},
	})
	m = newM.(Model)

	if m.engine.BatchBusy() {
		t.Error("expected batch finished")
	}
	if m.toast.text != "2 processed, 1 failed" {
		t.Errorf("unexpected toast %q", m.toast.text)
	}
	if m.toast.severity != toastWarning {
		t.Errorf("partial failure should warn, got %v", m.toast.severity)
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	m := setupModel(t)

	stale := m.engine.BeginLoad()
	fresh := m.engine.BeginLoad()

	reqs, tcs := testLookups()
	newM, _ := m.Update(suggestionsMsg{gen: fresh, items: testSuggestions()[:1], total: 1, reqs: reqs, tcs: tcs})
	m = newM.(Model)
	if m.engine.Len() != 1 {
		t.Fatalf("expected fresh load applied, got %d", m.engine.Len())
	}

	newM, _ = m.Update(suggestionsMsg{gen: stale, items: testSuggestions(), total: 3, reqs: reqs, tcs: tcs})
	m = newM.(Model)
	if m.engine.Len() != 1 {
		t.Errorf("stale load must not overwrite, got %d rows", m.engine.Len())
	}
}

func TestSearchDebounceSingleCommit(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, '/')
	if !m.searchInput.Focused() {
		t.Fatal("expected search input focused")
	}

	m = pressRune(t, m, 'a')
	staleSeq := m.searchSeq
	m = pressRune(t, m, 'b')
	m = pressRune(t, m, 'c')

	// A commit tagged with a superseded sequence is dropped.
	newM, _ := m.Update(searchCommitMsg{seq: staleSeq})
	m = newM.(Model)
	if m.filters.Search != "" {
		t.Fatalf("stale debounce committed %q", m.filters.Search)
	}

	newM, _ = m.Update(searchCommitMsg{seq: m.searchSeq})
	m = newM.(Model)
	if m.filters.Search != "abc" {
		t.Fatalf("expected single commit of final value, got %q", m.filters.Search)
	}
	if !m.loading {
		t.Error("expected refetch after commit")
	}
}

func TestSearchEscapeReverts(t *testing.T) {
	m := setupModel(t)
	m.filters.Search = "mfa"
	m.searchInput.SetValue("mfa")

	m = pressRune(t, m, '/')
	m = pressRune(t, m, 'x')
	m = pressKey(t, m, tea.KeyEsc)

	if m.searchInput.Focused() {
		t.Error("expected input blurred")
	}
	if m.searchInput.Value() != "mfa" {
		t.Errorf("expected value reverted to committed search, got %q", m.searchInput.Value())
	}
}

func TestSearchEnterCommitsImmediately(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, '/')
	m = pressRune(t, m, 'q')
	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newM.(Model)
	if cmd == nil {
		t.Fatal("expected immediate commit command")
	}

	newM, _ = m.Update(cmd())
	m = newM.(Model)
	if m.filters.Search != "q" {
		t.Errorf("expected committed search %q, got %q", "q", m.filters.Search)
	}
}

func TestClearFilters(t *testing.T) {
	m := setupModel(t)
	m.filters.MinScore = 0.5
	m.filters.Search = "auth"
	m.searchInput.SetValue("auth")

	m = pressRune(t, m, 'c')

	if !m.filters.IsDefault() {
		t.Errorf("expected default filters, got %+v", m.filters)
	}
	if m.searchInput.Value() != "" {
		t.Error("expected search input cleared")
	}
	if !m.loading {
		t.Error("expected refetch after clearing filters")
	}
}

func TestSortToggles(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 's')
	if m.filters.SortBy != "created_at" {
		t.Errorf("expected sort cycled to created_at, got %q", m.filters.SortBy)
	}
	m = pressRune(t, m, 's')
	if m.filters.SortBy != "score" {
		t.Errorf("expected sort cycled back to score, got %q", m.filters.SortBy)
	}

	m = pressRune(t, m, 'o')
	if m.filters.SortOrder != "asc" {
		t.Errorf("expected ascending, got %q", m.filters.SortOrder)
	}
}

func TestHelpOverlaySuspendsList(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, '?')
	if !m.showHelp {
		t.Fatal("expected help open")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help content in view")
	}

	m = pressRune(t, m, 'j')
	if m.engine.Focused() != review.NoFocus {
		t.Error("list keys must be inert under the help overlay")
	}

	m = pressRune(t, m, '?')
	if m.showHelp {
		t.Error("expected help closed")
	}
}

func TestPreviewOverlay(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 'j')
	m = pressKey(t, m, tea.KeyEnter)
	if !m.engine.PreviewOpen() {
		t.Fatal("expected preview open")
	}

	view := m.View()
	if !strings.Contains(view, "Login requires MFA") {
		t.Error("expected joined requirement title in preview")
	}

	m = pressRune(t, m, 'v')
	if !m.showRaw {
		t.Fatal("expected raw mode")
	}
	if !strings.Contains(m.View(), "similarity_score") {
		t.Error("expected raw JSON fields in view")
	}

	m = pressKey(t, m, tea.KeyEsc)
	if m.engine.PreviewOpen() {
		t.Error("expected preview closed")
	}
	if m.showRaw {
		t.Error("raw mode must reset when the preview closes")
	}
}

func TestNotificationPanel(t *testing.T) {
	m := setupModel(t)

	now := time.Now()
	list := []model.Notification{
		{ID: "n1", Title: "Suggestion accepted", Read: false, CreatedAt: now},
		{ID: "n2", Title: "New suggestions available", Read: false, CreatedAt: now},
	}
	newM, _ := m.Update(notifListMsg{list: &api.NotificationList{Items: list, UnreadCount: 2}})
	m = newM.(Model)
	m.showNotif = true

	if !strings.Contains(m.View(), "Suggestion accepted") {
		t.Error("expected notification titles in view")
	}

	// Enter marks the focused notification read, optimistically.
	m = pressKey(t, m, tea.KeyEnter)
	if m.center.Unread() != 1 {
		t.Errorf("expected unread 1, got %d", m.center.Unread())
	}

	m = pressRune(t, m, 'm')
	if m.center.Unread() != 0 {
		t.Errorf("expected unread 0 after mark-all, got %d", m.center.Unread())
	}

	m = pressKey(t, m, tea.KeyEsc)
	if m.showNotif {
		t.Error("expected panel closed")
	}
}

func TestUnreadBadge(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(unreadMsg{count: 4})
	m = newM.(Model)
	if m.center.Unread() != 4 {
		t.Fatalf("expected unread 4, got %d", m.center.Unread())
	}

	// A failed poll keeps the previous badge.
	newM, _ = m.Update(unreadMsg{count: 0, err: errors.New("timeout")})
	m = newM.(Model)
	if m.center.Unread() != 4 {
		t.Errorf("failed poll must not reset the badge, got %d", m.center.Unread())
	}
}

func TestForcedLogoutQuits(t *testing.T) {
	m := setupModel(t)

	newM, cmd := m.Update(forcedLogoutMsg{})
	m = newM.(Model)

	if !m.SessionLost() {
		t.Error("expected session marked lost")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg == nil {
		t.Error("expected quit message")
	}
}

func TestToastClearSequencing(t *testing.T) {
	m := setupModel(t)

	m = pressRune(t, m, 'A') // "Nothing selected"
	first := m.toastSeq
	m = pressRune(t, m, 'A')

	newM, _ := m.Update(toastClearMsg{seq: first})
	m = newM.(Model)
	if m.toast.text == "" {
		t.Error("stale clear must not dismiss a newer toast")
	}

	newM, _ = m.Update(toastClearMsg{seq: m.toastSeq})
	m = newM.(Model)
	if m.toast.text != "" {
		t.Errorf("expected toast cleared, got %q", m.toast.text)
	}
}

func TestViewRendersTable(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	if !strings.Contains(view, "Login requires MFA") {
		t.Error("expected requirement title in table")
	}
	if !strings.Contains(view, "MFA challenge on login") {
		t.Error("expected test case title in table")
	}
	if !strings.Contains(view, "0.91") {
		t.Error("expected score column")
	}
	if !strings.Contains(view, "3 pending") {
		t.Error("expected pending count in status bar")
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := New(Options{})
	if m.View() != "Loading..." {
		t.Errorf("expected loading placeholder, got %q", m.View())
	}
}
