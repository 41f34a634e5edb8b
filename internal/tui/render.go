package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/covtrace/tracetriage/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if s, ok := m.engine.Preview(); ok {
		return m.renderPreview(s)
	}

	filterBar := m.renderFilterBar()

	var body string
	if m.showNotif {
		body = m.renderNotifications()
	} else {
		body = m.renderTable()
	}

	statusBar := m.renderStatusBar()
	toastLine := m.renderToast()

	return lipgloss.JoinVertical(lipgloss.Left, filterBar, body, statusBar, toastLine)
}

func (m Model) renderFilterBar() string {
	var parts []string

	if m.filters.MinScore > 0 || m.filters.MaxScore < 1 {
		parts = append(parts, filterActiveStyle.Render(
			fmt.Sprintf("score %.2f–%.2f", m.filters.MinScore, m.filters.MaxScore)))
	}
	if m.filters.Algorithm != "" && m.filters.Algorithm != "all" {
		parts = append(parts, filterActiveStyle.Render("alg:"+m.filters.Algorithm))
	}
	parts = append(parts, filterBarStyle.Render(
		fmt.Sprintf("sort:%s %s", m.filters.SortBy, m.filters.SortOrder)))

	search := m.searchInput.View()
	if !m.searchInput.Focused() && m.searchInput.Value() == "" {
		search = filterBarStyle.Render("/ to search")
	}

	return " " + strings.Join(parts, "  ") + "  " + search
}

func (m Model) renderTable() string {
	height := m.tableHeight()

	if m.loading && m.engine.Len() == 0 {
		return tableStyle.Width(m.width - 2).Height(height).Render("Loading suggestions...")
	}
	if m.engine.Len() == 0 {
		return tableStyle.Width(m.width - 2).Height(height).Render("No pending suggestions. Press g to generate.")
	}

	scoreW := 6
	methodW := 10
	titleW := (m.width - scoreW - methodW - 14) / 2
	if titleW < 10 {
		titleW = 10
	}

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("   %-*s %-*s %-*s %-*s",
		scoreW, "score", methodW, "method", titleW, "requirement", titleW, "test case")))
	b.WriteByte('\n')

	for i, s := range m.engine.Suggestions() {
		marker := " "
		if m.engine.Selected(s.ID) {
			marker = rowSelectedStyle.Render("✓")
		}

		score := scoreStyleFor(s.SimilarityScore).Render(fmt.Sprintf("%.2f", s.SimilarityScore))
		line := fmt.Sprintf("%s %s  %-*s %-*s %-*s",
			marker,
			score,
			methodW, truncate(s.Method, methodW),
			titleW, truncate(m.requirementTitle(s.RequirementID), titleW),
			titleW, truncate(m.testCaseTitle(s.TestCaseID), titleW))

		if i == m.engine.Focused() {
			b.WriteString(rowFocusedStyle.Width(m.width - 6).Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		if i < m.engine.Len()-1 {
			b.WriteByte('\n')
		}
	}

	return tableStyle.Width(m.width - 2).Height(height).Render(b.String())
}

func (m Model) tableHeight() int {
	h := m.height - 5 // filter bar + status bar + toast + borders
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderPreview(s model.Suggestion) string {
	var b strings.Builder
	b.WriteString(previewHeaderStyle.Render("Suggestion " + s.ID))
	b.WriteByte('\n')

	if m.showRaw {
		b.WriteString(m.renderRawJSON(s))
	} else {
		row := func(label, value string) {
			b.WriteString(previewLabelStyle.Render(label))
			b.WriteString(value)
			b.WriteByte('\n')
		}

		row("Score", scoreStyleFor(s.SimilarityScore).Render(fmt.Sprintf("%.3f", s.SimilarityScore)))
		row("Method", s.Method)
		if s.Reason != "" {
			row("Reason", s.Reason)
		}
		row("Created", s.CreatedAt.Format("2006-01-02 15:04"))
		b.WriteByte('\n')

		req, reqOK := m.reqs[s.RequirementID]
		if reqOK {
			row("Requirement", req.Title)
			if req.Module != "" {
				row("", filterBarStyle.Render("module "+req.Module))
			}
			if req.Description != "" {
				row("", truncate(req.Description, m.width-20))
			}
		} else {
			row("Requirement", s.RequirementID)
		}
		b.WriteByte('\n')

		tc, tcOK := m.tcs[s.TestCaseID]
		if tcOK {
			row("Test case", tc.Title)
			if tc.Module != "" {
				row("", filterBarStyle.Render("module "+tc.Module))
			}
			if tc.Description != "" {
				row("", truncate(tc.Description, m.width-20))
			}
		} else {
			row("Test case", s.TestCaseID)
		}
	}

	b.WriteByte('\n')
	b.WriteString(helpBarStyle.Render("a accept  r reject  v raw  esc close"))

	return previewStyle.Width(m.width - 4).Render(b.String())
}

// rawPreview joins the suggestion with both referenced entities, the
// payload a reviewer checks when a join looks wrong.
type rawPreview struct {
	Suggestion  model.Suggestion   `json:"suggestion"`
	Requirement *model.Requirement `json:"requirement,omitempty"`
	TestCase    *model.TestCase    `json:"test_case,omitempty"`
}

func (m Model) renderRawJSON(s model.Suggestion) string {
	payload := rawPreview{Suggestion: s}
	if req, ok := m.reqs[s.RequirementID]; ok {
		payload.Requirement = &req
	}
	if tc, ok := m.tcs[s.TestCaseID]; ok {
		payload.TestCase = &tc
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "marshal error: " + err.Error()
	}
	return highlightJSON(string(data))
}

func (m Model) renderNotifications() string {
	height := m.tableHeight()
	items := m.center.Items()

	if len(items) == 0 {
		return notifStyle.Width(m.width - 2).Height(height).Render("No notifications.")
	}

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("Notifications (%d unread)", m.center.Unread())))
	b.WriteByte('\n')

	for i, n := range items {
		style := notifReadStyle
		if !n.Read {
			style = notifUnreadStyle
		}
		line := fmt.Sprintf("%s  %s", n.CreatedAt.Format("01-02 15:04"), truncate(n.Title, m.width-24))
		if i == m.notifIndex {
			b.WriteString(rowFocusedStyle.Width(m.width - 6).Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		if i < len(items)-1 {
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(helpBarStyle.Render("enter mark read  m mark all  esc close"))

	return notifStyle.Width(m.width - 2).Height(height).Render(b.String())
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" %d pending", m.engine.Len())
	if m.total > m.engine.Len() {
		left += fmt.Sprintf(" of %d", m.total)
	}
	if n := m.engine.SelectionSize(); n > 0 {
		left += fmt.Sprintf("  %d selected", n)
	}
	if m.loading {
		left += "  loading…"
	}
	if m.generating {
		left += "  generating…"
	}
	if m.engine.BatchBusy() {
		left += "  batch…"
	}

	role := "viewer"
	if m.store != nil {
		role = string(m.store.Role())
	}
	right := role
	if unread := m.center.Unread(); unread > 0 {
		right += "  " + badgeStyle.Render(fmt.Sprintf("%d", unread))
	}
	right += "  ? help "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderToast() string {
	if m.toast.text == "" {
		return ""
	}
	switch m.toast.severity {
	case toastError:
		return toastErrorStyle.Render(" " + m.toast.text)
	case toastWarning:
		return toastWarnStyle.Render(" " + m.toast.text)
	default:
		return toastInfoStyle.Render(" " + m.toast.text)
	}
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpHeaderStyle.Render("tracetriage — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"↑/↓", "Move focus"},
		{"enter", "Preview focused suggestion"},
		{"space", "Toggle selection"},
		{"a / r", "Accept / reject focused"},
		{"A / R", "Accept / reject selection"},
		{"ctrl+a", "Select all loaded"},
		{"/", "Search (debounced)"},
		{"s / o", "Sort field / order"},
		{"c", "Clear filters"},
		{"g", "Generate suggestions"},
		{"n", "Notifications"},
		{"esc", "Close overlay, else clear selection"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

func (m Model) requirementTitle(id string) string {
	if r, ok := m.reqs[id]; ok && r.Title != "" {
		return r.Title
	}
	return id
}

func (m Model) testCaseTitle(id string) string {
	if tc, ok := m.tcs[id]; ok && tc.Title != "" {
		return tc.Title
	}
	return id
}

func scoreStyleFor(score float64) lipgloss.Style {
	switch {
	case score >= 0.75:
		return scoreHighStyle
	case score >= 0.4:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}
