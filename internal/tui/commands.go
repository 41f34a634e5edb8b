package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/covtrace/tracetriage/internal/api"
	"github.com/covtrace/tracetriage/internal/filter"
	"github.com/covtrace/tracetriage/internal/model"
	"github.com/covtrace/tracetriage/internal/session"
)

// Messages delivered back into the update loop by commands.

type suggestionsMsg struct {
	gen   uint64
	items []model.Suggestion
	total int
	reqs  map[string]model.Requirement
	tcs   map[string]model.TestCase
	err   error
}

type reviewDoneMsg struct {
	id       string
	decision model.ReviewDecision
	err      error
}

type batchDoneMsg struct {
	decision model.ReviewDecision
	result   model.BulkReviewResult
	err      error
}

type generateDoneMsg struct {
	created int
	err     error
}

type unreadMsg struct {
	count int
	err   error
}

type notifListMsg struct {
	list *api.NotificationList
	err  error
}

type markReadDoneMsg struct {
	id  string
	err error
}

type markAllReadDoneMsg struct {
	err error
}

type searchCommitMsg struct {
	seq int
}

type toastClearMsg struct {
	seq int
}

type pollMsg struct{}

type forcedLogoutMsg struct{}

// loadSuggestions fetches one page of pending suggestions plus both
// lookup maps. The maps are refetched on every load; the pending filter
// does not shape them server-side, so the join is re-derived each time.
func (m Model) loadSuggestions(gen uint64, filters filter.State) tea.Cmd {
	client, pageSize, db := m.client, m.pageSize, m.cache
	return func() tea.Msg {
		ctx := context.Background()

		list, err := client.PendingSuggestions(ctx, filters.Encode(), 1, pageSize)
		if err != nil {
			return suggestionsMsg{gen: gen, err: err}
		}
		reqs, err := client.RequirementMap(ctx)
		if err != nil {
			return suggestionsMsg{gen: gen, err: err}
		}
		tcs, err := client.TestCaseMap(ctx)
		if err != nil {
			return suggestionsMsg{gen: gen, err: err}
		}

		// Write-behind: refresh the local cache off the update loop.
		if db != nil {
			_ = db.ReplaceRequirements(reqs)
			_ = db.ReplaceTestCases(tcs)
		}

		return suggestionsMsg{gen: gen, items: list.Items, total: list.Total, reqs: reqs, tcs: tcs}
	}
}

func (m Model) reviewOne(id string, decision model.ReviewDecision) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.ReviewSuggestion(context.Background(), id, decision, "")
		return reviewDoneMsg{id: id, decision: decision, err: err}
	}
}

func (m Model) reviewBatch(ids []string, decision model.ReviewDecision) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.BulkReview(context.Background(), ids, decision)
		return batchDoneMsg{decision: decision, result: result, err: err}
	}
}

func (m Model) generate() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		res, err := client.GenerateSuggestions(context.Background())
		return generateDoneMsg{created: res.Created, err: err}
	}
}

func (m Model) fetchUnread() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		count, err := client.UnreadCount(context.Background())
		return unreadMsg{count: count, err: err}
	}
}

func (m Model) fetchNotifications() tea.Cmd {
	client, limit := m.client, m.notifLimit
	return func() tea.Msg {
		list, err := client.Notifications(context.Background(), limit)
		return notifListMsg{list: list, err: err}
	}
}

func (m Model) markRead(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.MarkNotificationRead(context.Background(), id)
		return markReadDoneMsg{id: id, err: err}
	}
}

func (m Model) markAllRead() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.MarkAllNotificationsRead(context.Background())
		return markAllReadDoneMsg{err: err}
	}
}

// schedulePoll drives the ambient unread-count refresh.
func (m Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.pollEvery, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// scheduleSearchCommit fires the debounced search commit. A newer seq in
// the model means more keystrokes arrived and this fire is stale.
func (m Model) scheduleSearchCommit(seq int) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchCommitMsg{seq: seq}
	})
}

func (m Model) scheduleToastClear(seq int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return toastClearMsg{seq: seq}
	})
}

// watchForcedLogout blocks until the session store reports a server-side
// invalidation, then surfaces it as a message.
func watchForcedLogout(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		<-store.ForcedLogout()
		return forcedLogoutMsg{}
	}
}
