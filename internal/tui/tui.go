// Package tui implements the Bubble Tea suggestion-review dashboard.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/covtrace/tracetriage/internal/api"
	"github.com/covtrace/tracetriage/internal/cache"
	"github.com/covtrace/tracetriage/internal/filter"
	"github.com/covtrace/tracetriage/internal/model"
	"github.com/covtrace/tracetriage/internal/notify"
	"github.com/covtrace/tracetriage/internal/review"
	"github.com/covtrace/tracetriage/internal/session"
)

type toastSeverity int

const (
	toastSuccess toastSeverity = iota
	toastWarning
	toastError
)

type toast struct {
	text     string
	severity toastSeverity
}

// Options configures the dashboard.
type Options struct {
	Client       *api.Client
	Store        *session.Store
	Cache        *cache.DB // optional
	Logger       *zap.Logger
	Filters      filter.State
	SnapshotPath string
	PageSize     int
	PollInterval time.Duration
	Debounce     time.Duration
	NotifLimit   int
}

// Model is the top-level Bubble Tea model for the review dashboard.
type Model struct {
	client *api.Client
	store  *session.Store
	cache  *cache.DB
	log    *zap.Logger

	engine *review.Engine
	center *notify.Center

	filters      filter.State
	snapshotPath string
	pageSize     int
	pollEvery    time.Duration
	debounce     time.Duration
	notifLimit   int

	// Lookup maps joined against suggestions for display.
	reqs map[string]model.Requirement
	tcs  map[string]model.TestCase

	searchInput textinput.Model
	searchSeq   int

	width  int
	height int

	total      int
	loading    bool
	generating bool
	readOnly   bool

	showHelp   bool
	showNotif  bool
	showRaw    bool
	notifIndex int

	toast    toast
	toastSeq int

	sessionLost bool
}

// New creates the dashboard model. Cached lookup maps, when available,
// let the first frame render joined titles before the initial fetch
// returns.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 30 * time.Second
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.NotifLimit <= 0 {
		opts.NotifLimit = 20
	}

	ti := textinput.New()
	ti.Placeholder = "search requirements and test cases"
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.SetValue(opts.Filters.Search)

	m := Model{
		client:       opts.Client,
		store:        opts.Store,
		cache:        opts.Cache,
		log:          opts.Logger,
		engine:       review.NewEngine(),
		center:       notify.NewCenter(),
		filters:      opts.Filters,
		snapshotPath: opts.SnapshotPath,
		pageSize:     opts.PageSize,
		pollEvery:    opts.PollInterval,
		debounce:     opts.Debounce,
		notifLimit:   opts.NotifLimit,
		reqs:         make(map[string]model.Requirement),
		tcs:          make(map[string]model.TestCase),
		searchInput:  ti,
		loading:      true,
	}

	if opts.Store != nil {
		m.readOnly = !model.CanPerform(opts.Store.Role(), model.ActionReviewSuggestions)
	}

	if opts.Cache != nil {
		if reqs, err := opts.Cache.Requirements(); err == nil && len(reqs) > 0 {
			m.reqs = reqs
		}
		if tcs, err := opts.Cache.TestCases(); err == nil && len(tcs) > 0 {
			m.tcs = tcs
		}
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.beginLoad(),
		m.fetchUnread(),
		m.schedulePoll(),
	}
	if m.store != nil {
		cmds = append(cmds, watchForcedLogout(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = msg.Width / 3
		return m, nil

	case forcedLogoutMsg:
		m.sessionLost = true
		return m, tea.Quit

	case pollMsg:
		return m, tea.Batch(m.fetchUnread(), m.schedulePoll())

	case unreadMsg:
		// Best effort; a failed poll keeps the previous badge.
		if msg.err == nil {
			m.center.SetUnread(msg.count)
		}
		return m, nil

	case notifListMsg:
		if msg.err != nil {
			return m, m.setToast(toastError, "Loading notifications failed: "+msg.err.Error())
		}
		m.center.Replace(msg.list.Items, msg.list.UnreadCount)
		m.notifIndex = 0
		return m, nil

	case markReadDoneMsg:
		if msg.err != nil {
			m.log.Warn("mark read failed", zap.String("id", msg.id), zap.Error(msg.err))
		}
		return m, nil

	case markAllReadDoneMsg:
		if msg.err != nil {
			m.log.Warn("mark all read failed", zap.Error(msg.err))
		}
		return m, nil

	case suggestionsMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.setToast(toastError, "Loading suggestions failed: "+msg.err.Error())
		}
		if !m.engine.Replace(msg.gen, msg.items) {
			// A newer load is already in flight; drop the stale page.
			return m, nil
		}
		m.total = msg.total
		m.reqs = msg.reqs
		m.tcs = msg.tcs
		return m, nil

	case reviewDoneMsg:
		m.engine.FinishReview(msg.id)
		if msg.err != nil {
			// The optimistic removal may be wrong; reconcile with a
			// fresh load instead of patching the list back together.
			return m, tea.Batch(
				m.setToast(toastError, "Review failed: "+msg.err.Error()),
				m.beginLoad(),
			)
		}
		if msg.decision == model.DecisionAccepted {
			return m, m.setToast(toastSuccess, "Suggestion accepted")
		}
		return m, m.setToast(toastSuccess, "Suggestion rejected")

	case batchDoneMsg:
		m.engine.FinishBatch()
		if msg.err != nil {
			return m, tea.Batch(
				m.setToast(toastError, "Batch review failed: "+msg.err.Error()),
				m.beginLoad(),
			)
		}
		sev := toastSuccess
		if msg.result.Failed > 0 {
			sev = toastWarning
		}
		text := fmt.Sprintf("%d processed, %d failed", msg.result.Processed(), msg.result.Failed)
		return m, tea.Batch(m.setToast(sev, text), m.beginLoad())

	case generateDoneMsg:
		m.generating = false
		if msg.err != nil {
			return m, m.setToast(toastError, "Generation failed: "+msg.err.Error())
		}
		return m, tea.Batch(
			m.setToast(toastSuccess, fmt.Sprintf("%d suggestions generated", msg.created)),
			m.beginLoad(),
		)

	case searchCommitMsg:
		if msg.seq != m.searchSeq {
			// Superseded by later keystrokes.
			return m, nil
		}
		if m.filters.Search == m.searchInput.Value() {
			return m, nil
		}
		m.filters.Search = m.searchInput.Value()
		return m, m.commitFilters()

	case toastClearMsg:
		if msg.seq == m.toastSeq {
			m.toast = toast{}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Escape):
		// Escape always works: close the topmost surface, else clear
		// the selection.
		switch {
		case m.showHelp:
			m.showHelp = false
		case m.showNotif:
			m.showNotif = false
		case m.engine.PreviewOpen():
			m.engine.ClosePreview()
			m.showRaw = false
		default:
			m.engine.ClearSelection()
		}
		return m, nil

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	// With an overlay open the list contract is suspended.
	if m.showHelp {
		return m, nil
	}
	if m.showNotif {
		return m.handleNotifKey(msg)
	}
	if m.engine.PreviewOpen() {
		if key.Matches(msg, keys.RawJSON) {
			m.showRaw = !m.showRaw
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.engine.MoveFocus(-1)

	case key.Matches(msg, keys.Down):
		m.engine.MoveFocus(1)

	case key.Matches(msg, keys.Preview):
		m.engine.OpenPreview()

	case key.Matches(msg, keys.ToggleSelect):
		m.engine.ToggleSelectFocused()

	case key.Matches(msg, keys.SelectAll):
		m.engine.SelectAll()

	case key.Matches(msg, keys.Accept):
		return m, m.startReview(model.DecisionAccepted)

	case key.Matches(msg, keys.Reject):
		return m, m.startReview(model.DecisionRejected)

	case key.Matches(msg, keys.BatchAccept):
		return m, m.startBatch(model.DecisionAccepted)

	case key.Matches(msg, keys.BatchReject):
		return m, m.startBatch(model.DecisionRejected)

	case key.Matches(msg, keys.Search):
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.ClearFilters):
		m.filters = filter.Default()
		m.searchInput.SetValue("")
		m.searchSeq++ // cancels any pending debounce
		return m, m.commitFilters()

	case key.Matches(msg, keys.CycleSort):
		if m.filters.SortBy == "score" {
			m.filters.SortBy = "created_at"
		} else {
			m.filters.SortBy = "score"
		}
		return m, m.commitFilters()

	case key.Matches(msg, keys.ToggleOrder):
		if m.filters.SortOrder == "desc" {
			m.filters.SortOrder = "asc"
		} else {
			m.filters.SortOrder = "desc"
		}
		return m, m.commitFilters()

	case key.Matches(msg, keys.Generate):
		if m.readOnly {
			return m, m.setToast(toastWarning, "Your role cannot generate suggestions")
		}
		if m.generating {
			return m, nil
		}
		m.generating = true
		return m, m.generate()

	case key.Matches(msg, keys.Notifications):
		m.showNotif = true
		return m, m.fetchNotifications()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		// Abandon the uncommitted keystrokes.
		m.searchInput.Blur()
		m.searchInput.SetValue(m.filters.Search)
		m.searchSeq++
		return m, nil

	case tea.KeyEnter:
		// Commit immediately, superseding the pending debounce.
		m.searchInput.Blur()
		m.searchSeq++
		seq := m.searchSeq
		return m, func() tea.Msg { return searchCommitMsg{seq: seq} }
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.searchSeq++
		return m, tea.Batch(cmd, m.scheduleSearchCommit(m.searchSeq))
	}
	return m, cmd
}

func (m Model) handleNotifKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.center.Items()
	switch {
	case key.Matches(msg, keys.Up):
		if m.notifIndex > 0 {
			m.notifIndex--
		}

	case key.Matches(msg, keys.Down):
		if m.notifIndex < len(items)-1 {
			m.notifIndex++
		}

	case key.Matches(msg, keys.Preview):
		if m.notifIndex >= 0 && m.notifIndex < len(items) {
			id := items[m.notifIndex].ID
			if m.center.MarkRead(id) {
				// Optimistic; the failure path is swallowed.
				return m, m.markRead(id)
			}
		}

	case key.Matches(msg, keys.MarkAllRead):
		m.center.MarkAllRead()
		return m, m.markAllRead()

	case key.Matches(msg, keys.Notifications):
		m.showNotif = false
	}

	return m, nil
}

// startReview begins an optimistic single review of the focused
// suggestion. No-op when focus is invalid or a decision for the id is
// already in flight.
func (m *Model) startReview(decision model.ReviewDecision) tea.Cmd {
	if m.readOnly {
		return m.setToast(toastWarning, "Your role cannot review suggestions")
	}
	s, ok := m.engine.FocusedSuggestion()
	if !ok {
		return nil
	}
	if !m.engine.BeginReview(s.ID) {
		return nil
	}
	m.engine.RemoveLocal(s.ID)
	return m.reviewOne(s.ID, decision)
}

// startBatch begins a batch review of the current selection.
func (m *Model) startBatch(decision model.ReviewDecision) tea.Cmd {
	if m.readOnly {
		return m.setToast(toastWarning, "Your role cannot review suggestions")
	}
	if m.engine.SelectionSize() == 0 {
		return m.setToast(toastWarning, "Nothing selected")
	}
	ids := m.engine.Selection()
	if !m.engine.BeginBatch() {
		return nil
	}
	return m.reviewBatch(ids, decision)
}

// beginLoad starts a tagged load of the suggestion list.
func (m *Model) beginLoad() tea.Cmd {
	m.loading = true
	gen := m.engine.BeginLoad()
	return m.loadSuggestions(gen, m.filters)
}

// commitFilters persists the filter snapshot and refetches. Every filter
// change funnels through here, keeping the three representations in
// sync.
func (m *Model) commitFilters() tea.Cmd {
	if err := filter.SaveSnapshot(m.snapshotPath, m.filters); err != nil {
		m.log.Warn("saving filter snapshot failed", zap.Error(err))
	}
	return m.beginLoad()
}

func (m *Model) setToast(sev toastSeverity, text string) tea.Cmd {
	m.toastSeq++
	m.toast = toast{text: text, severity: sev}
	return m.scheduleToastClear(m.toastSeq)
}

// SessionLost reports whether the dashboard exited because the server
// invalidated the session.
func (m Model) SessionLost() bool {
	return m.sessionLost
}

// Run starts the dashboard and blocks until it exits. It returns true
// when the session was invalidated mid-run, so the caller can tell the
// user to log in again.
func Run(opts Options) (bool, error) {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.SessionLost(), nil
	}
	return false, nil
}
