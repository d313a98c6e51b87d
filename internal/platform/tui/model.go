package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/session"
	"github.com/vovakirdan/crowdtris/internal/storage"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

// WatchModel is the Bubble Tea model for the local watch screen. It owns the
// tick driver: at most one tick runs at a time, and the grid is only read
// between ticks.
type WatchModel struct {
	sess     *session.Session
	feed     *storage.Store
	author   string
	interval time.Duration

	keys    KeyMap
	help    help.Model
	replies feedTable
	counts  vote.Counts

	board    string
	last     tetris.TickResult
	lastErr  error
	ticks    int
	inFlight bool
	paused   bool
	status   string

	width    int
	height   int
	quitting bool
}

// NewWatchModel creates the watch screen. feed may be nil, in which case
// keyboard votes are disabled.
func NewWatchModel(sess *session.Session, feed *storage.Store, author string, width, height int) WatchModel {
	h := help.New()
	h.ShowAll = false

	m := WatchModel{
		sess:     sess,
		feed:     feed,
		author:   author,
		interval: sess.Grid.TickInterval,
		keys:     DefaultKeyMap(),
		help:     h,
		board:    sess.Render(),
		paused:   sess.Grid.Paused,
		width:    width,
		height:   height,
	}
	m.replies = newFeedTable(feed, m.tableWidth(), m.tableHeight())
	m.counts = m.replies.reload()
	return m
}

func (m WatchModel) tableWidth() int {
	return m.width - m.sess.Grid.Width()*2 - 12
}

func (m WatchModel) tableHeight() int {
	return m.height - 12
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.replies.resize(m.tableWidth(), m.tableHeight())
		return m, nil

	case TickMsg:
		if m.paused || m.inFlight {
			return m, tickCmd(m.interval)
		}
		m.inFlight = true
		return m, tea.Batch(runTickCmd(m.sess), tickCmd(m.interval))

	case tickDoneMsg:
		return m.handleTickDone(msg), nil
	}

	var cmd tea.Cmd
	m.replies.table, cmd = m.replies.table.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.inFlight {
			m.sess.Grid.Paused = m.paused
		}
		return m, nil

	case key.Matches(msg, m.keys.Step):
		if m.inFlight {
			return m, nil
		}
		m.inFlight = true
		return m, runTickCmd(m.sess)

	case key.Matches(msg, m.keys.History):
		m.replies.toggle(m.tableWidth(), m.tableHeight())
		return m, nil
	}

	if intent := m.keys.VoteFor(msg); intent != vote.None {
		m.castVote(intent)
		return m, nil
	}

	var cmd tea.Cmd
	m.replies.table, cmd = m.replies.table.Update(msg)
	return m, cmd
}

// castVote leaves a reply under the latest post.
func (m *WatchModel) castVote(intent vote.Intent) {
	if m.feed == nil {
		m.status = "no feed to vote on"
		return
	}
	if _, err := m.feed.AddReply(context.Background(), m.author, ReplyText(intent)); err != nil {
		m.status = "vote failed: " + err.Error()
		return
	}
	m.status = "voted " + intent.String()
	m.counts = m.replies.reload()
}

// handleTickDone records a finished tick and refreshes the view.
func (m WatchModel) handleTickDone(msg tickDoneMsg) WatchModel {
	m.inFlight = false
	m.sess.Grid.Paused = m.paused
	m.last = msg.result
	m.lastErr = msg.err
	m.ticks++
	m.board = m.sess.Render()
	if msg.err == nil {
		m.status = ""
	}
	m.counts = m.replies.reload()
	return m
}

// View renders the current state to a string for display.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("CROWDTRIS", m.width)))
	b.WriteString("\n\n")

	board := boardStyle.Render(m.board)

	var side strings.Builder
	side.WriteString(m.replies.title())
	side.WriteString("\n")
	side.WriteString(renderCounts(m.counts))
	side.WriteString("\n\n")
	side.WriteString(m.replies.View())
	panel := panelStyle.Render(side.String())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", panel))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m WatchModel) statusLine() string {
	var parts []string
	if m.paused {
		parts = append(parts, pausedStyle.Render("PAUSED"))
	}
	parts = append(parts, dimStyle.Render(fmt.Sprintf("tick %d", m.ticks)))
	if m.ticks > 0 {
		parts = append(parts, dimStyle.Render(describeTick(m.last)))
	}
	if m.lastErr != nil {
		parts = append(parts, errorStyle.Render(m.lastErr.Error()))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, "  ")
}

// Paused reports whether ticking is paused.
func (m WatchModel) Paused() bool {
	return m.paused
}

// Ticks returns the number of ticks run since the screen opened.
func (m WatchModel) Ticks() int {
	return m.ticks
}

// RunWatch starts the watch screen and blocks until the user quits.
func RunWatch(sess *session.Session, feed *storage.Store, author string, width, height int) error {
	model := NewWatchModel(sess, feed, author, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
