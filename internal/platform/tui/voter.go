package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crowdtris/internal/storage"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

// feedRefreshInterval is how often the vote screen reloads the latest post.
const feedRefreshInterval = time.Second

// VoterModel is the screen shown to SSH users: the latest published board
// and the running tally. Arrow keys cast one vote per board.
type VoterModel struct {
	feed *storage.Store
	user string
	keys KeyMap
	help help.Model

	post      *storage.Post
	counts    vote.Counts
	votedPost int64
	voted     vote.Intent
	status    string
	err       error

	width    int
	height   int
	quitting bool
}

// NewVoterModel creates a vote screen for one user.
func NewVoterModel(feed *storage.Store, user string, width, height int) VoterModel {
	h := help.New()
	h.ShowAll = false

	m := VoterModel{
		feed:   feed,
		user:   user,
		keys:   DefaultKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// Init starts the refresh loop.
func (m VoterModel) Init() tea.Cmd {
	return refreshCmd(feedRefreshInterval)
}

// Update handles messages for the vote screen.
func (m VoterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if intent := m.keys.VoteFor(msg); intent != vote.None {
			m.castVote(intent)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		m.reload()
		return m, refreshCmd(feedRefreshInterval)
	}

	return m, nil
}

// reload fetches the latest post and its tally.
func (m *VoterModel) reload() {
	if m.feed == nil {
		return
	}
	ctx := context.Background()

	post, err := m.feed.LatestPost(ctx)
	if errors.Is(err, storage.ErrNoPosts) {
		m.post = nil
		m.err = nil
		return
	}
	if err != nil {
		m.err = err
		return
	}

	replies, err := m.feed.Replies(ctx, post.ID)
	if err != nil {
		m.err = err
		return
	}
	texts := make([]string, len(replies))
	for i, r := range replies {
		texts[i] = r.Text
	}

	if m.post == nil || m.post.ID != post.ID {
		m.status = ""
	}
	m.post = post
	m.counts = vote.Tally(texts)
	m.err = nil
}

// castVote leaves the user's reply under the latest post, once per post.
func (m *VoterModel) castVote(intent vote.Intent) {
	if m.feed == nil || m.post == nil {
		m.status = "nothing to vote on yet"
		return
	}
	if m.votedPost == m.post.ID {
		m.status = fmt.Sprintf("already voted %s on this board", m.voted)
		return
	}

	if _, err := m.feed.AddReply(context.Background(), m.user, ReplyText(intent)); err != nil {
		m.status = "vote failed: " + err.Error()
		return
	}
	m.votedPost = m.post.ID
	m.voted = intent
	m.status = "voted " + intent.String()
	m.reload()
}

// View renders the vote screen.
func (m VoterModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("CROWDTRIS", m.width)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.post == nil:
		b.WriteString(dimStyle.Italic(true).Render("Waiting for the first board..."))
	default:
		b.WriteString(boardStyle.Render(m.post.Body))
		b.WriteString("\n")
		b.WriteString(renderCounts(m.counts))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("board #%d, posted %s", m.post.ID, m.post.CreatedAt.Local().Format("15:04:05"))))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.ShortHelpView([]key.Binding{
		m.keys.Left, m.keys.Right, m.keys.Tilt, m.keys.Drop, m.keys.Quit,
	})))

	return b.String()
}

// Voted returns the intent the user voted for on the current board, or
// vote.None.
func (m VoterModel) Voted() vote.Intent {
	if m.post == nil || m.votedPost != m.post.ID {
		return vote.None
	}
	return m.voted
}

// Status returns the last status message.
func (m VoterModel) Status() string {
	return m.status
}
