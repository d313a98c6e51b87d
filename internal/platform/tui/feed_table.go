package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crowdtris/internal/storage"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

// Feed table layout constants
const (
	maxFeedRows    = 50 // Max replies or posts to load
	minTableHeight = 5
)

// feedView selects what the feed table lists.
type feedView int

const (
	viewReplies feedView = iota // replies to the latest post
	viewPosts                   // recently published boards
)

// feedTable lists replies to the latest post, or recent posts, from the
// SQLite feed.
type feedTable struct {
	feed  *storage.Store
	view  feedView
	table table.Model
	err   error
}

func newFeedTable(feed *storage.Store, width, height int) feedTable {
	ft := feedTable{feed: feed}
	ft.table = ft.createTable(width, height)
	return ft
}

// createTable creates a new table with columns for the current view.
func (ft *feedTable) createTable(width, height int) table.Model {
	var columns []table.Column
	switch ft.view {
	case viewPosts:
		columns = []table.Column{
			{Title: "Post", Width: 6},
			{Title: "Votes", Width: 6},
			{Title: "Posted", Width: 14},
		}
	default:
		textWidth := width - 12 - 8 - 8
		if textWidth < 12 {
			textWidth = 12
		}
		if textWidth > 30 {
			textWidth = 30
		}
		columns = []table.Column{
			{Title: "Author", Width: 12},
			{Title: "Reply", Width: textWidth},
			{Title: "Time", Width: 8},
		}
	}

	if height < minTableHeight {
		height = minTableHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// toggle switches between replies and posts.
func (ft *feedTable) toggle(width, height int) {
	if ft.view == viewReplies {
		ft.view = viewPosts
	} else {
		ft.view = viewReplies
	}
	ft.table = ft.createTable(width, height)
	ft.reload()
}

// resize rebuilds the table for a new window size.
func (ft *feedTable) resize(width, height int) {
	rows := ft.table.Rows()
	ft.table = ft.createTable(width, height)
	ft.table.SetRows(rows)
}

// reload fetches rows from the feed. It returns the tally of replies to the
// latest post.
func (ft *feedTable) reload() vote.Counts {
	if ft.feed == nil {
		ft.table.SetRows(nil)
		return vote.Counts{}
	}
	ctx := context.Background()

	var counts vote.Counts
	post, err := ft.feed.LatestPost(ctx)
	if errors.Is(err, storage.ErrNoPosts) {
		ft.err = nil
		ft.table.SetRows(nil)
		return counts
	}
	if err != nil {
		ft.err = err
		return counts
	}
	replies, err := ft.feed.Replies(ctx, post.ID)
	if err != nil {
		ft.err = err
		return counts
	}
	texts := make([]string, len(replies))
	for i, r := range replies {
		texts[i] = r.Text
	}
	counts = vote.Tally(texts)

	var rows []table.Row
	switch ft.view {
	case viewPosts:
		posts, err := ft.feed.RecentPosts(ctx, maxFeedRows)
		if err != nil {
			ft.err = err
			return counts
		}
		for _, p := range posts {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", p.ID),
				fmt.Sprintf("%d", p.Replies),
				p.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	default:
		// Newest first
		for i := len(replies) - 1; i >= 0 && len(rows) < maxFeedRows; i-- {
			r := replies[i]
			author := r.Author
			if author == "" {
				author = "-"
			}
			rows = append(rows, table.Row{author, r.Text, r.CreatedAt.Local().Format("15:04:05")})
		}
	}

	ft.err = nil
	ft.table.SetRows(rows)
	ft.table.GotoTop()
	return counts
}

// title names the current view.
func (ft feedTable) title() string {
	if ft.view == viewPosts {
		return "Recent boards"
	}
	return "Votes on the latest board"
}

// View renders the table or an empty message.
func (ft feedTable) View() string {
	if ft.err != nil {
		return errorStyle.Render(ft.err.Error())
	}
	if len(ft.table.Rows()) == 0 {
		emptyStyle := dimStyle.
			Italic(true).
			Padding(1, 2)
		if ft.feed == nil {
			return emptyStyle.Render("No feed attached.")
		}
		return emptyStyle.Render("No votes yet.\nUse the arrow keys to vote!")
	}
	return ft.table.View()
}
