package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crowdtris/internal/vote"
)

func TestVoterModelWaitsForFirstBoard(t *testing.T) {
	feed := openTestFeed(t)
	m := NewVoterModel(feed, "alice", 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(VoterModel)

	if m.Voted() != vote.None {
		t.Errorf("Voted() = %v with no board", m.Voted())
	}
	if !strings.Contains(m.View(), "Waiting for the first board") {
		t.Error("view does not say it is waiting")
	}
}

func TestVoterModelOneVotePerBoard(t *testing.T) {
	feed := openTestFeed(t)
	ctx := context.Background()
	if err := feed.Publish(ctx, "⬛🟦"); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	m := NewVoterModel(feed, "alice", 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(VoterModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(VoterModel)

	if m.Voted() != vote.Right {
		t.Errorf("Voted() = %v, expected right", m.Voted())
	}
	post, _ := feed.LatestPost(ctx)
	replies, err := feed.Replies(ctx, post.ID)
	if err != nil {
		t.Fatalf("Replies() failed: %v", err)
	}
	if len(replies) != 1 || replies[0].Author != "alice" {
		t.Fatalf("unexpected replies: %+v", replies)
	}

	// A new board opens a new vote.
	if err := feed.Publish(ctx, "⬛⬛"); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	next, _ = m.Update(refreshMsg{})
	m = next.(VoterModel)
	if m.Voted() != vote.None {
		t.Errorf("Voted() = %v on a fresh board", m.Voted())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(VoterModel)

	messages, _ := feed.FetchMessages(ctx)
	if vote.Interpret(messages) != vote.SoftDrop {
		t.Errorf("replies %v do not vote down", messages)
	}
	if !strings.Contains(m.View(), "⬛⬛") {
		t.Error("view does not show the latest board")
	}
}
