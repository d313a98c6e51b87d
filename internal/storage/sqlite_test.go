package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestLatestPostEmpty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LatestPost(context.Background())
	if !errors.Is(err, ErrNoPosts) {
		t.Errorf("expected ErrNoPosts, got %v", err)
	}

	if _, err := store.AddReply(context.Background(), "me", "left"); !errors.Is(err, ErrNoPosts) {
		t.Errorf("AddReply on empty feed: expected ErrNoPosts, got %v", err)
	}

	messages, err := store.FetchMessages(context.Background())
	if err != nil {
		t.Fatalf("FetchMessages() failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected no messages, got %v", messages)
	}
}

func TestPublishAndLatest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Publish(ctx, "first"); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	if err := store.Publish(ctx, "second"); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	post, err := store.LatestPost(ctx)
	if err != nil {
		t.Fatalf("LatestPost() failed: %v", err)
	}
	if post.Body != "second" {
		t.Errorf("latest body = %q, expected %q", post.Body, "second")
	}
	if post.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestFetchMessagesOnlyLatestPost(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.Publish(ctx, "old board")
	store.AddReply(ctx, "a", "left")
	store.AddReply(ctx, "b", "left")

	store.Publish(ctx, "new board")
	store.AddReply(ctx, "c", "go right")
	store.AddReply(ctx, "d", "spin ↩️")

	messages, err := store.FetchMessages(ctx)
	if err != nil {
		t.Fatalf("FetchMessages() failed: %v", err)
	}

	expected := []string{"go right", "spin ↩️"}
	if !reflect.DeepEqual(messages, expected) {
		t.Errorf("FetchMessages() = %v, expected %v", messages, expected)
	}
}

func TestRepliesKeepAuthor(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	postID, err := store.SavePost(ctx, "board")
	if err != nil {
		t.Fatalf("SavePost() failed: %v", err)
	}
	if _, err := store.AddReply(ctx, "alice", "drop"); err != nil {
		t.Fatalf("AddReply() failed: %v", err)
	}

	replies, err := store.Replies(ctx, postID)
	if err != nil {
		t.Fatalf("Replies() failed: %v", err)
	}
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(replies))
	}
	if replies[0].Author != "alice" || replies[0].Text != "drop" || replies[0].PostID != postID {
		t.Errorf("unexpected reply: %+v", replies[0])
	}
}

func TestRecentPosts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.Publish(ctx, "board")
		for j := 0; j < i; j++ {
			store.AddReply(ctx, "", "left")
		}
	}

	posts, err := store.RecentPosts(ctx, 3)
	if err != nil {
		t.Fatalf("RecentPosts() failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}

	// Newest first: reply counts 4, 3, 2
	for i, want := range []int{4, 3, 2} {
		if posts[i].Replies != want {
			t.Errorf("post %d has %d replies, expected %d", i, posts[i].Replies, want)
		}
	}
	if posts[0].ID <= posts[1].ID {
		t.Error("posts not ordered newest first")
	}
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		store.Publish(ctx, "board")
		store.AddReply(ctx, "", "down")
	}

	n, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("pruned %d posts, expected 3", n)
	}

	posts, err := store.RecentPosts(ctx, 10)
	if err != nil {
		t.Fatalf("RecentPosts() failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("expected 2 posts left, got %d", len(posts))
	}

	messages, _ := store.FetchMessages(ctx)
	if len(messages) != 1 {
		t.Errorf("latest post should keep its reply, got %v", messages)
	}
}
