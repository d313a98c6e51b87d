// Package storage provides the SQLite-backed feed the game publishes to and
// reads votes from: every rendered board is a post, and votes are replies to
// the latest post.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoPosts is returned when the feed has no published posts yet.
var ErrNoPosts = errors.New("storage: no posts published")

// Store manages the SQLite database connection for the feed.
type Store struct {
	db *sql.DB
}

// Post is one published board.
type Post struct {
	ID        int64
	Body      string
	Replies   int // number of replies, filled by RecentPosts
	CreatedAt time.Time
}

// Reply is one vote left under a post.
type Reply struct {
	ID        int64
	PostID    int64
	Author    string
	Text      string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH and HTTP voters write concurrently with the tick driver.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			body TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS replies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_id INTEGER NOT NULL REFERENCES posts(id),
			author TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replies_post_id ON replies(post_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePost publishes a new post and returns its ID.
func (s *Store) SavePost(ctx context.Context, body string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "INSERT INTO posts (body) VALUES (?)", body)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Publish publishes a rendered board as a new post.
func (s *Store) Publish(ctx context.Context, text string) error {
	_, err := s.SavePost(ctx, text)
	return err
}

// LatestPost returns the most recent post, or ErrNoPosts.
func (s *Store) LatestPost(ctx context.Context) (*Post, error) {
	var p Post
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT id, body, created_at FROM posts ORDER BY id DESC LIMIT 1`,
	).Scan(&p.ID, &p.Body, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPosts
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query latest post: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// AddReply leaves a reply under the latest post and returns the reply ID.
// Returns ErrNoPosts when there is nothing to reply to.
func (s *Store) AddReply(ctx context.Context, author, text string) (int64, error) {
	post, err := s.LatestPost(ctx)
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO replies (post_id, author, text) VALUES (?, ?, ?)",
		post.ID, author, text,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save reply: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Replies returns every reply to the given post, oldest first.
func (s *Store) Replies(ctx context.Context, postID int64) ([]Reply, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, post_id, author, text, created_at
		 FROM replies
		 WHERE post_id = ?
		 ORDER BY id ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replies: %w", err)
	}
	defer rows.Close()

	var replies []Reply
	for rows.Next() {
		var r Reply
		var createdAt any
		if err := rows.Scan(&r.ID, &r.PostID, &r.Author, &r.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		replies = append(replies, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return replies, nil
}

// FetchMessages returns the text of every reply to the latest post. An empty
// feed yields no messages rather than an error.
func (s *Store) FetchMessages(ctx context.Context) ([]string, error) {
	post, err := s.LatestPost(ctx)
	if errors.Is(err, ErrNoPosts) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	replies, err := s.Replies(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	messages := make([]string, len(replies))
	for i, r := range replies {
		messages[i] = r.Text
	}
	return messages, nil
}

// RecentPosts returns the latest posts, newest first, with reply counts.
func (s *Store) RecentPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.body, p.created_at, COUNT(r.id)
		 FROM posts p
		 LEFT JOIN replies r ON r.post_id = p.id
		 GROUP BY p.id
		 ORDER BY p.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Body, &createdAt, &p.Replies); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return posts, nil
}

// Prune deletes all but the newest keep posts and their replies.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin prune: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	cutoff := `SELECT id FROM posts ORDER BY id DESC LIMIT -1 OFFSET ?`
	if _, err := tx.ExecContext(ctx, "DELETE FROM replies WHERE post_id IN ("+cutoff+")", keep); err != nil {
		return 0, fmt.Errorf("storage: cannot prune replies: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id IN ("+cutoff+")", keep)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune posts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count pruned posts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit prune: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", strings.TrimSpace(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
