// Package web serves the board, the vote feed and metrics over HTTP.
// Handlers only read posts and write replies; the grid stays with the tick
// driver.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/crowdtris/internal/storage"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

// maxReplyLength caps the reply text accepted over HTTP.
const maxReplyLength = 280

// Feed is the part of the SQLite feed the handlers use.
type Feed interface {
	LatestPost(ctx context.Context) (*storage.Post, error)
	Replies(ctx context.Context, postID int64) ([]storage.Reply, error)
	AddReply(ctx context.Context, author, text string) (int64, error)
	RecentPosts(ctx context.Context, limit int) ([]storage.Post, error)
}

// handlers holds the dependencies of the HTTP routes.
type handlers struct {
	feed   Feed
	logger *log.Logger
}

// NewHandler builds the router. metricsHandler may be nil to leave /metrics
// unrouted.
func NewHandler(feed Feed, metricsHandler http.Handler, logger *log.Logger) http.Handler {
	h := &handlers{feed: feed, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/board", h.getBoard)
	r.Get("/replies", h.listReplies)
	r.Post("/replies", h.postReply)
	r.Get("/history", h.listPosts)

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}
	return r
}

// requestLogger logs each request at debug level.
func (h *handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		if h.logger != nil {
			h.logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		}
	})
}

// getBoard writes the latest published board as plain text.
func (h *handlers) getBoard(w http.ResponseWriter, r *http.Request) {
	post, err := h.feed.LatestPost(r.Context())
	if errors.Is(err, storage.ErrNoPosts) {
		respondError(w, http.StatusNotFound, "no board published yet")
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Post-Id", strconv.FormatInt(post.ID, 10))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(post.Body + "\n")) //nolint:errcheck // client went away
}

// replyView is one reply in JSON responses.
type replyView struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// tallyView is the vote count for the latest board.
type tallyView struct {
	PostID  int64       `json:"post_id"`
	Left    int         `json:"left"`
	Right   int         `json:"right"`
	Tilt    int         `json:"tilt"`
	Down    int         `json:"down"`
	Leading string      `json:"leading"`
	Replies []replyView `json:"replies"`
}

// listReplies returns the replies to the latest board with their tally.
func (h *handlers) listReplies(w http.ResponseWriter, r *http.Request) {
	post, err := h.feed.LatestPost(r.Context())
	if errors.Is(err, storage.ErrNoPosts) {
		respondError(w, http.StatusNotFound, "no board published yet")
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}

	replies, err := h.feed.Replies(r.Context(), post.ID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	texts := make([]string, len(replies))
	views := make([]replyView, len(replies))
	for i, rep := range replies {
		texts[i] = rep.Text
		views[i] = replyView{ID: rep.ID, Author: rep.Author, Text: rep.Text, CreatedAt: rep.CreatedAt}
	}
	counts := vote.Tally(texts)

	respondJSON(w, http.StatusOK, tallyView{
		PostID:  post.ID,
		Left:    counts.Left,
		Right:   counts.Right,
		Tilt:    counts.Tilt,
		Down:    counts.Down,
		Leading: counts.Resolve().String(),
		Replies: views,
	})
}

// replyRequest is the body of POST /replies.
type replyRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// postReply adds a vote under the latest board.
func (h *handlers) postReply(w http.ResponseWriter, r *http.Request) {
	var body replyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Text = strings.TrimSpace(body.Text)
	if body.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if len(body.Text) > maxReplyLength {
		respondError(w, http.StatusBadRequest, "text is too long")
		return
	}

	id, err := h.feed.AddReply(r.Context(), body.Author, body.Text)
	if errors.Is(err, storage.ErrNoPosts) {
		respondError(w, http.StatusConflict, "no board published yet")
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":     id,
		"intent": vote.Interpret([]string{body.Text}).String(),
	})
}

// postView is one board in the history listing.
type postView struct {
	ID        int64     `json:"id"`
	Replies   int       `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body,omitempty"`
}

// listPosts returns recent boards, newest first. ?limit=N bounds the list
// and ?body=1 includes the rendered boards.
func (h *handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 500 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}
	withBody := r.URL.Query().Get("body") == "1"

	posts, err := h.feed.RecentPosts(r.Context(), limit)
	if err != nil {
		h.internalError(w, err)
		return
	}

	views := make([]postView, len(posts))
	for i, p := range posts {
		views[i] = postView{ID: p.ID, Replies: p.Replies, CreatedAt: p.CreatedAt}
		if withBody {
			views[i].Body = p.Body
		}
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *handlers) internalError(w http.ResponseWriter, err error) {
	if h.logger != nil {
		h.logger.Error("http handler failed", "err", err)
	}
	respondError(w, http.StatusInternalServerError, "internal error")
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // client went away
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
