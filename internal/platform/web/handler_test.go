package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/crowdtris/internal/metrics"
	"github.com/vovakirdan/crowdtris/internal/storage"
)

func newTestHandler(t *testing.T) (http.Handler, *storage.Store) {
	t.Helper()
	feed, err := storage.Open(filepath.Join(t.TempDir(), "feed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { feed.Close() })

	return NewHandler(feed, metrics.New().Handler(), nil), feed
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestBoardBeforeFirstPost(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/board", "").Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/replies", `{"text":"left"}`).Code)
}

func TestBoardReturnsLatestPost(t *testing.T) {
	h, feed := newTestHandler(t)
	require.NoError(t, feed.Publish(context.Background(), "⬛⬛\n🟦⬛"))

	rr := do(t, h, http.MethodGet, "/board", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "⬛⬛\n🟦⬛\n", rr.Body.String())
	assert.Equal(t, "1", rr.Header().Get("X-Post-Id"))
}

func TestPostReplyAndTally(t *testing.T) {
	h, feed := newTestHandler(t)
	require.NoError(t, feed.Publish(context.Background(), "board"))

	rr := do(t, h, http.MethodPost, "/replies", `{"author":"bob","text":"spin it ↩️"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "tilt", created["intent"])

	do(t, h, http.MethodPost, "/replies", `{"author":"eve","text":"LEFT"}`)
	do(t, h, http.MethodPost, "/replies", `{"author":"ann","text":"left"}`)

	rr = do(t, h, http.MethodGet, "/replies", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var tally tallyView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tally))
	assert.Equal(t, 2, tally.Left)
	assert.Equal(t, 1, tally.Tilt)
	assert.Equal(t, "left", tally.Leading)
	require.Len(t, tally.Replies, 3)
	assert.Equal(t, "bob", tally.Replies[0].Author)
}

func TestPostReplyValidation(t *testing.T) {
	h, feed := newTestHandler(t)
	require.NoError(t, feed.Publish(context.Background(), "board"))

	tests := []struct {
		name string
		body string
	}{
		{"not json", "left"},
		{"missing text", `{"author":"x"}`},
		{"blank text", `{"text":"   "}`},
		{"too long", `{"text":"` + strings.Repeat("a", maxReplyLength+1) + `"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/replies", tc.body).Code)
		})
	}
}

func TestHistory(t *testing.T) {
	h, feed := newTestHandler(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, feed.Publish(ctx, "board"))
	}
	_, err := feed.AddReply(ctx, "", "down")
	require.NoError(t, err)

	rr := do(t, h, http.MethodGet, "/history?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var posts []postView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, int64(3), posts[0].ID)
	assert.Equal(t, 1, posts[0].Replies)
	assert.Empty(t, posts[0].Body)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/history?limit=0", "").Code)
}

func TestMetricsRouted(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "crowdtris_ticks_total")
}
