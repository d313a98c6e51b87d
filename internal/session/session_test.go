package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/statestore"
)

type fakeFetcher struct {
	messages []string
	err      error
	calls    int
}

func (f *fakeFetcher) FetchMessages(context.Context) ([]string, error) {
	f.calls++
	return f.messages, f.err
}

type fakePublisher struct {
	posts []string
	err   error
}

func (p *fakePublisher) Publish(_ context.Context, text string) error {
	if p.err != nil {
		return p.err
	}
	p.posts = append(p.posts, text)
	return nil
}

type memStore struct {
	snap    *tetris.Snapshot
	saves   int
	loadErr error
}

func (m *memStore) Load(context.Context) (tetris.Snapshot, error) {
	if m.loadErr != nil {
		return tetris.Snapshot{}, m.loadErr
	}
	if m.snap == nil {
		return tetris.Snapshot{}, statestore.ErrNotFound
	}
	return *m.snap, nil
}

func (m *memStore) Save(_ context.Context, s tetris.Snapshot) error {
	m.snap = &s
	m.saves++
	return nil
}

type countingObserver struct {
	ticks, fetchFails, publishFails int
}

func (o *countingObserver) ObserveTick(tetris.TickResult) { o.ticks++ }
func (o *countingObserver) FetchFailed()                  { o.fetchFails++ }
func (o *countingObserver) PublishFailed()                { o.publishFails++ }

func newTestSession(fetcher *fakeFetcher, publisher *fakePublisher, store *memStore, obs Observer) *Session {
	grid := tetris.New(8, 13, tetris.WithSeed(1))
	return New(grid, store, fetcher, publisher,
		WithBackground(tetris.DarkBackground),
		WithObserver(obs),
	)
}

func TestRunOneTickPublishesAndSaves(t *testing.T) {
	fetcher := &fakeFetcher{messages: []string{"left", "LEFT please", "down"}}
	publisher := &fakePublisher{}
	store := &memStore{}
	obs := &countingObserver{}
	s := newTestSession(fetcher, publisher, store, obs)

	res, err := s.RunOneTick(context.Background())
	if err != nil {
		t.Fatalf("RunOneTick() failed: %v", err)
	}

	if res.Intent.String() != "left" {
		t.Errorf("intent = %v, expected left", res.Intent)
	}
	if len(publisher.posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(publisher.posts))
	}
	if publisher.posts[0] != s.Render() {
		t.Error("published text differs from the grid render")
	}
	if lines := strings.Split(publisher.posts[0], "\n"); len(lines) != 13 {
		t.Errorf("render has %d lines, expected 13", len(lines))
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, expected 1", store.saves)
	}
	if obs.ticks != 1 {
		t.Errorf("observer saw %d ticks, expected 1", obs.ticks)
	}
}

func TestRunOneTickFetchFailureProceeds(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("feed down")}
	publisher := &fakePublisher{}
	store := &memStore{}
	obs := &countingObserver{}
	s := newTestSession(fetcher, publisher, store, obs)

	res, err := s.RunOneTick(context.Background())
	if err != nil {
		t.Fatalf("RunOneTick() failed: %v", err)
	}
	if res.Intent.String() != "none" {
		t.Errorf("intent = %v, expected none", res.Intent)
	}
	if len(publisher.posts) != 1 || store.saves != 1 {
		t.Errorf("tick did not complete: posts=%d saves=%d", len(publisher.posts), store.saves)
	}
	if obs.fetchFails != 1 {
		t.Errorf("fetch failures = %d, expected 1", obs.fetchFails)
	}
}

func TestRunOneTickPublishFailureSkipsSave(t *testing.T) {
	publishErr := errors.New("rate limited")
	publisher := &fakePublisher{err: publishErr}
	store := &memStore{}
	obs := &countingObserver{}
	s := newTestSession(&fakeFetcher{}, publisher, store, obs)

	_, err := s.RunOneTick(context.Background())
	if !errors.Is(err, publishErr) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if store.saves != 0 {
		t.Errorf("state saved %d times after failed publish", store.saves)
	}
	if obs.publishFails != 1 {
		t.Errorf("publish failures = %d, expected 1", obs.publishFails)
	}
}

func TestLoadOrCreateFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		store *memStore
	}{
		{"nothing saved", &memStore{}},
		{"load error", &memStore{loadErr: errors.New("disk gone")}},
		{"unusable snapshot", &memStore{snap: &tetris.Snapshot{}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := LoadOrCreate(context.Background(), tc.store, 8, 13, nil)
			if grid.Width() != 8 || grid.Height() != 13 {
				t.Errorf("grid = %dx%d, expected 8x13", grid.Width(), grid.Height())
			}
			if len(grid.Pieces()) != 1 {
				t.Errorf("fresh grid has %d pieces, expected 1", len(grid.Pieces()))
			}
		})
	}
}

func TestSaveThenLoadOrCreate(t *testing.T) {
	store, err := statestore.NewFileStore(filepath.Join(t.TempDir(), "save.json"))
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	ctx := context.Background()

	grid := tetris.New(10, 18, tetris.WithSeed(3))
	for i := 0; i < 5; i++ {
		grid.Tick(grid.Shapes(), 0)
	}
	if err := Save(ctx, store, grid); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Width and height arguments are ignored when a save exists.
	restored := LoadOrCreate(ctx, store, 8, 13, nil)
	if restored.Width() != 10 || restored.Height() != 18 {
		t.Errorf("restored grid = %dx%d, expected 10x18", restored.Width(), restored.Height())
	}
	if restored.RenderText(tetris.DarkBackground) != grid.RenderText(tetris.DarkBackground) {
		t.Error("restored board differs from saved board")
	}
	if len(restored.Pieces()) != len(grid.Pieces()) {
		t.Errorf("restored %d pieces, expected %d", len(restored.Pieces()), len(grid.Pieces()))
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	publisher := &fakePublisher{}
	s := newTestSession(&fakeFetcher{}, publisher, &memStore{}, &countingObserver{})
	s.Grid.TickInterval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, expected deadline exceeded", err)
	}
	if len(publisher.posts) == 0 {
		t.Error("Run() never ticked")
	}
}

func TestRunSkipsWhilePaused(t *testing.T) {
	publisher := &fakePublisher{}
	s := newTestSession(&fakeFetcher{}, publisher, &memStore{}, &countingObserver{})
	s.Grid.TickInterval = time.Millisecond
	s.Grid.Paused = true

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s.Run(ctx) //nolint:errcheck // always the context error

	if len(publisher.posts) != 0 {
		t.Errorf("paused grid published %d posts", len(publisher.posts))
	}
}
