package statestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/statestore"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

// runStoreContract checks the behaviour every backend must share.
func runStoreContract(t *testing.T, store statestore.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, statestore.ErrNotFound)

	g := tetris.New(8, 13, tetris.WithSeed(5))
	for i := 0; i < 25; i++ {
		g.Tick(tetris.DefaultShapes, vote.SoftDrop)
	}
	require.NoError(t, store.Save(ctx, g.Snapshot()))

	snap, err := store.Load(ctx)
	require.NoError(t, err)

	restored, err := tetris.FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, g.Rows(), restored.Rows())
	assert.Equal(t, len(g.Pieces()), len(restored.Pieces()))
	assert.Equal(t, g.RenderText(tetris.DarkBackground), restored.RenderText(tetris.DarkBackground))

	// Saving again overwrites.
	g.Reset()
	require.NoError(t, store.Save(ctx, g.Snapshot()))
	snap, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Pieces, 1)
}

func TestFileStore_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "save.json")
	store, err := statestore.NewFileStore(path)
	require.NoError(t, err)

	runStoreContract(t, store)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := statestore.NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, statestore.ErrNotFound)
}

func TestRedisStore_Contract(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := statestore.NewRedisStoreFromClient(client, "")
	defer store.Close()

	runStoreContract(t, store)
	assert.True(t, mr.Exists(statestore.DefaultRedisKey))
}
