// Package statestore persists grid snapshots between runs. The default
// backend is a JSON file; a Redis backend lets several hosts share one game.
package statestore

import (
	"context"
	"errors"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("statestore: no saved state")

// Store loads and saves grid snapshots.
type Store interface {
	Load(ctx context.Context) (tetris.Snapshot, error)
	Save(ctx context.Context, snap tetris.Snapshot) error
}
