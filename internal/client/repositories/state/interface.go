// Package state persists small named blobs of client state (the saved
// session, the last username) in the local database.
package state

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("state key not found")

type Repository interface {
	// Get returns ErrNotFound when key was never set or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
	Keys(ctx context.Context) ([]string, error)
}
