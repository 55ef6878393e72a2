package upload

import (
	"context"
	"errors"
)

// Store persists the raw bytes of uploaded dataset files, keyed by session.
// This is the original artifact only; the parsed Dataset lives in the session
// and is never read back from here.
type Store interface {
	Put(ctx context.Context, sessionID, name string, content []byte) error
	Get(ctx context.Context, sessionID, name string) ([]byte, error)
	List(ctx context.Context, sessionID string) ([]string, error)
}

var ErrNotFound = errors.New("upload not found")
