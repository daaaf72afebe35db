package artifact

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotFound = errors.New("artifact not found")

// Artifact — сгенерированный аудиофайл, живёт до скачивания или до TTL.
type Artifact struct {
	ID        string
	Size      int64
	CreatedAt time.Time
}

type Store interface {
	Save(ctx context.Context, r io.Reader) (Artifact, error)
	Open(ctx context.Context, id string) (io.ReadCloser, Artifact, error)
	Delete(ctx context.Context, id string) error
	// Sweep removes artifacts older than maxAge and reports how many went.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}
