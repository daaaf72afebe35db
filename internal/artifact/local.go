package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const fileExt = ".mp3"

type LocalStore struct {
	dir string
	now func() time.Time

	mu    sync.RWMutex
	index map[string]Artifact
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &LocalStore{
		dir:   dir,
		now:   time.Now,
		index: make(map[string]Artifact),
	}, nil
}

func (s *LocalStore) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

func (s *LocalStore) Save(ctx context.Context, r io.Reader) (Artifact, error) {
	id := uuid.NewString()
	path := s.path(id)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return Artifact{}, fmt.Errorf("create artifact: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	a := Artifact{ID: id, Size: n, CreatedAt: s.now()}

	s.mu.Lock()
	s.index[id] = a
	s.mu.Unlock()

	return a, nil
}

func (s *LocalStore) Open(ctx context.Context, id string) (io.ReadCloser, Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Artifact{}, ErrNotFound
	}

	s.mu.RLock()
	a, ok := s.index[id]
	s.mu.RUnlock()
	if !ok {
		return nil, Artifact{}, ErrNotFound
	}

	f, err := os.Open(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, Artifact{}, ErrNotFound
	}
	if err != nil {
		return nil, Artifact{}, err
	}
	return f, a, nil
}

func (s *LocalStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	s.mu.Lock()
	delete(s.index, id)
	s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := s.now().Add(-maxAge)

	s.mu.RLock()
	var stale []string
	for id, a := range s.index {
		if a.CreatedAt.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range stale {
		if err := s.Delete(ctx, id); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
