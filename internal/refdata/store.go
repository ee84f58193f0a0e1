package refdata

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store caches the parametric snapshot for the lifetime of the process.
// Concurrent first loads are collapsed into one upstream request; after a
// successful load the snapshot is immutable and served without locking
// beyond an RLock on the pointer.
type Store struct {
	loader Loader

	group singleflight.Group
	mu    sync.RWMutex
	data  *ReferenceData
}

func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Snapshot returns the cached reference data, loading it on first use.
// A failed load is not cached; the next call retries.
func (s *Store) Snapshot(ctx context.Context) (*ReferenceData, error) {
	s.mu.RLock()
	cached := s.data
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do("parametric", func() (any, error) {
		rd, err := s.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.data = rd
		s.mu.Unlock()
		return rd, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ReferenceData), nil
}

// Invalidate drops the cached snapshot. Used by operational tooling when the
// parametric lists change mid-deploy; active sessions keep the pointer they
// already hold.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
}
