package content

import (
	"context"
	"sync"
)

type State int

const (
	StateLoading State = iota
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Source is a page's view of one resource: the transformed records plus the
// loading state. A failed refresh keeps the previous records.
type Source[T any] struct {
	fetcher   Fetcher
	path      string
	transform func(Row) (T, bool)

	mu    sync.Mutex
	items []T
	state State
}

// NewSource builds a source for path. transform returns false to drop a row.
func NewSource[T any](fetcher Fetcher, path string, transform func(Row) (T, bool)) *Source[T] {
	return &Source[T]{
		fetcher:   fetcher,
		path:      path,
		transform: transform,
	}
}

func (s *Source[T]) Path() string {
	return s.path
}

// Refresh fetches the resource and replaces the records. Errors are logged,
// never returned: the page stays on whatever it had.
func (s *Source[T]) Refresh(ctx context.Context) ([]T, State) {
	rows, err := s.fetcher.Fetch(ctx, s.path)
	if err != nil {
		log.Errorf("loading %s: %v", s.path, err)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = StateError
		return s.items, s.state
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		if item, ok := s.transform(row); ok {
			items = append(items, item)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.state = StateLoaded
	return s.items, s.state
}

func (s *Source[T]) Snapshot() ([]T, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items, s.state
}
