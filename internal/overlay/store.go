package overlay

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Store serializes a whole record list under one fixed key.
type Store[T any] struct {
	storage Storage
	key     string
}

func NewStore[T any](storage Storage, key string) *Store[T] {
	return &Store[T]{storage: storage, key: key}
}

func (s *Store[T]) Key() string {
	return s.key
}

// Load returns the stored list, or nil when nothing was saved yet. Corrupt
// values are reported, not repaired.
func (s *Store[T]) Load() ([]T, error) {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.key)
	}
	return items, nil
}

// Save replaces the stored list with items.
func (s *Store[T]) Save(items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encode %s", s.key)
	}
	return s.storage.SetItem(s.key, string(raw))
}

func (s *Store[T]) Clear() error {
	return s.storage.RemoveItem(s.key)
}
