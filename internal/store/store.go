// Package store holds the in-memory well collection. Readers get immutable
// snapshots; writers publish a new snapshot under a mutex, so a batch append
// is observed entirely or not at all.
package store

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/well-data-service/internal/domain"
)

type snapshot struct {
	wells    []domain.WellRecord
	index    map[string]int
	selected string
}

// Store is an ordered, copy-on-write collection of well records plus the
// name of the currently selected well.
type Store struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
}

// New returns a Store seeded with wells in order. The last seed becomes the
// selected well. Seeds must have distinct names.
func New(seed ...domain.WellRecord) (*Store, error) {
	s := &Store{}
	s.snap.Store(&snapshot{index: map[string]int{}})
	if len(seed) == 0 {
		return s, nil
	}
	if _, err := s.Append(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns the collection in insertion order. The slice is a copy; the
// records share no mutable state with the store.
func (s *Store) List() []domain.WellRecord {
	cur := s.snap.Load()
	out := make([]domain.WellRecord, len(cur.wells))
	for i, w := range cur.wells {
		out[i] = w.Clone()
	}
	return out
}

// Len returns the number of stored wells.
func (s *Store) Len() int {
	return len(s.snap.Load().wells)
}

// Get looks up a well by exact name.
func (s *Store) Get(name string) (domain.WellRecord, error) {
	cur := s.snap.Load()
	i, ok := cur.index[name]
	if !ok {
		return domain.WellRecord{}, fmt.Errorf("%w: %q", domain.ErrWellNotFound, name)
	}
	return cur.wells[i].Clone(), nil
}

// Append adds wells to the end of the collection in one step and selects the
// last of them. If any name collides with a stored well or with another well
// in the same call, nothing is added. It returns the new collection size.
func (s *Store) Append(wells []domain.WellRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	if len(wells) == 0 {
		return len(cur.wells), nil
	}

	next := &snapshot{
		wells:    make([]domain.WellRecord, len(cur.wells), len(cur.wells)+len(wells)),
		index:    make(map[string]int, len(cur.index)+len(wells)),
		selected: cur.selected,
	}
	copy(next.wells, cur.wells)
	for k, v := range cur.index {
		next.index[k] = v
	}

	for _, w := range wells {
		if _, dup := next.index[w.Name]; dup {
			return len(cur.wells), fmt.Errorf("%w: %q", domain.ErrDuplicateWell, w.Name)
		}
		next.index[w.Name] = len(next.wells)
		next.wells = append(next.wells, w.Clone())
	}
	next.selected = wells[len(wells)-1].Name

	s.snap.Store(next)
	return len(next.wells), nil
}

// Contains reports whether a well named name is stored.
func (s *Store) Contains(name string) bool {
	_, ok := s.snap.Load().index[name]
	return ok
}

// Selected returns the currently selected well.
func (s *Store) Selected() (domain.WellRecord, error) {
	cur := s.snap.Load()
	if cur.selected == "" {
		return domain.WellRecord{}, fmt.Errorf("%w: no well selected", domain.ErrWellNotFound)
	}
	return cur.wells[cur.index[cur.selected]].Clone(), nil
}

// Select marks the named well as selected.
func (s *Store) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	if _, ok := cur.index[name]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrWellNotFound, name)
	}
	next := *cur
	next.selected = name
	s.snap.Store(&next)
	return nil
}
