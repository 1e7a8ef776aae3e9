package listing

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matst80/slask-property/pkg/sorting"
	"github.com/matst80/slask-property/pkg/types"
)

var ErrDuplicateId = errors.New("duplicate property id")

// Store holds the full property set in its original order.
type Store struct {
	mu         sync.RWMutex
	properties []types.Property
	byId       map[types.PropertyId]int
}

func NewStore() *Store {
	return &Store{
		properties: make([]types.Property, 0),
		byId:       make(map[types.PropertyId]int),
	}
}

func NewStoreWith(properties []types.Property) (*Store, error) {
	s := NewStore()
	if err := s.HandleProperties(properties); err != nil {
		return nil, err
	}
	return s, nil
}

// HandleProperties replaces the set. Ids must be unique; the set is ordered by
// index so the stored order is the original one.
func (s *Store) HandleProperties(properties []types.Property) error {
	byId := make(map[types.PropertyId]int, len(properties))
	next := slices.Clone(properties)
	sorting.RestoreOriginalOrder(next)
	for i, p := range next {
		if _, ok := byId[p.Id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateId, p.Id)
		}
		byId[p.Id] = i
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = next
	s.byId = byId
	return nil
}

// All returns a copy, callers may reorder it freely.
func (s *Store) All() []types.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.properties)
}

func (s *Store) Get(id types.PropertyId) (types.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byId[id]
	if !ok {
		return types.Property{}, false
	}
	return s.properties[i], true
}

func (s *Store) First() (types.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.properties) == 0 {
		return types.Property{}, false
	}
	return s.properties[0], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.properties)
}
