package mystore

import (
	"context"
	"sort"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()
	defer s.Unlock()

	snapshot := make(map[string]T, len(s.Items))
	for k, v := range s.Items {
		snapshot[k] = v
	}

	err := f(context.WithValue(c, ctxTransactionKey{}, s))
	if err != nil {
		// Rollback
		s.Items = snapshot
		return err
	}

	// Commit
	return nil
}

func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	return c.Value(ctxTransactionKey{}) == s
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.Items[uid]

	return result, exists, nil
}

// List returns the items ordered by uid so results are stable.
func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	if !s.inTransaction(c) {
		s.Lock()
		defer s.Unlock()
	}

	uids := make([]string, 0, len(s.Items))
	for uid := range s.Items {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	result := make([]T, 0, len(s.Items))
	for _, uid := range uids {
		result = append(result, s.Items[uid])
	}

	return result, nil
}
