package engine

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Store holds every ingested workbook keyed by an opaque handle. Entries are
// only ever inserted and workbooks are never mutated after Put, so readers
// go through sync.Map without taking a lock.
type Store struct {
	workbooks sync.Map // handle -> *Workbook
	count     atomic.Int64
}

func NewStore() *Store {
	return &Store{}
}

// Put registers wb under a fresh random handle.
func (s *Store) Put(wb *Workbook) string {
	for {
		handle := uuid.NewString()
		if _, loaded := s.workbooks.LoadOrStore(handle, wb); !loaded {
			s.count.Add(1)
			return handle
		}
	}
}

// Get returns the workbook for handle or ErrNotFound.
func (s *Store) Get(handle string) (*Workbook, error) {
	v, ok := s.workbooks.Load(handle)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*Workbook), nil
}

// Len reports how many workbooks are held.
func (s *Store) Len() int {
	return int(s.count.Load())
}
