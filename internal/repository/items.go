package repository

import (
	"sync"
	"time"
)

// Item is a stored demo resource.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemStore is an in-memory item repository safe for concurrent use.
type ItemStore struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewItemStore returns an empty in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[string]Item)}
}

func (s *ItemStore) Add(it Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

func (s *ItemStore) Get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	return it, ok
}
