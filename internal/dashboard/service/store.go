package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// ============================================================
// Key/Value Store
// ============================================================

// Ключи коллекций в хранилище.
const (
	ChatMessagesKey   = "chat_messages"
	DashboardCardsKey = "dashboard_cards"
)

// Store хранилище документов по ключу. Реализуется sqlite-репозиторием
// и MemoryStore.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), doc...), true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = append([]byte(nil), value...)
	return nil
}

// ============================================================
// Collections
// ============================================================

// collection упорядоченная последовательность, которая читается и
// записывается целиком на каждое изменение.
type collection[T any] struct {
	store Store
	key   string
}

func (c collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[STORE] %s is unreadable, starting empty: %v", c.key, err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Put(ctx, c.key, raw)
}

// newID генерирует идентификатор вида prefix_uuid.
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
