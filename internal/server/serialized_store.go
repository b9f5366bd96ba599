package server

import (
	"sync"

	"github.com/avsc-hub/avsc-hub/internal/schema"
)

// SchemaStore 是诊断服务依赖的 store 能力子集，便于测试注入。
type SchemaStore interface {
	Find(name, namespace string) (schema.Schema, error)
	LoadAll() (int, error)
	Names() []string
	Len() int
}

// SerializedStore 用互斥锁串行化对底层 store 的全部访问。
type SerializedStore struct {
	mu    sync.Mutex
	store SchemaStore
}

// NewSerializedStore wraps store so concurrent requests never overlap.
func NewSerializedStore(store SchemaStore) *SerializedStore {
	return &SerializedStore{store: store}
}

func (s *SerializedStore) Find(name, namespace string) (schema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Find(name, namespace)
}

func (s *SerializedStore) LoadAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadAll()
}

func (s *SerializedStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Names()
}

func (s *SerializedStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}
