// Package memory provides a process local store.  Nothing survives a
// restart; it exists for one-shot runs and tests.
package memory

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/locusrobotics/ros-buildfarm/pkg/storage"
)

type memStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func init() {
	storage.RegisterCallback(newFactory)
}

func newFactory() {
	storage.RegisterFactory("memory", func(hclog.Logger) (storage.Storage, error) {
		return New(), nil
	})
}

// New returns an empty in-memory store.
func New() storage.Storage {
	return &memStore{m: make(map[string][]byte)}
}

func (s *memStore) Get(k []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[string(k)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *memStore) Put(k, v []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[string(k)] = append([]byte(nil), v...)
	return nil
}

func (s *memStore) Del(k []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, string(k))
	return nil
}

func (s *memStore) Close() error {
	return nil
}
