package counter

import "sync"

type memoryStore struct {
	mu    sync.RWMutex
	codes map[string]uint32
}

// NewMemoryStore returns a Store that forgets everything on exit. It is
// meant for tests and dry runs.
func NewMemoryStore() Store {
	return &memoryStore{
		codes: make(map[string]uint32),
	}
}

func (s *memoryStore) Get(key string, def uint32) (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.codes[key]
	if !ok {
		return def, nil
	}
	return code, nil
}

func (s *memoryStore) Set(key string, code uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[key] = code
	return nil
}

func (s *memoryStore) Reset(key string, def uint32) error {
	return s.Set(key, def)
}
