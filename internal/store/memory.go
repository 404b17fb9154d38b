package store

import "sync"

// MemorySubstrate is a volatile substrate for tests and throwaway runs.
type MemorySubstrate struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySubstrate() *MemorySubstrate {
	return &MemorySubstrate{data: make(map[string][]byte)}
}

func (ms *MemorySubstrate) Get(key string) ([]byte, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	val, ok := ms.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (ms *MemorySubstrate) Set(key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	ms.data[key] = stored
	return nil
}

func (ms *MemorySubstrate) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.data, key)
	return nil
}
