package index

import (
	"sort"
	"sync"

	"github.com/iamNilotpal/litedb/internal/record"
)

// memIndex is the default keydir: a Go map protected by a RWMutex,
// reconstructed by replaying the log (or a hint file) on every Open.
type memIndex struct {
	mu      sync.RWMutex
	entries map[string]record.Position
}

// NewMemory creates an empty in-memory index, pre-sized for a modest
// working set to avoid early rehashing.
func NewMemory() Index {
	return &memIndex{entries: make(map[string]record.Position, 2046)}
}

func (m *memIndex) Put(key []byte, pos record.Position) (record.Position, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, existed := m.entries[string(key)]
	m.entries[string(key)] = pos
	return old, existed
}

func (m *memIndex) Get(key []byte) (record.Position, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.entries[string(key)]
	return pos, ok
}

func (m *memIndex) Delete(key []byte) (record.Position, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, existed := m.entries[string(key)]
	delete(m.entries, string(key))
	return old, existed
}

func (m *memIndex) ListKeys() [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}

func (m *memIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *memIndex) Iterator(opts IteratorOptions) Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]item, 0, len(m.entries))
	for k, pos := range m.entries {
		items = append(items, item{key: k, pos: pos})
	}
	return newSliceIterator(items, opts)
}

func (m *memIndex) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}
