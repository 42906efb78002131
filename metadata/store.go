package metadata

import "sync"

// Accessor provides read access to per-vector metadata.
//
// Implementations must reflect current state at call time; the filter
// engine performs no caching across queries. Ids are dense positions in
// [0, Count()), matching the id space of the ANN index.
type Accessor interface {
	// Get returns the document for the given id, or false if the id is
	// unknown or the vector carries no metadata.
	Get(id uint32) (Document, bool)

	// Count returns the total number of vectors in the store.
	Count() int
}

// MapStore is an in-memory Accessor backed by a Go map.
// It's suitable for datasets that fit in memory and provides O(1) access.
//
// The zero value is not usable; use NewMapStore.
type MapStore struct {
	mu    sync.RWMutex
	data  map[uint32]Document
	count int
}

var _ Accessor = (*MapStore)(nil)

// NewMapStore creates a new in-memory map-based store.
func NewMapStore() *MapStore {
	return &MapStore{
		data: make(map[uint32]Document),
	}
}

// Get retrieves the document associated with the given id.
func (m *MapStore) Get(id uint32) (Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.data[id]
	return d, ok
}

// Count returns the size of the id space, i.e. one past the highest id
// ever set. Ids without metadata are counted; Get reports them as absent.
func (m *MapStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.count
}

// Set stores a document under the given id. The document is cloned so
// later caller mutation cannot leak into the store.
func (m *MapStore) Set(id uint32, doc Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[id] = CloneIfNeeded(doc)
	if int(id)+1 > m.count {
		m.count = int(id) + 1
	}
}

// Delete removes the document associated with the given id. The id keeps
// its slot in the id space; Count is unchanged.
func (m *MapStore) Delete(id uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, id)
}
