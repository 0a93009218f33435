package types

import "sync"

// SyncMap is a generic goroutine-safe map with read-write mutex protection
type SyncMap[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
}

// Get retrieves a value by key. Returns the value and a boolean indicating if the key exists.
func (m *SyncMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, exists := m.values[key]
	return val, exists
}

// Set stores a value with the given key.
func (m *SyncMap[K, V]) Set(key K, val V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = val
}

// Has checks if a key exists in the map.
func (m *SyncMap[K, V]) Has(key K) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.values[key]
	return exists
}

// Values returns a slice of all values in the map.
func (m *SyncMap[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	values := make([]V, 0, len(m.values))
	for _, v := range m.values {
		values = append(values, v)
	}
	return values
}

// Len returns the number of items in the map.
func (m *SyncMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Range calls the given function for each key-value pair in the map.
// If the function returns false, iteration stops.
func (m *SyncMap[K, V]) Range(fn func(key K, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, v := range m.values {
		if !fn(k, v) {
			break
		}
	}
}

// GetOrSet returns the existing value for the key if present.
// Otherwise, it stores and returns the given value.
// The bool return value indicates whether the value was loaded (true) or stored (false).
func (m *SyncMap[K, V]) GetOrSet(key K, val V) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, exists := m.values[key]; exists {
		return existing, true
	}
	m.values[key] = val
	return val, false
}

// Update replaces the value for key with fn(current) atomically.
// current is the zero value when the key is absent.
func (m *SyncMap[K, V]) Update(key K, fn func(current V) V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	val := fn(m.values[key])
	m.values[key] = val
	return val
}

// NewSyncMap creates a new goroutine-safe map.
func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{
		values: make(map[K]V),
	}
}
