package state

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"
)

// DefaultMap is a map that never reports a missing key. Reading an absent key
// yields the zero value of V without inserting it; GetMut inserts it first.
type DefaultMap[K cmp.Ordered, V any] struct {
	inner map[K]*V
	def   V
}

// Get returns the stored value or the shared default.
func (m DefaultMap[K, V]) Get(key K) V {
	if value, ok := m.inner[key]; ok {
		return *value
	}
	return m.def
}

// GetMut returns a pointer to the stored value, inserting a default one if needed.
func (m *DefaultMap[K, V]) GetMut(key K) *V {
	if m.inner == nil {
		m.inner = make(map[K]*V)
	}
	value, ok := m.inner[key]
	if !ok {
		value = new(V)
		m.inner[key] = value
	}
	return value
}

// Inner exposes the materialized entries.
func (m DefaultMap[K, V]) Inner() map[K]*V {
	return m.inner
}

// Keys returns the materialized keys in ascending order.
func (m DefaultMap[K, V]) Keys() []K {
	return slices.Sorted(maps.Keys(m.inner))
}

// Len returns the number of materialized entries.
func (m DefaultMap[K, V]) Len() int {
	return len(m.inner)
}

func (m DefaultMap[K, V]) MarshalJSON() ([]byte, error) {
	if m.inner == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.inner)
}

func (m *DefaultMap[K, V]) UnmarshalJSON(data []byte) error {
	var inner map[K]*V
	if err := json.Unmarshal(data, &inner); err != nil {
		return err
	}
	for key, value := range inner {
		if value == nil {
			inner[key] = new(V)
		}
	}
	m.inner = inner
	return nil
}
