package state

import (
	"encoding/json"
	"errors"
	"iter"
	"slices"
)

var (
	// ErrIndexOutOfRange is returned when an index does not point at an element.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrOrderChanged is returned by Set when the new value would not keep its position.
	ErrOrderChanged = errors.New("value does not rank equal to the element it replaces")
)

// Comparable is implemented by elements of a SortedList. Compare returns a
// positive number when the receiver ranks above other, zero when they tie.
type Comparable[T any] interface {
	Compare(other T) int
}

// SortedList keeps its elements ordered from the greatest to the lowest.
// Elements that tie keep their insertion order. The zero value is an empty list.
type SortedList[T Comparable[T]] struct {
	items []T
}

// NewSortedList builds a list from unordered items.
func NewSortedList[T Comparable[T]](items []T) SortedList[T] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int { return b.Compare(a) })
	return SortedList[T]{items: sorted}
}

// Insert places value right before the first element that ranks strictly
// below it and returns its index.
func (l *SortedList[T]) Insert(value T) int {
	idx := slices.IndexFunc(l.items, func(item T) bool { return value.Compare(item) > 0 })
	if idx < 0 {
		idx = len(l.items)
	}
	l.items = slices.Insert(l.items, idx, value)
	return idx
}

// Remove removes and returns the element at idx.
func (l *SortedList[T]) Remove(idx int) (T, error) {
	var zero T
	if idx < 0 || idx >= len(l.items) {
		return zero, ErrIndexOutOfRange
	}
	value := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	return value, nil
}

// ReplaceAt removes the element at idx, transforms it and inserts the result
// back. It returns the new index. This is how ordering-relevant fields change.
func (l *SortedList[T]) ReplaceAt(idx int, transform func(T) T) (int, error) {
	value, err := l.Remove(idx)
	if err != nil {
		return 0, err
	}
	return l.Insert(transform(value)), nil
}

// Set overwrites the element at idx in place. The new value must rank equal
// to the old one, so only fields ignored by Compare may differ.
func (l *SortedList[T]) Set(idx int, value T) error {
	if idx < 0 || idx >= len(l.items) {
		return ErrIndexOutOfRange
	}
	if value.Compare(l.items[idx]) != 0 {
		return ErrOrderChanged
	}
	l.items[idx] = value
	return nil
}

// ref returns a pointer to the element at idx, or nil. Callers must not
// change fields that Compare looks at through it.
func (l *SortedList[T]) ref(idx int) *T {
	if idx < 0 || idx >= len(l.items) {
		return nil
	}
	return &l.items[idx]
}

// Len returns the number of elements.
func (l SortedList[T]) Len() int {
	return len(l.items)
}

// At returns the element at idx; ok is false when idx is out of range.
func (l SortedList[T]) At(idx int) (value T, ok bool) {
	if idx < 0 || idx >= len(l.items) {
		return value, false
	}
	return l.items[idx], true
}

// All iterates over index/element pairs from the greatest element down.
func (l SortedList[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Items returns a copy of the elements in order.
func (l SortedList[T]) Items() []T {
	return slices.Clone(l.items)
}

func (l SortedList[T]) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// UnmarshalJSON decodes an array and re-establishes the descending order.
func (l *SortedList[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = NewSortedList(items)
	return nil
}
