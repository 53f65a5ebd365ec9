// Package store provides the two small containers the render pipeline keeps
// auxiliary state in: an append-only fragment list addressed by insertion
// index, and a string-keyed map that remembers first-insertion order.
package store

// List is an append-only sequence of text fragments.
// Indices are assigned in insertion order, starting at 0, and are never reused.
// The zero value is ready to use.
type List struct {
	items []string
}

// NewList creates an empty List.
func NewList() *List {
	return &List{}
}

// Store appends fragment and returns its index.
func (l *List) Store(fragment string) int {
	l.items = append(l.items, fragment)
	return len(l.items) - 1
}

// Fetch returns the fragment stored at index.
// The boolean is false when index was never assigned.
func (l *List) Fetch(index int) (string, bool) {
	if l == nil || index < 0 || index >= len(l.items) {
		return "", false
	}
	return l.items[index], true
}

// Len returns the number of stored fragments.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Fragments returns a copy of all stored fragments in index order.
func (l *List) Fragments() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
