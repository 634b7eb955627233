package repository

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is returned by every lookup that misses.
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// table is an insertion-ordered in-memory collection keyed by id.
// Values are stored and returned by copy.
type table[T any] struct {
	mu    sync.RWMutex
	kind  string
	order []string
	rows  map[string]T
	idOf  func(T) string
}

func newTable[T any](kind string, idOf func(T) string, seed []T) *table[T] {
	t := &table[T]{kind: kind, rows: make(map[string]T, len(seed)), idOf: idOf}
	for _, row := range seed {
		t.put(row)
	}
	return t
}

func (t *table[T]) put(row T) {
	id := t.idOf(row)
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}
	return row, nil
}

// update replaces an existing row; it never inserts.
func (t *table[T]) update(row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idOf(row)
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}
	t.rows[id] = row
	return nil
}

// mutate applies fn to the row under the write lock and stores the result.
func (t *table[T]) mutate(id string, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}
	if err := fn(&row); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = row
	return row, nil
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// insert adds a new row; an existing id is rejected.
func (t *table[T]) insert(row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idOf(row)
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%s %q: %w", t.kind, id, ErrDuplicate)
	}
	t.put(row)
	return nil
}

// remove deletes the row and returns what was stored.
func (t *table[T]) remove(id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return row, nil
}
