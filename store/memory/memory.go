// Package memory provides a slice-backed store.Repository, primarily for
// demos and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/viewkit/store"
)

// FieldFunc extracts a named field's value from an entity. It reports
// false for unknown field names.
type FieldFunc[T any] func(entity T, field string) (any, bool)

// Repository is an in-memory store.Repository implementation. Entities are
// kept in insertion order; identity is the "id" field.
type Repository[T any] struct {
	mu    sync.RWMutex
	items []T
	field FieldFunc[T]
}

// New creates an empty repository using field to resolve lookups.
//
// Example:
//
//	repo := memory.New(func(w Widget, field string) (any, bool) {
//		switch field {
//		case "id":
//			return w.ID, true
//		case "text":
//			return w.Text, true
//		}
//		return nil, false
//	})
func New[T any](field FieldFunc[T]) *Repository[T] {
	return &Repository[T]{field: field}
}

// Get returns the first entity whose field equals value.
func (r *Repository[T]) Get(ctx context.Context, field string, value any) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if v, ok := r.field(item, field); ok && v == value {
			found := item
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

// Objects returns a queryset over a snapshot of the repository.
func (r *Repository[T]) Objects() store.Queryset[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &sliceQueryset[T]{items: slices.Clone(r.items)}
}

// Save inserts the entity, or replaces the stored entity with the same
// "id" field value.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.indexOf(*entity); ok {
		r.items[idx] = *entity
		return nil
	}
	r.items = append(r.items, *entity)
	return nil
}

// Delete removes the stored entity with the same "id" field value. Deleting
// an absent entity is a no-op.
func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.indexOf(*entity); ok {
		r.items = append(r.items[:idx], r.items[idx+1:]...)
	}
	return nil
}

func (r *Repository[T]) indexOf(entity T) (int, bool) {
	id, ok := r.field(entity, "id")
	if !ok {
		return 0, false
	}
	for i, item := range r.items {
		if v, ok := r.field(item, "id"); ok && v == id {
			return i, true
		}
	}
	return 0, false
}

// Queryset builds a standalone queryset from a fixed item slice, useful for
// wiring pre-built collections into the list views.
func Queryset[T any](items []T) store.Queryset[T] {
	return &sliceQueryset[T]{items: slices.Clone(items)}
}

type sliceQueryset[T any] struct {
	items []T
}

func (q *sliceQueryset[T]) Clone() store.Queryset[T] {
	return &sliceQueryset[T]{items: slices.Clone(q.items)}
}

func (q *sliceQueryset[T]) Exists(ctx context.Context) (bool, error) {
	return len(q.items) > 0, nil
}

func (q *sliceQueryset[T]) Count(ctx context.Context) (int, error) {
	return len(q.items), nil
}

func (q *sliceQueryset[T]) All(ctx context.Context) ([]T, error) {
	return slices.Clone(q.items), nil
}
