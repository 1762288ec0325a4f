// Package store defines the entity-store contract the generic views
// consume. Implementations live in the memory and postgres subpackages;
// applications may supply their own.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Getter.Get when no entity matches.
var ErrNotFound = errors.New("entity not found")

// Queryset is a filtered, ordered collection of entities. Implementations
// must treat a Queryset as shareable between requests only through Clone:
// the views always clone a supplied queryset so repeated requests do not
// share mutable cursor state.
type Queryset[T any] interface {
	// Clone returns an independent copy of the queryset.
	Clone() Queryset[T]
	// Exists reports whether the queryset has at least one member.
	Exists(ctx context.Context) (bool, error)
	// Count returns the number of members.
	Count(ctx context.Context) (int, error)
	// All materializes the queryset in its defined order.
	All(ctx context.Context) ([]T, error)
}

// Getter fetches a single entity by field equality.
type Getter[T any] interface {
	// Get returns the entity whose field equals value, or ErrNotFound.
	Get(ctx context.Context, field string, value any) (*T, error)
}

// Repository is the full entity-store surface the edit views need.
type Repository[T any] interface {
	Getter[T]
	// Objects returns a queryset over all entities of the type.
	Objects() Queryset[T]
	// Save persists the entity, inserting or updating as needed.
	Save(ctx context.Context, entity *T) error
	// Delete removes the entity.
	Delete(ctx context.Context, entity *T) error
}
