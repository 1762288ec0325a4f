// Package paginator partitions ordered collections into pages with
// orphan-avoidance semantics: a trailing page holding fewer than the
// configured orphan threshold is merged into the previous page.
package paginator

import (
	"errors"
	"fmt"
)

// Errors reported when a page cannot be produced.
var (
	// ErrInvalidPageSize indicates a per-page size below 1. This is a
	// configuration error and is never clamped.
	ErrInvalidPageSize = errors.New("page size must be at least 1")
	// ErrEmptyPage indicates a page number outside [1, NumPages()].
	ErrEmptyPage = errors.New("that page contains no results")
	// ErrPageLessThanOne indicates a page number below 1.
	ErrPageLessThanOne = errors.New("that page number is less than 1")
)

// Option configures a Paginator.
type Option func(*options)

type options struct {
	orphans             int
	allowEmptyFirstPage bool
}

// WithOrphans sets the minimum item count on the final page. A final page
// with fewer items is merged into the previous one.
func WithOrphans(n int) Option {
	return func(o *options) { o.orphans = n }
}

// WithAllowEmptyFirstPage controls whether an empty collection yields a
// single empty page (the default) or no valid page at all.
func WithAllowEmptyFirstPage(allow bool) Option {
	return func(o *options) { o.allowEmptyFirstPage = allow }
}

// Paginator partitions a materialized collection into pages of perPage
// items. It holds no cursor state, so one paginator can serve any number
// of Page calls; the same page number always yields the identical item
// sequence.
type Paginator[T any] struct {
	objects             []T
	perPage             int
	orphans             int
	allowEmptyFirstPage bool
}

// New creates a Paginator over objects. perPage below 1 is a configuration
// error.
func New[T any](objects []T, perPage int, opts ...Option) (*Paginator[T], error) {
	if perPage < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, perPage)
	}
	o := options{allowEmptyFirstPage: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Paginator[T]{
		objects:             objects,
		perPage:             perPage,
		orphans:             o.orphans,
		allowEmptyFirstPage: o.allowEmptyFirstPage,
	}, nil
}

// Count returns the total number of items across all pages.
func (p *Paginator[T]) Count() int {
	return len(p.objects)
}

// PerPage returns the configured page size.
func (p *Paginator[T]) PerPage() int {
	return p.perPage
}

// Orphans returns the orphan threshold for the final page.
func (p *Paginator[T]) Orphans() int {
	return p.orphans
}

// NumPages returns the total page count. It is always at least 1 when
// empty first pages are allowed, even for an empty collection.
func (p *Paginator[T]) NumPages() int {
	count := len(p.objects)
	if count == 0 && !p.allowEmptyFirstPage {
		return 0
	}
	hits := count - p.orphans
	if hits < 1 {
		hits = 1
	}
	return (hits + p.perPage - 1) / p.perPage
}

// Page returns the 1-based page with the given number. Numbers outside
// [1, NumPages()] yield an error; a partial result is never returned.
func (p *Paginator[T]) Page(number int) (*Page[T], error) {
	if number < 1 {
		return nil, ErrPageLessThanOne
	}
	if number > p.NumPages() {
		return nil, ErrEmptyPage
	}

	bottom := (number - 1) * p.perPage
	top := bottom + p.perPage
	// The final page absorbs up to orphans leftover items.
	if top+p.orphans >= len(p.objects) {
		top = len(p.objects)
	}
	return &Page[T]{
		Objects:   p.objects[bottom:top],
		Number:    number,
		paginator: p,
	}, nil
}

// Page is one page of a partitioned collection. It is read-only and
// derived per request.
type Page[T any] struct {
	// Objects is the item sequence of this page.
	Objects []T
	// Number is the 1-based page number actually served.
	Number int

	paginator *Paginator[T]
}

// Paginator returns the partition handle this page belongs to.
func (pg *Page[T]) Paginator() *Paginator[T] {
	return pg.paginator
}

// HasNext reports whether a page follows this one.
func (pg *Page[T]) HasNext() bool {
	return pg.Number < pg.paginator.NumPages()
}

// HasPrevious reports whether a page precedes this one.
func (pg *Page[T]) HasPrevious() bool {
	return pg.Number > 1
}

// HasOtherPages reports whether the collection spans more than one page.
func (pg *Page[T]) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

// NextPageNumber returns the following page number.
func (pg *Page[T]) NextPageNumber() int {
	return pg.Number + 1
}

// PreviousPageNumber returns the preceding page number.
func (pg *Page[T]) PreviousPageNumber() int {
	return pg.Number - 1
}

// StartIndex returns the 1-based index of the first item on this page
// relative to the whole collection, or 0 for an empty page.
func (pg *Page[T]) StartIndex() int {
	if len(pg.Objects) == 0 {
		return 0
	}
	return (pg.Number-1)*pg.paginator.perPage + 1
}

// EndIndex returns the 1-based index of the last item on this page
// relative to the whole collection, or 0 for an empty page.
func (pg *Page[T]) EndIndex() int {
	if len(pg.Objects) == 0 {
		return 0
	}
	return pg.StartIndex() + len(pg.Objects) - 1
}
