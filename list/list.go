// Package list implements collection views: decorators that materialize a
// filtered/ordered collection from a declarative source or an explicit
// pre-built queryset, optionally paginate it, and hand both to the
// handler through the accessories bag.
package list

import (
	"fmt"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/store"
)

// Accessories keys written by the list views.
const (
	// QuerysetKey holds the materialized collection ([]T).
	QuerysetKey = "queryset"
	// PaginationKey holds the *Pagination[T] when pagination is enabled.
	PaginationKey = "pagination"
)

// ObjectsFrom retrieves the materialized collection from the accessories
// bag.
func ObjectsFrom[T any](ctx viewkit.Context) []T {
	return viewkit.Accessory[[]T](ctx, QuerysetKey)
}

// PaginationFrom retrieves the pagination result from the accessories bag.
// It returns nil when pagination was not enabled for this view.
func PaginationFrom[T any](ctx viewkit.Context) *Pagination[T] {
	return viewkit.Accessory[*Pagination[T]](ctx, PaginationKey)
}

// Option configures the list views.
type Option[T any] func(*config[T])

type config[T any] struct {
	model      store.Repository[T]
	queryset   store.Queryset[T]
	allowEmpty bool
	methods    []string

	paginate  bool
	size      SizeSpec
	pageParam string
	orphans   int
}

// WithModel sources the collection from all entities of the repository.
// Exactly one of WithModel and WithQueryset must be given.
func WithModel[T any](repo store.Repository[T]) Option[T] {
	return func(c *config[T]) { c.model = repo }
}

// WithQueryset sources the collection from a pre-built, already
// filtered/ordered queryset. The queryset is cloned per request so
// repeated requests do not share cursor state. Exactly one of WithModel
// and WithQueryset must be given.
func WithQueryset[T any](qs store.Queryset[T]) Option[T] {
	return func(c *config[T]) { c.queryset = qs }
}

// WithAllowEmpty controls whether an empty collection is acceptable
// (the default) or resolves to a 404 before the handler runs.
func WithAllowEmpty[T any](allow bool) Option[T] {
	return func(c *config[T]) { c.allowEmpty = allow }
}

// WithMethods restricts the HTTP methods the view accepts.
func WithMethods[T any](methods ...string) Option[T] {
	return func(c *config[T]) { c.methods = methods }
}

// WithPagination enables pagination with the given page-size
// specification.
func WithPagination[T any](size SizeSpec) Option[T] {
	return func(c *config[T]) {
		c.paginate = true
		c.size = size
	}
}

// WithPageParam overrides the query parameter carrying the requested page
// number (default "page").
func WithPageParam[T any](name string) Option[T] {
	return func(c *config[T]) { c.pageParam = name }
}

// WithOrphans sets the minimum item count on the final page; smaller
// remainders merge into the prior page.
func WithOrphans[T any](n int) Option[T] {
	return func(c *config[T]) { c.orphans = n }
}

// newConfig validates options at decoration time. Ambiguous or missing
// collection sources are programming mistakes, reported before any
// request is processed.
func newConfig[T any](opts []Option[T]) config[T] {
	cfg := config[T]{allowEmpty: true, pageParam: DefaultPageParam}
	for _, opt := range opts {
		opt(&cfg)
	}
	if (cfg.model == nil) == (cfg.queryset == nil) {
		panic(fmt.Errorf("%w: must define queryset or model", viewkit.ErrImproperlyConfigured))
	}
	if cfg.paginate {
		if err := cfg.size.validate(); err != nil {
			panic(fmt.Errorf("%w: %v", viewkit.ErrImproperlyConfigured, err))
		}
	}
	return cfg
}

// resolve materializes the collection, enforces non-emptiness, paginates
// when configured and populates the accessories. No method gate here; the
// public decorators compose one.
func resolve[C viewkit.Context, R any, T any](cfg config[T], next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
	return func(ctx C, req R) viewkit.Response {
		var qs store.Queryset[T]
		if cfg.model != nil {
			qs = cfg.model.Objects()
		} else {
			qs = cfg.queryset.Clone()
		}

		if !cfg.allowEmpty {
			exists, err := qs.Exists(ctx)
			if err != nil {
				return viewkit.Error(err)
			}
			if !exists {
				return viewkit.Error(viewkit.NotFoundf("Empty list"))
			}
		}

		objects, err := qs.All(ctx)
		if err != nil {
			return viewkit.Error(err)
		}
		ctx.Accessories().Set(QuerysetKey, objects)

		if cfg.paginate {
			if _, err := PaginateQueryset(ctx, objects, PaginateConfig{
				PageParam:           cfg.pageParam,
				Size:                cfg.size,
				Orphans:             cfg.orphans,
				AllowEmptyFirstPage: cfg.allowEmpty,
			}); err != nil {
				return viewkit.Error(err)
			}
		}

		return next(ctx, req)
	}
}

// View materializes the configured collection and stores it (and its
// pagination result, when enabled) in the accessories before invoking the
// gated handler.
//
// Example:
//
//	viewkit.WithDecorators(
//		list.View[viewkit.Context, ListRequest, Widget](
//			list.WithModel[Widget](repo),
//			list.WithPagination[Widget](list.Size(5)),
//		),
//	)
//
//	func(ctx viewkit.Context, req ListRequest) viewkit.Response {
//		pagination := list.PaginationFrom[Widget](ctx)
//		...
//	}
func View[C viewkit.Context, R any, T any](opts ...Option[T]) viewkit.Decorator[C, R] {
	cfg := newConfig(opts)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		gated := viewkit.View[C, R](cfg.methods...)(next)
		return resolve[C, R](cfg, gated)
	}
}

// TemplateView is View composed with template rendering, using the
// conventional template name TemplateName(app, entity, "_list").
func TemplateView[C viewkit.Context, R any, T any](
	renderer viewkit.Renderer, app, entity string,
	opts ...Option[T],
) viewkit.Decorator[C, R] {
	return TemplateViewNamed[C, R, T](renderer,
		viewkit.TemplateName(app, entity, viewkit.SuffixList), opts...)
}

// TemplateViewNamed is TemplateView with an explicit template name.
func TemplateViewNamed[C viewkit.Context, R any, T any](
	renderer viewkit.Renderer, name string,
	opts ...Option[T],
) viewkit.Decorator[C, R] {
	cfg := newConfig(opts)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		rendered := viewkit.TemplateView[C, R](renderer, name,
			viewkit.WithTemplateMethods(cfg.methods...))(next)
		return resolve[C, R](cfg, rendered)
	}
}
