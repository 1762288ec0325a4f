// Package detail implements single-object views: decorators that resolve
// one entity from the request before the handler runs, converting misses
// to 404 responses.
package detail

import (
	"errors"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/store"
)

// ObjectKey is the accessories key under which the resolved entity is
// stored.
const ObjectKey = "object"

// DefaultLookupField is the field queried when no WithField option is
// given.
const DefaultLookupField = "id"

// ObjectFrom retrieves the resolved entity from the accessories bag. It
// returns nil when no detail-style decorator ran for this request.
func ObjectFrom[T any](ctx viewkit.Context) *T {
	return viewkit.Accessory[*T](ctx, ObjectKey)
}

// Option configures the detail views.
type Option func(*config)

type config struct {
	field   string
	methods []string
}

// WithField queries the entity by the named field instead of the primary
// identifier.
func WithField(field string) Option {
	return func(c *config) { c.field = field }
}

// WithMethods restricts the HTTP methods the view accepts.
func WithMethods(methods ...string) Option {
	return func(c *config) { c.methods = methods }
}

func newConfig(opts []Option) config {
	cfg := config{field: DefaultLookupField}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// resolve fetches the entity and stores it in the accessories,
// short-circuiting with 404 on a miss. It carries no method gate; the
// public decorators compose one.
func resolve[C viewkit.Context, R any, T any](
	repo store.Getter[T], lookup func(R) any, cfg config,
	next viewkit.HandlerFunc[C, R],
) viewkit.HandlerFunc[C, R] {
	return func(ctx C, req R) viewkit.Response {
		value := lookup(req)
		obj, err := repo.Get(ctx, cfg.field, value)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return viewkit.Error(viewkit.NotFoundf("no object matches %s=%v", cfg.field, value))
			}
			return viewkit.Error(err)
		}
		ctx.Accessories().Set(ObjectKey, obj)
		return next(ctx, req)
	}
}

// View resolves a single entity by a lookup field from a request-supplied
// key and stores it under ObjectKey before invoking the gated handler.
// Zero matches short-circuit with a 404; the handler never sees a nil
// object.
//
// Example:
//
//	viewkit.WithDecorators(
//		detail.View[viewkit.Context, WidgetRequest, Widget](repo,
//			func(r WidgetRequest) any { return r.ID },
//		),
//	)
//
//	func(ctx viewkit.Context, req WidgetRequest) viewkit.Response {
//		widget := detail.ObjectFrom[Widget](ctx)
//		...
//	}
func View[C viewkit.Context, R any, T any](repo store.Getter[T], lookup func(R) any, opts ...Option) viewkit.Decorator[C, R] {
	cfg := newConfig(opts)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		gated := viewkit.View[C, R](cfg.methods...)(next)
		return resolve(repo, lookup, cfg, gated)
	}
}

// TemplateView is View composed with template rendering. The handler
// returns a viewkit.TemplateData context that is rendered to the
// conventional template name TemplateName(app, entity, "_detail"), or to
// an explicit name passed via viewkit options on the renderer side.
func TemplateView[C viewkit.Context, R any, T any](
	repo store.Getter[T], lookup func(R) any,
	renderer viewkit.Renderer, app, entity string,
	opts ...Option,
) viewkit.Decorator[C, R] {
	return TemplateViewNamed[C, R, T](repo, lookup, renderer,
		viewkit.TemplateName(app, entity, viewkit.SuffixDetail), opts...)
}

// TemplateViewNamed is TemplateView with an explicit template name.
func TemplateViewNamed[C viewkit.Context, R any, T any](
	repo store.Getter[T], lookup func(R) any,
	renderer viewkit.Renderer, name string,
	opts ...Option,
) viewkit.Decorator[C, R] {
	cfg := newConfig(opts)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		rendered := viewkit.TemplateView[C, R](renderer, name,
			viewkit.WithTemplateMethods(cfg.methods...))(next)
		return resolve(repo, lookup, cfg, rendered)
	}
}
