package viewkit

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/viewkit/binder"
)

// HandlerFunc provides type-safe HTTP request handling with custom context
// support. C must implement the Context interface, R can be any request
// type.
//
// Example:
//
//	handler := viewkit.HandlerFunc[viewkit.Context, ListRequest](
//		func(ctx viewkit.Context, req ListRequest) viewkit.Response {
//			pagination := list.PaginationFrom[Widget](ctx)
//			return viewkit.TemplateData{"widgets": pagination.Objects}
//		},
//	)
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response writes itself to the response writer: headers, status code and
// body. A render error is routed to the configured error handler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes part of an HTTP request into the typed request value.
type Bind func(r *http.Request, v any) error

// ErrorHandler resolves a binding or rendering failure to a response.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator layers cross-cutting behavior around a HandlerFunc. The first
// decorator in a list becomes the outermost wrapper; layering order
// determines the order in which accessories are populated and in which
// short-circuit responses (405, redirect, 404) can pre-empt the innermost
// handler.
//
// Example:
//
//	func Logger[C Context, R any](log *slog.Logger) Decorator[C, R] {
//		return func(next HandlerFunc[C, R]) HandlerFunc[C, R] {
//			return func(ctx C, req R) Response {
//				log.InfoContext(ctx, "request", "path", ctx.Request().URL.Path)
//				return next(ctx, req)
//			}
//		}
//	}
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption adjusts how Wrap assembles the boundary handler.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

type wrapConfig[C Context, R any] struct {
	binders        []Bind
	errorHandler   ErrorHandler[C]
	contextFactory func(http.ResponseWriter, *http.Request) C
	decorators     []Decorator[C, R]
}

// WithBinders registers request binders, run in order. Each binder owns
// one set of struct tags.
//
// Example:
//
//	http.Handle("/widgets/{id}", viewkit.Wrap(handler,
//		viewkit.WithBinders[viewkit.Context, WidgetRequest](
//			binder.Path(chi.URLParam), // processes path: tags
//			binder.Query(),            // processes query: tags
//			binder.Form(),             // processes form: tags
//		),
//	))
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithContextFactory supplies the constructor for custom Context types.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if f != nil {
			c.contextFactory = f
		}
	}
}

// WithDecorators layers decorators around the handler, first listed
// outermost.
//
// Example:
//
//	http.Handle("/widgets", viewkit.Wrap(handler,
//		viewkit.WithDecorators(
//			viewkit.View[viewkit.Context, ListRequest](http.MethodGet),
//			list.View[viewkit.Context, ListRequest, Widget](list.WithModel[Widget](repo)),
//		),
//	))
func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// defaultErrorHandler writes the plain-text error response, taking the
// status from an HTTPError in the chain and falling back to 500.
func defaultErrorHandler[C Context](ctx C, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(ctx.ResponseWriter(), httpErr.Message, httpErr.Code)
		return
	}
	http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
}

// NewErrorHandler creates an error handler that logs every failure with
// request context before writing the standard error response. Configure it
// once in main and pass to all Wrap calls.
func NewErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx C, err error) {
		var httpErr HTTPError
		status := http.StatusInternalServerError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}
		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx.Request().Context(), level, "request error",
			slog.String("error", err.Error()),
			slog.Int("status_code", status),
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
		)
		defaultErrorHandler(ctx, err)
	}
}

// Wrap turns a typed HandlerFunc into an http.HandlerFunc: it builds the
// context, runs the binders, calls the decorated handler and renders the
// response, routing every failure through the error handler.
//
// Usage:
//
//	handler := viewkit.HandlerFunc[viewkit.Context, WidgetRequest](...)
//	http.Handle("/widgets/{id}", viewkit.Wrap(handler,
//		viewkit.WithBinders[viewkit.Context, WidgetRequest](binder.Path(chi.URLParam)),
//		viewkit.WithDecorators(detailView),
//		viewkit.WithErrorHandler(errorHandler),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{
		errorHandler: defaultErrorHandler[C],
	}

	// Default factory only works when C is the standard Context;
	// custom context types must provide WithContextFactory.
	cfg.contextFactory = func(w http.ResponseWriter, r *http.Request) C {
		ctx := NewContext(w, r)
		if c, ok := any(ctx).(C); ok {
			return c
		}
		panic("cannot use default context factory with custom context type - provide WithContextFactory")
	}

	for _, opt := range opts {
		opt(cfg)
	}

	// Reverse application keeps the first listed decorator outermost.
	wrapped := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		wrapped = cfg.decorators[i](wrapped)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := cfg.contextFactory(w, r)

		var req R

		// Binders that report not-applicable are skipped so one stack can
		// cover path, query and form tags across all request shapes.
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				if errors.Is(err, binder.ErrBinderNotApplicable) {
					continue
				}
				cfg.errorHandler(ctx, err)
				return
			}
		}

		response := wrapped(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
