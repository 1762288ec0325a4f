// Package viewkit provides decorator-based generic views for Go HTTP
// applications.
//
// A view is just a handler function. Cross-cutting behaviors (HTTP method
// gating, template rendering, redirect normalization, single-object and
// collection retrieval, pagination, form binding) are added by wrapping the
// handler in decorators and composing the result with Wrap.
//
// Key features:
//
//   - Type-safe handlers using generics
//   - Explicit decorator composition, outermost listed first
//   - Per-request accessories bag shared across all decorators of one call
//   - Router-agnostic design; storage and templating stay behind interfaces
//
// Basic usage:
//
//	type WidgetRequest struct {
//		ID string `path:"id"`
//	}
//
//	handler := viewkit.HandlerFunc[viewkit.Context, WidgetRequest](
//		func(ctx viewkit.Context, req WidgetRequest) viewkit.Response {
//			widget := detail.ObjectFrom[Widget](ctx)
//			return viewkit.TemplateData{"widget": widget}
//		},
//	)
//
//	http.Handle("/widgets/{id}", viewkit.Wrap(handler,
//		viewkit.WithBinders[viewkit.Context, WidgetRequest](binder.Path(chi.URLParam)),
//		viewkit.WithDecorators(
//			detail.TemplateView[viewkit.Context, WidgetRequest](repo,
//				func(r WidgetRequest) any { return r.ID },
//				renderer, "widgets", "widget"),
//		),
//	))
//
// Subpackages detail, list and edit implement the generic views; paginator
// implements orphan-aware pagination; store defines the entity-store
// contract with in-memory and PostgreSQL implementations.
package viewkit
