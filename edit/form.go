package edit

import (
	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/forms"
)

// FormView binds a form to request-submitted data when present and leaves
// it unbound otherwise. A bound, valid form exposing a save operation is
// persisted before the handler runs. Unless the method gate
// short-circuits first, the handler is always invoked, including with a
// bound, invalid form, so it can re-render the form with error messages.
// When a
// success URL is configured and the form was bound and valid, the
// handler's response is discarded in favor of a redirect.
//
// Example:
//
//	factory := forms.DeclaredFactory([]forms.Field{
//		{Name: "text", Required: true},
//	})
//
//	viewkit.WithDecorators(
//		edit.FormView[viewkit.Context, EntryRequest](factory,
//			edit.WithSuccessURL("/thanks")),
//	)
//
//	func(ctx viewkit.Context, req EntryRequest) viewkit.Response {
//		form := edit.FormFrom(ctx)
//		return viewkit.TemplateData{"form": form}
//	}
func FormView[C viewkit.Context, R any](factory forms.Factory, opts ...Option) viewkit.Decorator[C, R] {
	cfg := newConfig(opts)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		gated := viewkit.View[C, R](cfg.methods...)(next)
		return func(ctx C, req R) viewkit.Response {
			_, bound, valid, short := bindForm(ctx, factory, cfg)
			if short != nil {
				return short
			}
			resp := gated(ctx, req)
			return redirectOnSuccess(cfg, bound, valid, resp)
		}
	}
}
