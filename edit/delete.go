package edit

import (
	"net/http"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/detail"
	"github.com/dmitrymomot/viewkit/store"
)

// DeleteView resolves an existing entity like a detail view and, on a
// submission-bearing request, deletes it after the handler runs, then
// redirects to the success URL when one is configured. Non-submission
// requests (typically the confirmation page) leave the entity untouched.
// No form is instantiated. The conventional template suffix for this view
// kind is "_confirm_delete".
//
// Example:
//
//	edit.DeleteView[viewkit.Context, DeleteRequest, Widget](repo,
//		func(r DeleteRequest) any { return r.ID },
//		edit.WithSuccessURL("/widgets"),
//	)
func DeleteView[C viewkit.Context, R any, T any](
	repo store.Repository[T],
	lookup func(R) any,
	opts ...Option,
) viewkit.Decorator[C, R] {
	cfg := newConfig(opts)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		gated := viewkit.View[C, R](cfg.methods...)(next)
		return func(ctx C, req R) viewkit.Response {
			obj, short := fetch(ctx, repo, cfg.field, lookup(req))
			if short != nil {
				return short
			}
			ctx.Accessories().Set(detail.ObjectKey, obj)

			resp := gated(ctx, req)

			if submission(ctx.Request(), cfg) {
				if err := repo.Delete(ctx, obj); err != nil {
					return viewkit.Error(err)
				}
				if cfg.successURL != "" {
					return viewkit.RedirectWithCode(cfg.successURL, http.StatusFound)
				}
			}
			return resp
		}
	}
}

// TemplateDeleteView is DeleteView composed with template rendering,
// using the conventional name TemplateName(app, entity, "_confirm_delete").
func TemplateDeleteView[C viewkit.Context, R any, T any](
	repo store.Repository[T],
	lookup func(R) any,
	renderer viewkit.Renderer, app, entity string,
	opts ...Option,
) viewkit.Decorator[C, R] {
	name := viewkit.TemplateName(app, entity, viewkit.SuffixConfirmDelete)
	cfg := newConfig(opts)
	inner := DeleteView[C, R, T](repo, lookup, opts...)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		return inner(viewkit.TemplateView[C, R](renderer, name,
			viewkit.WithTemplateMethods(cfg.methods...))(next))
	}
}
