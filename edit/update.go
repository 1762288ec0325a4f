package edit

import (
	"context"
	"net/url"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/detail"
	"github.com/dmitrymomot/viewkit/forms"
	"github.com/dmitrymomot/viewkit/store"
)

// updateForm is a declared form bound to an existing entity. Save applies
// the cleaned data to the instance and persists it.
type updateForm[T any] struct {
	*forms.Declared
	repo     store.Repository[T]
	apply    func(entity *T, data url.Values) error
	instance *T
}

func (f *updateForm[T]) Save(ctx context.Context) error {
	if err := f.apply(f.instance, f.CleanedData()); err != nil {
		return err
	}
	return f.repo.Save(ctx, f.instance)
}

// Instance returns the entity the form is bound to. After a successful
// save it reflects the applied changes.
func (f *updateForm[T]) Instance() *T {
	return f.instance
}

// UpdateView crosses a detail view with a form view: it resolves an
// existing entity by a lookup field (404 on miss), binds the declared
// form to it, applies and persists a valid submission, and stores both
// the entity and the form in the accessories. After a successful save the
// stored entity is re-read from the form. The conventional template
// suffix for this view kind is "_update_form".
//
// Example:
//
//	edit.UpdateView[viewkit.Context, UpdateRequest, Widget](repo,
//		func(r UpdateRequest) any { return r.ID },
//		[]forms.Field{{Name: "text", Required: true}},
//		func(w *Widget, data url.Values) error {
//			w.Text = data.Get("text")
//			return nil
//		},
//		edit.WithSuccessURL("/widgets"),
//	)
func UpdateView[C viewkit.Context, R any, T any](
	repo store.Repository[T],
	lookup func(R) any,
	fields []forms.Field,
	apply func(entity *T, data url.Values) error,
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

			form := &updateForm[T]{repo: repo, apply: apply, instance: obj}
			factory := func(data url.Values) forms.Form {
				form.Declared = forms.NewDeclared(fields, data)
				return form
			}
			_, bound, valid, short := bindForm(ctx, factory, cfg)
			if short != nil {
				return short
			}
			ctx.Accessories().Set(detail.ObjectKey, form.Instance())

			resp := gated(ctx, req)
			return redirectOnSuccess(cfg, bound, valid, resp)
		}
	}
}

// TemplateUpdateView is UpdateView composed with template rendering,
// using the conventional name TemplateName(app, entity, "_update_form").
func TemplateUpdateView[C viewkit.Context, R any, T any](
	repo store.Repository[T],
	lookup func(R) any,
	fields []forms.Field,
	apply func(entity *T, data url.Values) error,
	renderer viewkit.Renderer, app, entity string,
	opts ...Option,
) viewkit.Decorator[C, R] {
	name := viewkit.TemplateName(app, entity, viewkit.SuffixUpdateForm)
	cfg := newConfig(opts)
	inner := UpdateView[C, R, T](repo, lookup, fields, apply, opts...)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		return inner(viewkit.TemplateView[C, R](renderer, name,
			viewkit.WithTemplateMethods(cfg.methods...))(next))
	}
}
