package edit

import (
	"context"
	"net/url"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/forms"
	"github.com/dmitrymomot/viewkit/store"
)

// createForm is a declared form that constructs and persists a new entity
// on save.
type createForm[T any] struct {
	*forms.Declared
	repo      store.Repository[T]
	construct func(data url.Values) (*T, error)
	instance  *T
}

func (f *createForm[T]) Save(ctx context.Context) error {
	obj, err := f.construct(f.CleanedData())
	if err != nil {
		return err
	}
	if err := f.repo.Save(ctx, obj); err != nil {
		return err
	}
	f.instance = obj
	return nil
}

// Instance returns the entity created by Save, or nil before a successful
// save.
func (f *createForm[T]) Instance() *T {
	return f.instance
}

// CreateView is a FormView for entities. The form's field set is declared
// explicitly; construct builds a new entity from the cleaned data, and a
// valid submission persists it through the repository before the handler
// runs. The conventional template suffix for this view kind is
// "_create_form".
//
// Example:
//
//	edit.CreateView[viewkit.Context, CreateRequest, Widget](repo,
//		[]forms.Field{{Name: "text", Required: true}},
//		func(data url.Values) (*Widget, error) {
//			return &Widget{ID: uuid.NewString(), Text: data.Get("text")}, nil
//		},
//		edit.WithSuccessURL("/widgets"),
//	)
func CreateView[C viewkit.Context, R any, T any](
	repo store.Repository[T],
	fields []forms.Field,
	construct func(data url.Values) (*T, error),
	opts ...Option,
) viewkit.Decorator[C, R] {
	cfg := newConfig(opts)
	factory := func(data url.Values) forms.Form {
		return &createForm[T]{
			Declared:  forms.NewDeclared(fields, data),
			repo:      repo,
			construct: construct,
		}
	}
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

// TemplateCreateView is CreateView composed with template rendering,
// using the conventional name TemplateName(app, entity, "_create_form").
func TemplateCreateView[C viewkit.Context, R any, T any](
	repo store.Repository[T],
	fields []forms.Field,
	construct func(data url.Values) (*T, error),
	renderer viewkit.Renderer, app, entity string,
	opts ...Option,
) viewkit.Decorator[C, R] {
	name := viewkit.TemplateName(app, entity, viewkit.SuffixCreateForm)
	cfg := newConfig(opts)
	inner := CreateView[C, R, T](repo, fields, construct, opts...)
	return func(next viewkit.HandlerFunc[C, R]) viewkit.HandlerFunc[C, R] {
		return inner(viewkit.TemplateView[C, R](renderer, name,
			viewkit.WithTemplateMethods(cfg.methods...))(next))
	}
}
