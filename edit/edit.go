// Package edit implements form-processing views: decorators that bind a
// form to submitted data, validate and optionally persist it, and issue a
// success redirect, plus create/update/delete variants working against a
// store.Repository.
package edit

import (
	"errors"
	"net/http"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/detail"
	"github.com/dmitrymomot/viewkit/forms"
	"github.com/dmitrymomot/viewkit/store"
)

// FormKey is the accessories key under which the bound or unbound form is
// stored.
const FormKey = "form"

// FormFrom retrieves the form instance from the accessories bag.
func FormFrom(ctx viewkit.Context) forms.Form {
	return viewkit.Accessory[forms.Form](ctx, FormKey)
}

// Option configures the edit views.
type Option func(*config)

type config struct {
	methods    []string
	successURL string
	field      string
}

// WithMethods restricts the HTTP methods the view accepts.
func WithMethods(methods ...string) Option {
	return func(c *config) { c.methods = methods }
}

// WithSuccessURL configures the redirect target returned instead of the
// handler's response when a bound form validates (and, for delete views,
// after a confirmed deletion).
func WithSuccessURL(url string) Option {
	return func(c *config) { c.successURL = url }
}

// WithField queries the entity by the named field instead of the primary
// identifier (update and delete views).
func WithField(field string) Option {
	return func(c *config) { c.field = field }
}

func newConfig(opts []Option) config {
	cfg := config{field: detail.DefaultLookupField}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// submission reports whether the request carries form submission data the
// view is allowed to process.
func submission(r *http.Request, cfg config) bool {
	return r.Method == http.MethodPost && viewkit.MethodAllowed(http.MethodPost, cfg.methods)
}

// bindForm instantiates the form (bound on a submission-bearing request,
// unbound otherwise), stores it in the accessories, and persists a bound
// valid form that exposes a save operation. It reports the form's bound
// and valid states; a non-nil Response short-circuits the view.
func bindForm[C viewkit.Context](ctx C, factory forms.Factory, cfg config) (form forms.Form, bound, valid bool, short viewkit.Response) {
	r := ctx.Request()
	if submission(r, cfg) {
		if err := r.ParseForm(); err != nil {
			return nil, false, false, viewkit.Error(viewkit.NewHTTPError(http.StatusBadRequest, "invalid form data"))
		}
		form = factory(r.PostForm)
		bound = true
	} else {
		form = factory(nil)
	}
	ctx.Accessories().Set(FormKey, form)

	if bound && form.IsValid() {
		valid = true
		if saver, ok := form.(forms.Saver); ok {
			if err := saver.Save(ctx); err != nil {
				return form, bound, valid, viewkit.Error(err)
			}
		}
	}
	return form, bound, valid, nil
}

// redirectOnSuccess discards the handler's response in favor of the
// configured redirect when the form was bound and valid.
func redirectOnSuccess(cfg config, bound, valid bool, resp viewkit.Response) viewkit.Response {
	if bound && valid && cfg.successURL != "" {
		return viewkit.RedirectWithCode(cfg.successURL, http.StatusFound)
	}
	return resp
}

// fetch resolves the entity for update/delete views, converting a miss to
// a 404 short-circuit.
func fetch[C viewkit.Context, T any](ctx C, repo store.Getter[T], field string, value any) (*T, viewkit.Response) {
	obj, err := repo.Get(ctx, field, value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, viewkit.Error(viewkit.NotFoundf("no object matches %s=%v", field, value))
		}
		return nil, viewkit.Error(err)
	}
	return obj, nil
}
