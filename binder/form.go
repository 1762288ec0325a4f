package binder

import (
	"mime"
	"net/http"
)

// Form builds a binder for `form:"name"` tags over urlencoded request
// bodies. A request without an application/x-www-form-urlencoded body is
// reported as not applicable rather than an error, so Form can sit in a
// binder stack next to Query and Path.
//
// Fields may be basic types, slices of basic types for repeated inputs, or
// pointers for optional inputs; `form:"-"` and untagged fields are ignored.
//
//	type CreateWidgetRequest struct {
//		Text string   `form:"text"`
//		Tags []string `form:"tags"`
//		Ref  *string  `form:"ref"`
//	}
//
//	http.Handle("/widgets", viewkit.Wrap(handler,
//		viewkit.WithBinders[viewkit.Context, CreateWidgetRequest](binder.Form()),
//	))
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return ErrBinderNotApplicable
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/x-www-form-urlencoded" {
			return ErrBinderNotApplicable
		}

		if err := r.ParseForm(); err != nil {
			return ErrInvalidForm
		}
		return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
	}
}
