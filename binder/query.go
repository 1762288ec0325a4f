package binder

import (
	"net/http"
)

// Query builds a binder for `query:"name"` tags over the request's URL
// query string. Absent parameters leave their fields at zero values.
//
// Fields may be basic types, slices of basic types for repeated
// parameters, or pointers for optional ones; `query:"-"` and untagged
// fields are ignored.
//
//	type ListRequest struct {
//		Page     string `query:"page"`
//		PageSize int    `query:"page_size"`
//	}
//
//	http.Handle("/widgets", viewkit.Wrap(handler,
//		viewkit.WithBinders[viewkit.Context, ListRequest](binder.Query()),
//	))
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
