package binder

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
)

// Path builds a binder for `path:"name"` tags. The extractor supplies the
// raw value for each named parameter, which keeps the binder router-agnostic;
// with chi, pass chi.URLParam:
//
//	type WidgetRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/widgets/{id}", viewkit.Wrap(handler,
//		viewkit.WithBinders[viewkit.Context, WidgetRequest](binder.Path(chi.URLParam)),
//	))
//
// Parameters the extractor reports empty leave their fields at zero values.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		values, err := extractPathValues(r, v, extractor)
		if err != nil {
			return err
		}
		return bindToStruct(v, "path", values, ErrInvalidPath)
	}
}

// extractPathValues collects the extractor's value for every path-tagged
// field of v into url.Values keyed by parameter name.
func extractPathValues(r *http.Request, v any, extractor func(*http.Request, string) string) (url.Values, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidPath)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidPath)
	}

	values := url.Values{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name, skip := parseFieldTag(rt.Field(i), "path")
		if skip {
			continue
		}
		if raw := extractor(r, name); raw != "" {
			values.Set(name, raw)
		}
	}
	return values, nil
}
