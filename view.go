package viewkit

import (
	"net/http"
	"slices"
	"strings"
)

// HTTPMethods is the full standard verb set, used as the default allow-list
// when a view decorator is given no methods.
var HTTPMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
}

// View is the method-gate decorator. All other view decorators compose with
// it.
//
// An OPTIONS request returns 200 with an Allow header listing the allowed
// methods and an empty body, without invoking the handler. A request whose
// method is not in the allow-list returns 405, again without invoking the
// handler. Any other request is delegated unchanged.
//
// The gate also ensures the request's accessories bag exists before
// delegating, so inner decorators and handlers can rely on it.
//
// Example:
//
//	viewkit.WithDecorators(
//		viewkit.View[viewkit.Context, MyRequest](http.MethodGet, http.MethodPost),
//	)
func View[C Context, R any](methods ...string) Decorator[C, R] {
	if len(methods) == 0 {
		methods = HTTPMethods
	}
	return func(next HandlerFunc[C, R]) HandlerFunc[C, R] {
		return func(ctx C, req R) Response {
			ctx.Accessories()

			switch m := ctx.Request().Method; {
			case m == http.MethodOptions:
				return allowedMethodsResponse{methods: methods}
			case !slices.Contains(methods, m):
				return methodNotAllowedResponse{methods: methods}
			}
			return next(ctx, req)
		}
	}
}

// MethodAllowed reports whether method is in the allow-list. An empty list
// means the full standard verb set.
func MethodAllowed(method string, methods []string) bool {
	if len(methods) == 0 {
		return slices.Contains(HTTPMethods, method)
	}
	return slices.Contains(methods, method)
}

// allowedMethodsResponse answers OPTIONS introspection requests.
type allowedMethodsResponse struct {
	methods []string
}

func (a allowedMethodsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Allow", strings.Join(a.methods, ", "))
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusOK)
	return nil
}

// methodNotAllowedResponse rejects requests outside the allow-list.
type methodNotAllowedResponse struct {
	methods []string
}

func (m methodNotAllowedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Allow", strings.Join(m.methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return nil
}
