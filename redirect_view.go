package viewkit

import "net/http"

// Location is a marker response produced by handlers wrapped in a
// RedirectView. It carries the URL to redirect to; the empty string means
// the target no longer exists. When rendered outside a RedirectView it
// behaves as a plain 302 redirect (or 410 when empty).
type Location string

func (l Location) Render(w http.ResponseWriter, r *http.Request) error {
	if l == "" {
		return Gone().Render(w, r)
	}
	http.Redirect(w, r, string(l), http.StatusFound)
	return nil
}

// RedirectViewOption configures a RedirectView decorator.
type RedirectViewOption func(*redirectViewConfig)

type redirectViewConfig struct {
	methods     []string
	permanent   bool
	queryString bool
}

// WithTemporary makes the view redirect with 302 instead of the default 301.
func WithTemporary() RedirectViewOption {
	return func(c *redirectViewConfig) { c.permanent = false }
}

// WithQueryString appends the incoming request's query string to the
// redirect target.
func WithQueryString() RedirectViewOption {
	return func(c *redirectViewConfig) { c.queryString = true }
}

// WithRedirectMethods restricts the HTTP methods the view accepts.
func WithRedirectMethods(methods ...string) RedirectViewOption {
	return func(c *redirectViewConfig) { c.methods = methods }
}

// RedirectView normalizes redirects. The wrapped handler returns a Location
// naming the target URL; the decorator turns it into a permanent (301, the
// default) or temporary (302) redirect, optionally carrying over the
// request's query string. An empty Location yields 410 Gone. Responses
// other than Location pass through unchanged.
//
// Example:
//
//	viewkit.WithDecorators(
//		viewkit.RedirectView[viewkit.Context, OldURLRequest](viewkit.WithQueryString()),
//	)
//
//	func(ctx viewkit.Context, req OldURLRequest) viewkit.Response {
//		return viewkit.Location("https://example.com/")
//	}
func RedirectView[C Context, R any](opts ...RedirectViewOption) Decorator[C, R] {
	cfg := redirectViewConfig{permanent: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(next HandlerFunc[C, R]) HandlerFunc[C, R] {
		gated := View[C, R](cfg.methods...)(next)
		return func(ctx C, req R) Response {
			resp := gated(ctx, req)
			loc, ok := resp.(Location)
			if !ok {
				return resp
			}
			if loc == "" {
				return Gone()
			}

			target := string(loc)
			if cfg.queryString {
				if raw := ctx.Request().URL.RawQuery; raw != "" {
					target += "?" + raw
				}
			}
			if cfg.permanent {
				return RedirectWithCode(target, http.StatusMovedPermanently)
			}
			return RedirectWithCode(target, http.StatusFound)
		}
	}
}
