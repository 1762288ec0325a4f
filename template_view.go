package viewkit

// TemplateViewOption configures a TemplateView decorator.
type TemplateViewOption func(*templateViewConfig)

type templateViewConfig struct {
	methods     []string
	contentType string
}

// WithContentType overrides the rendering system's default content type.
func WithContentType(contentType string) TemplateViewOption {
	return func(c *templateViewConfig) { c.contentType = contentType }
}

// WithTemplateMethods restricts the HTTP methods the view accepts.
func WithTemplateMethods(methods ...string) TemplateViewOption {
	return func(c *templateViewConfig) { c.methods = methods }
}

// TemplateView renders the handler's TemplateData through the given
// renderer and template name. The handler runs behind the method gate; any
// response other than TemplateData (a redirect, an error, a 405 from the
// gate) passes through unchanged.
//
// Use TemplateName to derive conventional names:
//
//	viewkit.TemplateView[viewkit.Context, AboutRequest](
//		renderer, viewkit.TemplateName("site", "about", ""),
//	)
func TemplateView[C Context, R any](renderer Renderer, name string, opts ...TemplateViewOption) Decorator[C, R] {
	var cfg templateViewConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(next HandlerFunc[C, R]) HandlerFunc[C, R] {
		gated := View[C, R](cfg.methods...)(next)
		return func(ctx C, req R) Response {
			resp := gated(ctx, req)
			data, ok := resp.(TemplateData)
			if !ok {
				return resp
			}
			return templateResponse{
				renderer:    renderer,
				name:        name,
				data:        data,
				contentType: cfg.contentType,
			}
		}
	}
}
