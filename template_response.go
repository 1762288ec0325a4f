package viewkit

import (
	"context"
	"io"
	"net/http"
)

// Renderer renders a named template with a context mapping. Implementations
// adapt whatever template engine the application uses; the library never
// depends on an engine directly.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any, contentType string) error
}

// TemplateData is the render context returned by handlers wrapped in a
// TemplateView. The decorator replaces it with the rendered template; if it
// escapes to the client unrendered, that is a composition mistake and
// resolves to a 500.
type TemplateData map[string]any

func (TemplateData) Render(w http.ResponseWriter, r *http.Request) error {
	return ErrNoTemplateView
}

// Conventional template name suffixes per view kind.
const (
	SuffixDetail        = "_detail"
	SuffixList          = "_list"
	SuffixCreateForm    = "_create_form"
	SuffixUpdateForm    = "_update_form"
	SuffixConfirmDelete = "_confirm_delete"
)

// TemplateName derives a conventional template name from explicit inputs:
// the application name, the entity or view name, and a suffix appropriate
// to the view kind. For example TemplateName("shop", "widget", SuffixList)
// is "shop/widget_list.html". Pass an empty suffix for plain views.
func TemplateName(app, name, suffix string) string {
	return app + "/" + name + suffix + ".html"
}

// templateResponse renders a context mapping through a Renderer.
type templateResponse struct {
	renderer    Renderer
	name        string
	data        map[string]any
	contentType string
}

func (t templateResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return t.renderer.Render(w, r, t.name, t.data, t.contentType)
}

// TemplComponent represents a compiled template component interface.
// This matches github.com/a-h/templ.Component without importing it.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// templResponse wraps a component to implement Response
type templResponse struct {
	component TemplComponent
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.component.Render(r.Context(), w)
}

// Templ creates a response from a compiled template component, for
// applications that use component-based engines instead of named
// templates.
//
// Example:
//
//	return viewkit.Templ(templates.WidgetCard(widget))
func Templ(component TemplComponent) Response {
	return templResponse{component: component}
}
