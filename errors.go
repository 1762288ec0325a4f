package viewkit

import "errors"

// Package-level errors for common failure scenarios
var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrImproperlyConfigured indicates a decorator was set up with
	// missing or contradictory configuration. It signals a programming
	// mistake and is raised at decoration time, never per request.
	ErrImproperlyConfigured = errors.New("improperly configured")
	// ErrNoTemplateView indicates a TemplateData response reached the
	// client without passing through a TemplateView decorator
	ErrNoTemplateView = errors.New("template data rendered outside a template view")
)
