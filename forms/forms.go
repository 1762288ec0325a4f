// Package forms defines the form contract the edit views bind, validate
// and persist, plus a declarative url.Values-backed implementation.
//
// A form is bound iff it was constructed with submitted data; validity is
// only meaningful for bound forms, and cleaned data is only populated
// after a successful validity check. Forms are instantiated fresh per
// request and never reused.
package forms

import (
	"context"
	"net/url"

	viewkit "github.com/dmitrymomot/viewkit"
)

// Form is the minimal surface the edit views need from a form engine.
type Form interface {
	// IsBound reports whether the form was constructed with submitted
	// data.
	IsBound() bool
	// IsValid runs validation on a bound form. Unbound forms are never
	// valid.
	IsValid() bool
	// CleanedData returns the validated data. It is nil until IsValid
	// has succeeded.
	CleanedData() url.Values
	// Errors returns per-field validation messages collected by IsValid.
	Errors() viewkit.ValidationError
}

// Saver is implemented by forms that expose a persistence operation. The
// edit views invoke it on bound, valid forms before calling the handler.
type Saver interface {
	Save(ctx context.Context) error
}

// Factory instantiates a form. Nil data produces an unbound form; non-nil
// data produces a form bound to it.
type Factory func(data url.Values) Form
