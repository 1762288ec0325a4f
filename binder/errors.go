package binder

import "errors"

// Common binding errors
var (
	// ErrBinderNotApplicable signals that a binder does not apply to the
	// request (wrong content type, no body). Wrap skips such binders
	// instead of failing the request.
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidPath          = errors.New("invalid path parameter")
)
