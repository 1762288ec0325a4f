package forms

import (
	"net/url"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/pkg/validator"
)

// Field declares one form field and its validation rules. The explicit
// declaration replaces runtime introspection of entity types: views that
// derive forms from a model take a []Field at configuration time.
type Field struct {
	Name     string
	Required bool
	// Rules returns additional validation rules for the submitted value.
	Rules func(value string) []validator.Rule
}

// Declared is a Form over a declared field set. Zero-value-safe it is not:
// construct with NewDeclared.
type Declared struct {
	fields    []Field
	data      url.Values
	bound     bool
	validated bool
	valid     bool
	cleaned   url.Values
	errors    viewkit.ValidationError
}

// NewDeclared creates a form over fields. Nil data leaves the form
// unbound; any non-nil data (including an empty set) binds it.
func NewDeclared(fields []Field, data url.Values) *Declared {
	return &Declared{
		fields: fields,
		data:   data,
		bound:  data != nil,
		errors: viewkit.NewValidationError(),
	}
}

// DeclaredFactory returns a Factory producing Declared forms over fields.
func DeclaredFactory(fields []Field) Factory {
	return func(data url.Values) Form {
		return NewDeclared(fields, data)
	}
}

func (f *Declared) IsBound() bool {
	return f.bound
}

// IsValid validates the bound data against the declared rules. The check
// runs once; repeated calls return the cached verdict. Unbound forms are
// never valid.
func (f *Declared) IsValid() bool {
	if !f.bound {
		return false
	}
	if f.validated {
		return f.valid
	}
	f.validated = true

	var rules []validator.Rule
	for _, field := range f.fields {
		value := f.data.Get(field.Name)
		if field.Required {
			rules = append(rules, validator.RequiredString(field.Name, value))
		}
		if field.Rules != nil {
			rules = append(rules, field.Rules(value)...)
		}
	}

	if err := validator.Apply(rules...); err != nil {
		for _, ve := range validator.ExtractErrors(err) {
			f.errors.Add(ve.Field, ve.Message)
		}
		return false
	}

	f.valid = true
	f.cleaned = make(url.Values, len(f.fields))
	for _, field := range f.fields {
		if vs, ok := f.data[field.Name]; ok {
			f.cleaned[field.Name] = vs
		}
	}
	return true
}

// CleanedData returns the validated data, nil until IsValid succeeds.
func (f *Declared) CleanedData() url.Values {
	return f.cleaned
}

// Errors returns the per-field messages collected by IsValid.
func (f *Declared) Errors() viewkit.ValidationError {
	return f.errors
}
