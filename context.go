package viewkit

import (
	"context"
	"net/http"
	"time"
)

// Context joins the request, the response writer and the request's
// context.Context, and carries the per-request accessories bag that
// decorators use to pass derived values to the handler.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Accessories() *Accessories
}

// NewContext builds the standard Context over a request/response pair.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}
type httpContext struct {
	w           http.ResponseWriter
	r           *http.Request
	accessories *Accessories
}

func (c *httpContext) Request() *http.Request {
	return c.r
}

func (c *httpContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Accessories returns the request's accessories bag, creating it on first
// use. The same bag is returned for every call on one context, so all
// decorators wrapping a single request share it.
func (c *httpContext) Accessories() *Accessories {
	if c.accessories == nil {
		c.accessories = newAccessories()
	}
	return c.accessories
}

// context.Context is satisfied by the request's own context.
func (c *httpContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *httpContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *httpContext) Err() error {
	return c.r.Context().Err()
}

func (c *httpContext) Value(key any) any {
	return c.r.Context().Value(key)
}

// Accessories is a per-request mutable key/value bag. Decorators write
// derived values (fetched objects, pagination results, forms) into it and
// handlers read them back through the typed Accessory helpers. A bag lives
// exactly as long as the request it was created for and is never shared
// across requests; no locking is needed since one request executes in one
// goroutine.
type Accessories struct {
	values map[string]any
}

func newAccessories() *Accessories {
	return &Accessories{values: make(map[string]any)}
}

// Set stores a value under key, replacing any previous value.
func (a *Accessories) Set(key string, value any) {
	a.values[key] = value
}

// Get returns the raw value stored under key.
func (a *Accessories) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Len reports the number of stored accessories.
func (a *Accessories) Len() int {
	return len(a.values)
}

// Accessory retrieves a typed value from the context's accessories bag.
// Returns the zero value of T if the key is not present or has a different
// type.
//
// Example:
//
//	form := viewkit.Accessory[forms.Form](ctx, edit.FormKey)
func Accessory[T any](ctx Context, key string) T {
	v, _ := AccessoryOK[T](ctx, key)
	return v
}

// AccessoryOK retrieves a typed value from the accessories bag with an ok
// bool, allowing callers to distinguish a missing key from a zero value.
func AccessoryOK[T any](ctx Context, key string) (T, bool) {
	raw, ok := ctx.Accessories().Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}
