package viewkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	viewkit "github.com/dmitrymomot/viewkit"
)

func wrapRedirectView(target viewkit.Response, opts ...viewkit.RedirectViewOption) http.HandlerFunc {
	handler := viewkit.HandlerFunc[viewkit.Context, struct{}](func(ctx viewkit.Context, req struct{}) viewkit.Response {
		return target
	})
	return viewkit.Wrap(handler,
		viewkit.WithDecorators(viewkit.RedirectView[viewkit.Context, struct{}](opts...)),
	)
}

func TestRedirectView(t *testing.T) {
	t.Run("permanent by default", func(t *testing.T) {
		wrapped := wrapRedirectView(viewkit.Location("/new-home"))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/old-home", nil))

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/new-home", rec.Header().Get("Location"))
	})

	t.Run("temporary option uses 302", func(t *testing.T) {
		wrapped := wrapRedirectView(viewkit.Location("/new-home"), viewkit.WithTemporary())

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/old-home", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/new-home", rec.Header().Get("Location"))
	})

	t.Run("query string carried over when configured", func(t *testing.T) {
		wrapped := wrapRedirectView(viewkit.Location("/search"), viewkit.WithQueryString())

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/old-search?q=widgets&page=2", nil))

		assert.Equal(t, "/search?q=widgets&page=2", rec.Header().Get("Location"))
	})

	t.Run("query string dropped by default", func(t *testing.T) {
		wrapped := wrapRedirectView(viewkit.Location("/search"))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/old-search?q=widgets", nil))

		assert.Equal(t, "/search", rec.Header().Get("Location"))
	})

	t.Run("empty location is gone", func(t *testing.T) {
		wrapped := wrapRedirectView(viewkit.Location(""))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/retired", nil))

		assert.Equal(t, http.StatusGone, rec.Code)
	})

	t.Run("non-location responses pass through", func(t *testing.T) {
		wrapped := wrapRedirectView(mockResponse{statusCode: http.StatusOK, body: "plain"})

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "plain", rec.Body.String())
	})

	t.Run("method gate applies", func(t *testing.T) {
		wrapped := wrapRedirectView(viewkit.Location("/new"),
			viewkit.WithRedirectMethods(http.MethodGet))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodPost, "/old", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestLocation(t *testing.T) {
	t.Run("standalone location renders 302", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := viewkit.Location("/target").Render(rec, req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/target", rec.Header().Get("Location"))
	})

	t.Run("standalone empty location renders 410", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := viewkit.Location("").Render(rec, req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusGone, rec.Code)
	})
}
