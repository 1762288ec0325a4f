package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/viewkit/pkg/requestid"
)

func TestContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := requestid.WithContext(context.Background(), "req-123")
		assert.Equal(t, "req-123", requestid.FromContext(ctx))
	})

	t.Run("absent id", func(t *testing.T) {
		assert.Empty(t, requestid.FromContext(context.Background()))
	})

	t.Run("nil context", func(t *testing.T) {
		assert.Empty(t, requestid.FromContext(nil)) //nolint:staticcheck
	})
}

func TestMiddleware(t *testing.T) {
	run := func(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
		t.Helper()
		var seen string
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestid.FromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if header != "" {
			req.Header.Set(requestid.Header, header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec, seen
	}

	t.Run("accepts well-formed client id", func(t *testing.T) {
		rec, seen := run(t, "client-id_42")

		assert.Equal(t, "client-id_42", seen)
		assert.Equal(t, "client-id_42", rec.Header().Get(requestid.Header))
	})

	t.Run("generates when absent", func(t *testing.T) {
		rec, seen := run(t, "")

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(requestid.Header))
	})

	t.Run("replaces malformed ids", func(t *testing.T) {
		for _, bad := range []string{
			"has spaces",
			"semi;colon",
			strings.Repeat("x", 200),
		} {
			rec, seen := run(t, bad)
			assert.NotEqual(t, bad, seen, bad)
			_, err := uuid.Parse(rec.Header().Get(requestid.Header))
			assert.NoError(t, err, bad)
		}
	})
}

func TestLoggerExtractor(t *testing.T) {
	extract := requestid.LoggerExtractor()

	t.Run("extracts from request context", func(t *testing.T) {
		ctx := requestid.WithContext(context.Background(), "req-9")

		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "request_id", attr.Key)
		assert.Equal(t, "req-9", attr.Value.String())
	})

	t.Run("reports absence", func(t *testing.T) {
		_, ok := extract(context.Background())
		assert.False(t, ok)
	})
}
