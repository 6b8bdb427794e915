package viewmodels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSessionID(t *testing.T) {
	t.Run("returns the id stored under the session key", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), SessionIDKey, "abc-123"))

		assert.Equal(t, "abc-123", GetSessionID(r))
	})

	t.Run("returns empty when no session id is on the context", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", GetSessionID(r))
	})

	t.Run("the typed key does not collide with a same-named key", func(t *testing.T) {
		type otherKey string

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), otherKey("gallerySessionID"), "abc-123"))

		assert.Equal(t, "", GetSessionID(r))
	})
}
