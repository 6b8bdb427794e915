package viewmodels

import (
	"net/http"

	"github.com/adampresley/adamgokit/rendering"
)

type BaseViewModel struct {
	Message            string
	IsError            bool
	IsWarning          bool
	IsHtmx             bool
	JavascriptIncludes []rendering.JavascriptInclude
}

type contextKey string

// SessionIDKey is the request-context key the session middleware stores
// the gallery session id under.
const SessionIDKey contextKey = "gallerySessionID"

// GetSessionID returns the gallery session id the middleware placed on
// the request context.
func GetSessionID(r *http.Request) string {
	if result, ok := r.Context().Value(SessionIDKey).(string); ok {
		return result
	}

	return ""
}
