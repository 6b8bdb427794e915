package main

import (
	"context"
	"net/http"
	"time"

	"fisheye/cmd/website/internal/viewmodels"
	"github.com/google/uuid"
)

const sessionCookieName = "fisheye_session"

/*
newGallerySessionMiddleware makes sure every visitor carries a session
cookie and puts its id on the request context. The actual session state
lives in the gallery session registry; the cookie is just the key.
*/
func newGallerySessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				sessionID string
			)

			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			} else {
				sessionID = uuid.NewString()

				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(24 * time.Hour),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), viewmodels.SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
