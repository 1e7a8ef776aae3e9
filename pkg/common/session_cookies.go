package common

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/matst80/slask-property/pkg/types"
)

const SessionCookieName = "sid"

func generateSessionId() string {
	return uuid.New().String()
}

func setSessionCookie(w http.ResponseWriter, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionId,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		Path:     "/",
	})
}

// HandleSessionCookie returns the session of the request, handing out a new
// id when the cookie is missing or not a valid uuid.
func HandleSessionCookie(tracking types.Tracking, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err == nil {
		if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return c.Value
		}
	}
	sessionId := generateSessionId()
	if tracking != nil {
		go tracking.TrackSession(sessionId, r)
	}
	setSessionCookie(w, sessionId)
	return sessionId
}
