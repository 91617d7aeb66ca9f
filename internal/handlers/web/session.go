package web

import (
	"net/http"
)

const (
	// SessionCookie names the cookie holding the visitor's session ID
	SessionCookie = "strain_sid"

	maxSessionIDLen = 64
)

// sessionID returns the visitor's session ID, or "" when there is none or
// the cookie does not look like an ID this server issued
func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil || !validSessionID(c.Value) {
		return ""
	}
	return c.Value
}

// validSessionID accepts prefixed UUIDs and sequential IDs
func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// ensureSession returns the visitor's session ID, issuing a new cookie when
// the request carries none
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := sessionID(r); id != "" {
		return id
	}

	id := h.idGen.Generate()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
