package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/factorg/internal/cryptox"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "factorg_session"

	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyEmail        = "email"

	flashOK    = "_ok"
	flashError = "_error"
)

// newCookieStore returns an encrypted, authenticated cookie store whose keys
// are derived from secret.
func newCookieStore(secret string, maxAge time.Duration) *sessions.CookieStore {
	hashKey, blockKey := cryptox.SessionKeys(secret)
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(maxAge.Seconds()))
	return store
}

func sessionTokens(s *sessions.Session) (accessToken, refreshToken, email string) {
	accessToken, _ = s.Values[keyAccessToken].(string)
	refreshToken, _ = s.Values[keyRefreshToken].(string)
	email, _ = s.Values[keyEmail].(string)
	return accessToken, refreshToken, email
}

func setSessionTokens(s *sessions.Session, accessToken, refreshToken, email string) {
	s.Values[keyAccessToken] = accessToken
	s.Values[keyRefreshToken] = refreshToken
	s.Values[keyEmail] = email
}

func clearSession(s *sessions.Session) {
	delete(s.Values, keyAccessToken)
	delete(s.Values, keyRefreshToken)
	delete(s.Values, keyEmail)
}

func (s *Server) session(r *http.Request) *sessions.Session {
	// A cookie that fails to decode yields a fresh session; that is enough.
	sess, _ := s.store.Get(r, sessionName)
	return sess
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *sessions.Session) {
	if err := sess.Save(r, w); err != nil {
		s.logger.Error(r.Context(), "session save failed", "error", err)
	}
}

func (s *Server) flash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess := s.session(r)
	sess.AddFlash(msg, kind)
	s.saveSession(w, r, sess)
}

// takeFlashes pops pending messages of kind. The caller saves the session.
func takeFlashes(sess *sessions.Session, kind string) []string {
	var out []string
	for _, f := range sess.Flashes(kind) {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
