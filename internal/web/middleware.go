package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/guard"
	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/gorilla/sessions"
)

const msgSessionExpired = "Tu sesión expiró. Inicia sesión nuevamente."

// requestState is what requireSession learned about the caller.
type requestState struct {
	session *sessions.Session
	creds   *client.SessionCredentials
	user    *models.User
}

type stateKey struct{}

func withState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func stateFrom(ctx context.Context) *requestState {
	st, _ := ctx.Value(stateKey{}).(*requestState)
	return st
}

func currentUser(r *http.Request) *models.User {
	if st := stateFrom(r.Context()); st != nil {
		return st.user
	}
	return nil
}

// withTimeout bounds every request, and with it every backend call it makes.
func (s *Server) withTimeout(next http.Handler) http.Handler {
	if s.timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession sends anonymous visitors to /login. For signed-in users it
// attaches refreshable credentials and the /auth/me profile to the context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.session(r)
		at, rt, email := sessionTokens(sess)
		if at == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		creds := client.NewSessionCredentials(at, rt, email, s.auth.Refresh)
		creds.OnRefresh = func(at, rt string) {
			setSessionTokens(sess, at, rt, email)
			s.saveSession(w, r, sess)
		}
		ctx := client.WithCredentials(r.Context(), creds)

		if _, err := s.verifier.Parse(at); err != nil {
			if !errors.Is(err, common.ErrTokenExpired) {
				s.expire(w, r, sess)
				return
			}
			if err := creds.Refresh(ctx, at); err != nil {
				s.logger.Info(ctx, "session refresh failed", "error", err)
				s.expire(w, r, sess)
				return
			}
		}

		me, err := s.client.Me(ctx)
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			s.expire(w, r, sess)
			return
		case err != nil:
			s.logger.Warn(ctx, "profile unavailable", "error", err)
			me = nil
		}

		st := &requestState{session: sess, creds: creds, user: me}
		next.ServeHTTP(w, r.WithContext(withState(ctx, st)))
	})
}

// requireFeature lets through users allowed to use f. Others land on their
// home page, or get a 403 page for the admin screens.
func (s *Server) requireFeature(f guard.Feature, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := currentUser(r)
		if guard.Allowed(u, f) {
			next.ServeHTTP(w, r)
			return
		}
		if f == guard.FeatureAdmin {
			s.renderError(w, r, http.StatusForbidden, "No tienes permisos para administrar usuarios.")
			return
		}
		http.Redirect(w, r, guard.Home(u), http.StatusSeeOther)
	})
}

// publicOnly keeps signed-in users away from the login and sign-up forms.
func (s *Server) publicOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if at, _, _ := sessionTokens(s.session(r)); at != "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(f guard.Feature, h http.HandlerFunc) http.Handler {
	return s.requireSession(s.requireFeature(f, h))
}

// expire drops the session and sends the user to /login.
func (s *Server) expire(w http.ResponseWriter, r *http.Request, sess *sessions.Session) {
	clearSession(sess)
	sess.AddFlash(msgSessionExpired, flashError)
	s.saveSession(w, r, sess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
