package web

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/services"
)

type loginForm struct {
	Email string
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", "Iniciar sesión", loginForm{})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	session, err := s.auth.SignIn(r.Context(), email, password)
	if err != nil {
		s.logger.Info(r.Context(), "sign in rejected", "error", err)
		s.renderPage(w, r, http.StatusUnauthorized, "login.html", &page{
			Title:  "Iniciar sesión",
			Errors: []string{services.Message(err, "No se pudo iniciar sesión.")},
			Data:   loginForm{Email: email},
		})
		return
	}

	sess := s.session(r)
	setSessionTokens(sess, session.AccessToken, session.RefreshToken, session.Email)
	s.saveSession(w, r, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type registerForm struct {
	Name  string
	Email string
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", "Crear cuenta", registerForm{})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	reg := services.Registration{
		Name:     r.PostFormValue("nombre"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	msg, err := s.auth.Register(r.Context(), reg)
	if err != nil {
		p := &page{
			Title:  "Crear cuenta",
			Fields: services.FieldErrors(err),
			Data:   registerForm{Name: reg.Name, Email: reg.Email},
		}
		if p.Fields == nil {
			p.Errors = []string{services.Message(err, "No se pudo crear la cuenta.")}
		}
		s.renderPage(w, r, http.StatusUnprocessableEntity, "register.html", p)
		return
	}

	s.flash(w, r, flashOK, msg)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	at, _, _ := sessionTokens(sess)
	s.auth.SignOut(r.Context(), at)

	clearSession(sess)
	s.saveSession(w, r, sess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
