package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/services"
	"github.com/gorilla/mux"
)

// done flashes msg and redirects (POST/redirect/GET).
func (s *Server) done(w http.ResponseWriter, r *http.Request, msg, to string) {
	s.flash(w, r, flashOK, msg)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// fail reports a failed write. A backend 401 that survived the refresh ends
// the session.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, fallback, to string) {
	if errors.Is(err, client.ErrUnauthorized) {
		s.expire(w, r, s.session(r))
		return
	}
	s.logger.Warn(r.Context(), "action failed", "path", r.URL.Path, "error", err)
	s.flash(w, r, flashError, services.Message(err, fallback))
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// failPage reports a failed read on a page that has nothing else to show.
func (s *Server) failPage(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		s.expire(w, r, s.session(r))
	case errors.Is(err, client.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, services.Message(err, "No encontrado."))
	case errors.Is(err, client.ErrForbidden):
		s.renderError(w, r, http.StatusForbidden, services.Message(err, "No tienes permiso para ver este recurso."))
	default:
		s.logger.Error(r.Context(), "page failed", "path", r.URL.Path, "error", err)
		s.renderError(w, r, http.StatusBadGateway, services.Message(err, fallback))
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil && id > 0
}

func queryPage(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// localPath returns raw when it is a path on this site, else def.
func localPath(raw, def string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, "\\\r\n") {
		return def
	}
	return raw
}

func formBool(r *http.Request, name string) bool {
	switch r.PostFormValue(name) {
	case "on", "true", "1":
		return true
	}
	return false
}
