package web

import "net/http"

func (s *Server) profilePage(w http.ResponseWriter, r *http.Request) {
	v, err := s.profile.Load(r.Context())
	if err != nil {
		s.failPage(w, r, err, "No se pudo cargar el perfil.")
		return
	}
	s.render(w, r, http.StatusOK, "profile.html", "Mi perfil", v)
}

func (s *Server) chooseBusiness(w http.ResponseWriter, r *http.Request) {
	name, err := s.profile.ChooseBusiness(r.Context(), r.PostFormValue("negocio_id"))
	if err != nil {
		s.fail(w, r, err, "No se pudo asignar el negocio.", "/perfil")
		return
	}
	msg := "Negocio asignado."
	if name != "" {
		msg = "Negocio asignado: " + name + "."
	}
	s.done(w, r, msg, "/perfil")
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var accessToken string
	if st := stateFrom(r.Context()); st != nil {
		accessToken, _ = st.creds.Tokens()
	}

	err := s.profile.ChangePassword(r.Context(), accessToken, r.PostFormValue("password"), r.PostFormValue("confirm"))
	if err != nil {
		s.fail(w, r, err, "No se pudo actualizar la contraseña.", "/perfil")
		return
	}
	s.done(w, r, "Contraseña actualizada.", "/perfil")
}
