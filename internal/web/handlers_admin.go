package web

import (
	"net/http"

	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/dmitrijs2005/factorg/internal/services"
)

type usersView struct {
	*services.UsersView
	Roles []string
}

func (s *Server) usersPage(w http.ResponseWriter, r *http.Request) {
	v, err := s.admin.Users(r.Context())
	if err != nil {
		s.failPage(w, r, err, "No se pudieron cargar los usuarios.")
		return
	}
	s.render(w, r, http.StatusOK, "users.html", "Administrar usuarios", usersView{UsersView: v, Roles: services.Roles})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	form := services.UserForm{
		Role:         r.PostFormValue("rol"),
		CanDashboard: formBool(r, "puede_ver_dashboard"),
		CanUpload:    formBool(r, "puede_subir_xml"),
		CanTables:    formBool(r, "puede_ver_tablas"),
		Active:       formBool(r, "activo"),
		BusinessID:   r.PostFormValue("negocio_id"),
	}
	if err := s.admin.UpdateUser(r.Context(), id, form); err != nil {
		s.fail(w, r, err, "No se pudo actualizar el usuario.", "/admin/usuarios")
		return
	}
	s.done(w, r, "Usuario actualizado.", "/admin/usuarios")
}

type businessesView struct {
	Businesses []models.Business
	Form       services.BusinessForm
}

func (s *Server) businessesPage(w http.ResponseWriter, r *http.Request) {
	list, err := s.admin.Businesses(r.Context())
	if err != nil {
		s.failPage(w, r, err, "No se pudieron cargar los negocios.")
		return
	}
	s.render(w, r, http.StatusOK, "businesses.html", "Administrar negocios", businessesView{Businesses: list})
}

func (s *Server) createBusiness(w http.ResponseWriter, r *http.Request) {
	form := services.BusinessForm{
		Name:      r.PostFormValue("nombre"),
		RUT:       r.PostFormValue("rut_receptor"),
		LegalName: r.PostFormValue("razon_social"),
		Email:     r.PostFormValue("correo"),
		Address:   r.PostFormValue("direccion"),
	}

	b, err := s.admin.CreateBusiness(r.Context(), form)
	if fields := services.FieldErrors(err); fields != nil {
		list, lerr := s.admin.Businesses(r.Context())
		if lerr != nil {
			list = []models.Business{}
		}
		s.renderPage(w, r, http.StatusUnprocessableEntity, "businesses.html", &page{
			Title:  "Administrar negocios",
			Fields: fields,
			Data:   businessesView{Businesses: list, Form: form},
		})
		return
	}
	if err != nil {
		s.fail(w, r, err, "No se pudo crear el negocio.", "/admin/negocios")
		return
	}
	s.done(w, r, "Negocio creado: "+b.Name+".", "/admin/negocios")
}
