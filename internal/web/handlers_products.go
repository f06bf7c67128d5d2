package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/dmitrijs2005/factorg/internal/services"
)

type productsView struct {
	*services.ProductList
	Query url.Values
}

func (s *Server) productsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ProductFilter{
		Name:        q.Get("nombre"),
		Code:        q.Get("codigo"),
		Folio:       q.Get("folio"),
		AdminCodeID: q.Get("cod_admin_id"),
		From:        q.Get("fecha_inicio"),
		To:          q.Get("fecha_fin"),
	}

	list, err := s.products.List(r.Context(), filter, queryPage(r))
	if err != nil {
		s.failPage(w, r, err, "No se pudieron cargar los productos.")
		return
	}
	s.render(w, r, http.StatusOK, "products.html", "Productos", productsView{ProductList: list, Query: q})
}

type productView struct {
	*services.ProductDetail
	Back string
}

func (s *Server) productPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "Producto no encontrado.")
		return
	}

	d, err := s.products.Detail(r.Context(), id)
	if err != nil {
		s.failPage(w, r, err, "No se pudo cargar el producto.")
		return
	}
	back := localPath(r.URL.Query().Get("volver"), "/leerProd")
	s.render(w, r, http.StatusOK, "product.html", "Producto "+d.Product.Name, productView{ProductDetail: d, Back: back})
}

func productURL(id int) string { return "/productos/" + strconv.Itoa(id) }

func (s *Server) renameProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := localPath(r.PostFormValue("volver"), productURL(id))
	if err := s.products.Rename(r.Context(), id, r.PostFormValue("nombre")); err != nil {
		s.fail(w, r, err, "No se pudo renombrar el producto.", back)
		return
	}
	s.done(w, r, "Producto actualizado.", back)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := localPath(r.PostFormValue("volver"), "/leerProd")
	if err := s.products.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "No se pudo eliminar el producto.", back)
		return
	}
	s.done(w, r, "Producto eliminado.", back)
}

func (s *Server) setPercentage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.products.SetAdditionalPercentage(r.Context(), id, r.PostFormValue("porcentaje_adicional")); err != nil {
		s.fail(w, r, err, "No se pudo actualizar el porcentaje adicional.", productURL(id))
		return
	}
	s.done(w, r, "Porcentaje adicional actualizado.", productURL(id))
}

func (s *Server) setOthers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.products.SetOthers(r.Context(), id, r.PostFormValue("otros")); err != nil {
		s.fail(w, r, err, "No se pudo actualizar el campo otros.", productURL(id))
		return
	}
	s.done(w, r, "Campo otros actualizado.", productURL(id))
}

func (s *Server) assignAdminCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.products.AssignAdminCode(r.Context(), id, r.PostFormValue("cod_admin_id")); err != nil {
		s.fail(w, r, err, "No se pudo asignar el código admin.", productURL(id))
		return
	}
	s.done(w, r, "Código admin asignado.", productURL(id))
}
