package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/dmitrijs2005/factorg/internal/services"
)

type invoicesView struct {
	*services.InvoiceList
	Query url.Values
	Self  string
}

func (s *Server) invoicesPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.InvoiceFilter{
		SupplierRUT: q.Get("proveedor_rut"),
		Folio:       q.Get("folio"),
		From:        q.Get("fecha_inicio"),
		To:          q.Get("fecha_fin"),
	}

	list, err := s.invoices.List(r.Context(), filter, queryPage(r))
	if err != nil {
		s.failPage(w, r, err, "No se pudieron cargar las facturas.")
		return
	}

	p := &page{Title: "Facturas", Data: invoicesView{InvoiceList: list, Query: q, Self: r.URL.RequestURI()}}
	if list.Notice != "" {
		p.Errors = []string{list.Notice}
	}
	s.renderPage(w, r, http.StatusOK, "invoices.html", p)
}

type invoiceView struct {
	*services.InvoiceDetail
	Self string
}

func invoiceURL(id int) string { return "/facturas/" + strconv.Itoa(id) }

func (s *Server) invoicePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "Factura no encontrada.")
		return
	}

	d, err := s.invoices.Detail(r.Context(), id)
	if err != nil {
		s.failPage(w, r, err, "No se pudo cargar la factura.")
		return
	}
	s.render(w, r, http.StatusOK, "invoice.html", "Factura "+d.Invoice.Folio, invoiceView{InvoiceDetail: d, Self: invoiceURL(id)})
}

func (s *Server) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := localPath(r.PostFormValue("volver"), "/leerFact")
	if err := s.invoices.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "No se pudo eliminar la factura.", back)
		return
	}
	s.done(w, r, "Factura eliminada.", back)
}

func (s *Server) assignBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.invoices.AssignBusiness(r.Context(), id, r.PostFormValue("negocio_id")); err != nil {
		s.fail(w, r, err, "No se pudo asignar el negocio.", invoiceURL(id))
		return
	}
	s.done(w, r, "Negocio asignado a la factura.", invoiceURL(id))
}
