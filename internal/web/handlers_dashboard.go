package web

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/gorilla/mux"
)

func (s *Server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.DashboardFilter{
		From:        q.Get("fecha_inicio"),
		To:          q.Get("fecha_fin"),
		AdminCodeID: q.Get("cod_admin_id"),
		ProductCode: q.Get("codigo_producto"),
	}

	view := s.dashboard.Load(r.Context(), filter)
	p := &page{Title: "Dashboard", Data: view}
	if view.Failed {
		p.Errors = []string{"No se pudieron cargar los datos del dashboard."}
	}
	s.renderPage(w, r, http.StatusOK, "dashboard.html", p)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	kind := client.ExportKind(mux.Vars(r)["kind"])
	if !kind.Valid() {
		s.renderError(w, r, http.StatusNotFound, "Exportación desconocida.")
		return
	}

	d, err := s.dashboard.Export(r.Context(), kind)
	if err != nil {
		s.fail(w, r, err, "No se pudo generar el archivo.", "/")
		return
	}
	defer d.Body.Close()

	ct := d.ContentType
	if ct == "" {
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", `attachment; filename="`+d.Filename+`"`)
	if _, err := io.Copy(w, d.Body); err != nil {
		s.logger.Warn(r.Context(), "export stream interrupted", "kind", string(kind), "error", err)
	}
}
