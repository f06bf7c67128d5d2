package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/services"
)

// maxUploadBytes bounds a single DTE upload.
const maxUploadBytes = 10 << 20

type uploadView struct {
	Result *services.UploadResult
}

func (s *Server) uploadPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "upload.html", "Subir XML", uploadView{})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		msg := "Selecciona un archivo XML."
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			msg = "El archivo es demasiado grande."
		}
		s.renderUpload(w, r, http.StatusBadRequest, nil, msg)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.renderUpload(w, r, http.StatusBadRequest, nil, "No se pudo leer el archivo.")
		return
	}

	res, err := s.uploads.Upload(r.Context(), header.Filename, content)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.expire(w, r, s.session(r))
			return
		}
		status := http.StatusBadGateway
		if services.FieldErrors(err) != nil {
			status = http.StatusBadRequest
		}
		s.renderUpload(w, r, status, nil, services.Message(err, "Error al subir el archivo."))
		return
	}

	s.renderUpload(w, r, http.StatusOK, res, "")
}

func (s *Server) renderUpload(w http.ResponseWriter, r *http.Request, status int, res *services.UploadResult, errMsg string) {
	p := &page{Title: "Subir XML", Data: uploadView{Result: res}}
	if res != nil {
		p.Notices = []string{res.Message}
	}
	if errMsg != "" {
		p.Errors = []string{errMsg}
	}
	s.renderPage(w, r, status, "upload.html", p)
}
