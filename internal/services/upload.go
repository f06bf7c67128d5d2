package services

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/archive"
	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
)

const (
	msgNoFile        = "Selecciona un archivo XML."
	msgNotXMLName    = "Solo se permiten archivos .xml."
	msgMalformedXML  = "El archivo no es un XML válido."
	msgUploadSuccess = "Archivo subido correctamente."
)

// UploadResult is the outcome for one file.
type UploadResult struct {
	Filename   string
	Message    string
	ArchiveKey string
	Err        error
}

// UploadService forwards DTE XML files to the backend, keeping an archive
// copy when an archive store is configured.
type UploadService interface {
	Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error)
	UploadMany(ctx context.Context, files map[string][]byte, order []string) []UploadResult
}

type uploadService struct {
	client  client.Client
	archive archive.Store
	audit   recorder
	logger  logging.Logger
}

func NewUploadService(c client.Client, store archive.Store, rec audit.Recorder, logger logging.Logger) UploadService {
	if store == nil {
		store = archive.Noop{}
	}
	return &uploadService{client: c, archive: store, audit: newRecorder(rec, logger), logger: logger}
}

// CheckXML rejects empty files, names without the .xml extension and
// content that is not well-formed XML.
func CheckXML(filename string, content []byte) error {
	if filename == "" || len(bytes.TrimSpace(content)) == 0 {
		return invalid("file", msgNoFile)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".xml") {
		return invalid("file", msgNotXMLName)
	}

	dec := xml.NewDecoder(bytes.NewReader(content))
	// DTE files are usually ISO-8859-1; only well-formedness matters here.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }
	root := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return invalid("file", msgMalformedXML)
		}
		if _, ok := tok.(xml.StartElement); ok {
			root = true
		}
	}
	if !root {
		return invalid("file", msgMalformedXML)
	}
	return nil
}

func (s *uploadService) Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	filename = filepath.Base(filename)
	if err := CheckXML(filename, content); err != nil {
		return nil, err
	}

	res := &UploadResult{Filename: filename}

	key, err := s.archive.Put(ctx, filename, client.Email(ctx), content)
	if err != nil {
		s.logger.Warn(ctx, "xml archive failed", "filename", filename, "error", err)
	}
	res.ArchiveKey = key

	msg, err := s.client.UploadXML(ctx, filename, content)
	if err != nil {
		return nil, err
	}
	if msg == "" {
		msg = msgUploadSuccess
	}
	res.Message = msg

	detail := filename
	if key != "" {
		detail += " " + key
	}
	s.audit.record(ctx, audit.ActionUploadXML, filename, detail)
	s.logger.Info(ctx, "xml uploaded", "filename", filename, "bytes", len(content))
	return res, nil
}

// UploadMany uploads files one after another in the given order and reports
// every outcome. It stops early only when ctx is done.
func (s *uploadService) UploadMany(ctx context.Context, files map[string][]byte, order []string) []UploadResult {
	out := make([]UploadResult, 0, len(order))
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			out = append(out, UploadResult{Filename: name, Err: err})
			continue
		}
		res, err := s.Upload(ctx, name, files[name])
		if err != nil {
			out = append(out, UploadResult{Filename: filepath.Base(name), Err: err})
			continue
		}
		out = append(out, *res)
	}
	return out
}
