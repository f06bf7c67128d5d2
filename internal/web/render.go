package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/guard"
	"github.com/dmitrijs2005/factorg/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"login.html",
	"register.html",
	"dashboard.html",
	"upload.html",
	"products.html",
	"product.html",
	"invoices.html",
	"invoice.html",
	"users.html",
	"businesses.html",
	"profile.html",
	"error.html",
}

var templateFuncs = template.FuncMap{
	"clp":      models.FormatCLP,
	"clpPtr":   models.FormatCLPPtr,
	"negative": models.IsNegative,
	"str":      deref,
	"num":      formatNumber,
	"isSel":    isSelected,
	"pageURL":  pageURL,
	"css":      func(s string) template.CSS { return template.CSS(s) },
	"add":      func(a, b int) int { return a + b },
	"checked": func(b bool) template.HTMLAttr {
		if b {
			return "checked"
		}
		return ""
	},
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// page is the data every template receives.
type page struct {
	Title   string
	Path    string
	User    *models.User
	Nav     []guard.NavItem
	Notices []string
	Errors  []string
	Fields  map[string]string
	Data    any
}

func (p *page) Field(name string) string {
	return p.Fields[name]
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	s.renderPage(w, r, status, name, &page{Title: title, Data: data})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, p *page) {
	t, ok := s.views.pages[name]
	if !ok {
		s.logger.Error(r.Context(), "unknown template", "name", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p.Path = r.URL.Path
	if st := stateFrom(r.Context()); st != nil {
		p.User = st.user
		p.Nav = guard.NavItems(st.user)
	}

	sess := s.session(r)
	if ok := takeFlashes(sess, flashOK); len(ok) > 0 {
		p.Notices = append(ok, p.Notices...)
	}
	if errs := takeFlashes(sess, flashError); len(errs) > 0 {
		p.Errors = append(errs, p.Errors...)
	}
	s.saveSession(w, r, sess)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		s.logger.Error(r.Context(), "render failed", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.renderPage(w, r, status, "error.html", &page{Title: "Error", Errors: []string{msg}})
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func isSelected(id int, current *int) bool {
	return current != nil && *current == id
}

// pageURL is base with q and page=n as query.
func pageURL(base string, q url.Values, n int) string {
	v := url.Values{}
	for k, vals := range q {
		if k == "page" {
			continue
		}
		for _, val := range vals {
			if strings.TrimSpace(val) != "" {
				v.Add(k, val)
			}
		}
	}
	v.Set("page", strconv.Itoa(n))
	return base + "?" + v.Encode()
}
