package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pageData is what every template receives.
type pageData struct {
	Title   string
	Flash   *Flash
	Session *session
	Year    int
	Data    any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page, title string, sess *session, data any) {
	tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		s.logger.Error("parse template", "page", page, "err", err)
		http.Error(w, msgUnexpected, http.StatusInternalServerError)
		return
	}
	pd := pageData{
		Title:   title,
		Flash:   s.popFlash(w, r),
		Session: sess,
		Year:    time.Now().Year(),
		Data:    data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", pd); err != nil {
		s.logger.Error("render template", "page", page, "err", err)
	}
}
