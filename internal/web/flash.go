package web

import (
	"net/http"
	"net/url"
	"strings"
)

// Flash categories map to the alert styles in the layout template.
const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashDanger  = "danger"
)

const flashCookie = "pts_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message  string
	Category string
}

// flash queues a message for the next page load via a short-lived cookie.
func (s *Server) flash(w http.ResponseWriter, message, category string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(raw, "|")
	if !found {
		return &Flash{Message: raw, Category: flashWarning}
	}
	return &Flash{Message: message, Category: category}
}
