package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/sushihentaime/inkwell/internal/userservice"
)

//go:embed templates/*.html
var pageFS embed.FS

const (
	sessionCookieName = "inkwell_session"
	flashCookieName   = "flash"
)

// parseTemplates builds one template set per page, each combined with the
// shared layout.
func (app *application) parseTemplates() error {
	pages, err := fs.Glob(pageFS, "templates/*.html")
	if err != nil {
		return err
	}

	// sanitized rich text is stored as HTML and rendered as-is
	funcs := template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		if name == "layout" {
			continue
		}

		t, err := template.New(name).Funcs(funcs).ParseFS(pageFS, "templates/layout.html", page)
		if err != nil {
			return fmt.Errorf("could not parse template %s: %w", page, err)
		}
		templates[name] = t
	}

	app.templates = templates
	return nil
}

type templateData struct {
	CurrentUser *userservice.User
	Flash       string
	Data        any
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := app.templates[page]
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("template %q does not exist", page))
		return
	}

	td := templateData{
		CurrentUser: app.getUserContext(r),
		Flash:       app.popFlash(w, r),
		Data:        data,
	}

	// render to a buffer first so a template error never sends a partial page
	buf := new(bytes.Buffer)
	if err := t.ExecuteTemplate(buf, "layout", td); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// setFlash stores a one-shot notice in a short-lived cookie; the next
// rendered page consumes it.
func (app *application) setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   int((5 * time.Minute).Seconds()),
		HttpOnly: true,
	})
}

func (app *application) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

func (app *application) setSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *application) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
