// Package view renders a screen snapshot as a server-side HTML page.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/screen"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RefreshSeconds is how often the page reloads itself while toggles are
// pending.
const RefreshSeconds = 1

// Page is everything one render needs.
type Page struct {
	Title  string
	Screen screen.Snapshot
	Toasts []notify.Notification
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").Funcs(template.FuncMap{
		"badgeClass": BadgeClass,
		"allRoles":   domain.AllRoles,
		"hasRole":    func(s domain.RoleSet, r domain.Role) bool { return s.Has(r) },
		"lastActive": lastActive,
		"refresh":    func() int { return RefreshSeconds },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Manage Users"
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", p)
}

func lastActive(s string) string {
	if s == "" {
		return "Never"
	}
	return s
}
