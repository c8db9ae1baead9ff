package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateSet map[string]*template.Template

var templateFuncs = template.FuncMap{
	"fmtLength": func(seconds int) string {
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	},
	"fmtDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"fmtTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

// parseTemplates builds one template per page, each sharing the base layout.
func parseTemplates() (templateSet, error) {
	pages := []string{
		"login",
		"register",
		"dashboard",
		"search",
		"collections",
		"collection",
		"users",
		"error",
	}

	set := make(templateSet, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("base").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		set[page] = tmpl
	}
	return set, nil
}
