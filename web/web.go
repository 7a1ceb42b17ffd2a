// Package web embeds the browser dashboard.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// DashboardTemplate is the template name of the dashboard page.
const DashboardTemplate = "dashboard.html"

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// Static returns the embedded assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the data the dashboard template renders.
type Page struct {
	Title       string
	Heading     string
	Description string
	SourceURL   string
	IntervalMs  int64
	Capacity    int
}
