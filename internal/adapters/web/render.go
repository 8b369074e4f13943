package web

import (
	"embed"
	"html/template"
	"io"

	"hotel_app/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// RenderPage writes the full document for pv.
func RenderPage(w io.Writer, pv domain.PageView) error {
	return tmpl.ExecuteTemplate(w, "page", pv)
}

// RenderMessage writes only the success element, for partial updates.
func RenderMessage(w io.Writer, pv domain.PageView) error {
	return tmpl.ExecuteTemplate(w, "message", pv)
}
