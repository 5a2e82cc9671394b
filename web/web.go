// Package web holds the embedded server-rendered page templates.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/mergestat/timediff"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates with their helper funcs.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		// "3 hours ago" stamps on the project list.
		"reltime": func(t time.Time) string {
			return timediff.TimeDiff(t)
		},
	}).ParseFS(templatesFS, "templates/*.html")
}
