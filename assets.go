package main

import (
	"embed"
	"html/template"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tradesy30/portfolio/internal/catalog"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	"monthYear": func(p catalog.Project) string {
		t, err := p.Published()
		if err != nil || t.IsZero() {
			return ""
		}
		return t.Format("January 2006")
	},
	"initial": initial,
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
}

// initial is the upper-cased first rune of s.
func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}
