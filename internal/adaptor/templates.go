package adaptor

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"marketplace-console/internal/dto/response"

	"github.com/shopspring/decimal"
)

// TemplateCache holds one parsed template set per page. Every set carries the
// shared layout and partials.
type TemplateCache struct {
	cache map[string]*template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return "₹" + d.StringFixed(2)
		},
		"date": func(t any) string {
			switch v := t.(type) {
			case time.Time:
				if v.IsZero() {
					return ""
				}
				return v.Format("02 Jan 2006")
			case *time.Time:
				if v == nil || v.IsZero() {
					return ""
				}
				return v.Format("02 Jan 2006")
			}
			return ""
		},
		"join": strings.Join,
		"has": func(items []string, v string) bool {
			for _, it := range items {
				if it == v {
					return true
				}
			}
			return false
		},
		"field": func(errs map[string]string, name string) string {
			return errs[name]
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"inc": func(i int) int { return i + 1 },
		"rowActions": func(actions []response.Action, csrf template.HTML, ret string) map[string]any {
			return map[string]any{"Actions": actions, "CSRF": csrf, "Return": ret}
		},
	}
}

// LoadTemplates parses layout.html with each file of pages/.
func LoadTemplates(fsys fs.FS) (*TemplateCache, error) {
	pages, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	tc := &TemplateCache{cache: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")
		tmpl, err := template.New(name).Funcs(templateFuncs()).ParseFS(fsys, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		tc.cache[name] = tmpl
	}
	return tc, nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	return tc.cache[name]
}
