package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"ereport-admin/internal/authz"
)

//go:embed templates static
var files embed.FS

const dateTimeLayout = "02.01.2006 15:04"

var funcs = template.FuncMap{
	"roleTitle": authz.RoleTitle,
	"datetime": func(t interface{}) string {
		switch v := t.(type) {
		case time.Time:
			if v.IsZero() {
				return "—"
			}
			return v.Local().Format(dateTimeLayout)
		case *time.Time:
			if v == nil || v.IsZero() {
				return "—"
			}
			return v.Local().Format(dateTimeLayout)
		}
		return ""
	},
	"yesno": func(b bool) string {
		if b {
			return "Да"
		}
		return "Нет"
	},
	// safeHTML только для описаний, прошедших bluemonday при сохранении.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	"add":      func(a, b int) int { return a + b },
}

// Renderer — echo.Renderer поверх встроенных шаблонов. Каждая страница
// собирается вместе с общим layout и исполняется через шаблон "base".
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout/*.html", page)
		if err != nil {
			return nil, fmt.Errorf("шаблон %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("шаблон %q не найден", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// Static — css и js панели.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
