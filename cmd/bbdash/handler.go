package main

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/gorilla/mux"
	"github.com/kardianos/osext"
)

const (
	BaseFilename = "_base.html"
)

//go:embed templates/*.html templates/static
var embeddedTemplates embed.FS

// handler provides global values that must be
// safe for concurrent use from multiple goroutines
// to each handler method.
type handler struct {
	*Global

	router *mux.Router

	// Cached values / do not use directly. If they
	// need to be dynamic in the future, put them
	// under mutex protection.
	assets    *string
	templates fs.FS

	// Mutex protected values
	mu       sync.RWMutex
	template map[string]*template.Template
}

func (h *handler) Assets() string {
	if h.assets == nil {
		h.Global.log.Println("Initializing Assets")

		glyphs := fmt.Sprintf("/%s", RandHeteroglyphs(10))
		h.assets = &glyphs
	}

	return *h.assets
}

// Templates is the filesystem holding the HTML templates and static assets.
func (h *handler) Templates() fs.FS {
	if h.templates != nil {
		return h.templates
	}

	dir := h.Global.TemplateDir
	if dir == "" {
		if folder, err := osext.ExecutableFolder(); err == nil {
			if st, err := os.Stat(filepath.Join(folder, "templates")); err == nil && st.IsDir() {
				dir = filepath.Join(folder, "templates")
			}
		}
	}

	if dir != "" {
		h.Global.log.Printf("Reading templates from %s\n", dir)
		h.templates = os.DirFS(dir)
		return h.templates
	}

	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Errorf(`handler.go:Templates: %s`, err))
	}
	h.templates = sub

	return h.templates
}

func (h *handler) Template(templateFilename string) *template.Template {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.template == nil {
		func() {
			h.mu.RUnlock()
			h.mu.Lock()
			defer func() {
				h.mu.Unlock()
				h.mu.RLock()
			}()

			if h.template != nil {
				return
			}

			h.Global.log.Println("Initializing HTML templates")
			h.template = make(map[string]*template.Template)

			tpl, err := template.New(BaseFilename).Funcs(template.FuncMap{
				"add":        func(a, b int) int { return a + b },
				"pathEscape": url.PathEscape,
			}).ParseFS(h.Templates(), "_*.html")
			if err != nil {
				h.Global.log.Printf("handler.go:Template: %s\n", err)
				panic(fmt.Errorf(`handler.go:Template: %s`, err))
			}

			h.template[BaseFilename] = tpl
		}()
	}

	// Prevent execution of the BaseFilename template, which would prevent future copies
	templateName := templateFilename
	if templateFilename == BaseFilename {
		templateName = fmt.Sprintf("CLONE%s", BaseFilename)
	}

	// Specific sub-template has already been generated
	if tpl, ok := h.template[templateName]; ok {
		return tpl
	}

	// Generate a clone of the base template so you don't contaminate it with the
	// derivative template's `define` statements.
	h.Global.log.Println("Initializing HTML template for", templateFilename)
	tpl, err := template.Must(h.template[BaseFilename].Clone()).ParseFS(h.Templates(), templateFilename)
	if err != nil {
		panic(fmt.Errorf(`handler.go:Template: %s`, err))
	}
	h.mu.RUnlock()
	h.mu.Lock()
	h.template[templateName] = tpl
	h.mu.Unlock()
	h.mu.RLock()

	return tpl
}
