package main

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/carbocation/bellybutton/chartpng"
	"github.com/carbocation/bellybutton/compileinfo"
	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/panel"
	"github.com/gorilla/mux"
)

// dashboard is what subject.html needs to lay out one subject.
type dashboard struct {
	Subjects []dataset.ID
	Current  string
	Panel    panel.Panel
	Zoom     panel.Zoom
	Width    int
	Height   int
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	ds := h.Global.Dataset()
	subjects := ds.Subjects()
	if len(subjects) == 0 {
		Render(h, w, r, h.Global.Site, "index.html", nil, nil)
		return
	}

	h.dashboard(w, r, ds, subjects[0])
}

func (h *handler) Subject(w http.ResponseWriter, r *http.Request) {
	ds := h.Global.Dataset()
	h.dashboard(w, r, ds, ds.ParseID(mux.Vars(r)["id"]))
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request, ds *dataset.Dataset, subject dataset.ID) {
	zoom, err := parseZoom(r)
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	p, err := panel.Build(ds, subject, zoom, h.Global.Options)
	if errors.Is(err, dataset.ErrSubjectNotFound) {
		HTTPError(h, w, r, err, http.StatusNotFound)
		return
	} else if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	output := dashboard{
		Subjects: ds.Subjects(),
		Current:  subject.Text,
		Panel:    p,
		Zoom:     zoom,
		Width:    chartpng.DefaultWidth,
		Height:   chartpng.DefaultHeight,
	}

	Render(h, w, r, fmt.Sprintf("Subject %s", subject), "subject.html", output, nil)
}

func (h *handler) APINames(w http.ResponseWriter, r *http.Request) {
	subjects := h.Global.Dataset().Subjects()

	names := make([]string, 0, len(subjects))
	for _, id := range subjects {
		names = append(names, id.Text)
	}

	Render(h, w, r, "", "", names, &renderOpts{OutputFormat: JSON})
}

func (h *handler) APISubject(w http.ResponseWriter, r *http.Request) {
	zoom, err := parseZoom(r)
	if err != nil {
		JSONError(h, w, r, err, http.StatusBadRequest)
		return
	}

	ds := h.Global.Dataset()
	p, err := panel.Build(ds, ds.ParseID(mux.Vars(r)["id"]), zoom, h.Global.Options)
	if errors.Is(err, dataset.ErrSubjectNotFound) {
		JSONError(h, w, r, err, http.StatusNotFound)
		return
	} else if err != nil {
		JSONError(h, w, r, err)
		return
	}

	Render(h, w, r, "", "", p, &renderOpts{OutputFormat: JSON})
}

func (h *handler) Chart(w http.ResponseWriter, r *http.Request) {
	kind, err := chartpng.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		HTTPError(h, w, r, err, http.StatusNotFound)
		return
	}

	zoom, err := parseZoom(r)
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	width, err := queryInt(r, "w")
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}
	height, err := queryInt(r, "h")
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	ds, generation := h.Global.Snapshot()
	subject := ds.ParseID(mux.Vars(r)["id"])

	renderer := chartpng.New(width, height)
	renderer.Only = kind

	key := newChartKey(generation, subject, kind, renderer.Width, renderer.Height, zoom)
	img, ok := h.Global.Charts().Get(key)
	if !ok {
		if _, err := panel.Render(ds, subject, zoom, h.Global.Options, renderer); errors.Is(err, dataset.ErrSubjectNotFound) {
			HTTPError(h, w, r, err, http.StatusNotFound)
			return
		} else if err != nil {
			HTTPError(h, w, r, err)
			return
		}

		img = renderer.Image(kind)
		h.Global.Charts().Put(key, img)
	}

	w.Header().Set("ETag", img.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), img.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprint(len(img.PNG)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(img.PNG)
	}
}

// etagMatches reports whether an If-None-Match header names etag.
func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}

	return false
}

func (h *handler) Reload(w http.ResponseWriter, r *http.Request) {
	outcome := h.Global.RequestReload()
	h.Global.log.Printf("Reload requested by %s: %s\n", GetIPAddress(r), outcome)

	Render(h, w, r, "", "", struct {
		Success bool
		Reload  string
	}{true, outcome.String()}, &renderOpts{OutputFormat: JSON, StatusCode: http.StatusAccepted})
}

func (h *handler) Goroutines(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "There are %d goroutines running\n", runtime.NumGoroutine())
}

func (h *handler) Version(w http.ResponseWriter, r *http.Request) {
	Render(h, w, r, "", "", compileinfo.Get(), &renderOpts{OutputFormat: JSON})
}
