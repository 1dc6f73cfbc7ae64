package main

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

func router(config *Global) (http.Handler, error) {
	router := mux.NewRouter()
	POST := router.Methods("POST").Subrouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h := &handler{Global: config, router: router}

	GET.HandleFunc("/", h.Index).Name("index")
	GET.HandleFunc("/subject/{id}", h.Subject).Name("subject")
	GET.HandleFunc("/api/names", h.APINames).Name("names")
	GET.HandleFunc("/api/subject/{id}", h.APISubject).Name("api-subject")
	GET.HandleFunc("/chart/{id}/{kind:(?:bar|bubble|gauge)}.png", h.Chart).Name("chart")
	GET.HandleFunc("/goroutines", h.Goroutines)
	GET.HandleFunc("/version", h.Version)

	//
	// POST
	//
	POST.Handle("/", http.NotFoundHandler())
	POST.HandleFunc("/reload", h.Reload)

	// Static assets
	assetFilesystem, err := fs.Sub(h.Templates(), "static")
	if err != nil {
		return nil, err
	}

	// Static assets
	GET.PathPrefix(h.Assets()).Handler(
		middleware.MaxAgeHandler(60*60*24*364,
			http.StripPrefix(h.Assets(), http.FileServer(http.FS(assetFilesystem)))))

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
	)

	return standard.Then(router), nil
}
