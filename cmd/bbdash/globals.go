package main

import (
	"context"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/projector"
	"github.com/carbocation/bellybutton/relayout"
)

type Global struct {
	log           logger
	storageClient *storage.Client

	Site      string
	Company   string
	Email     string
	SnailMail string

	Source  dataset.Source
	Options projector.Options

	// TemplateDir overrides where templates are read from. Empty means the
	// templates folder next to the binary if there is one, otherwise the
	// embedded copies.
	TemplateDir string

	m          sync.RWMutex
	dataset    *dataset.Dataset
	generation uint64
	charts     *chartCache

	reloader *relayout.Coalescer
}

// Dataset returns the current snapshot. Callers keep using the snapshot they
// got even if a reload swaps in a new one meanwhile.
func (g *Global) Dataset() *dataset.Dataset {
	g.m.RLock()
	defer g.m.RUnlock()

	return g.dataset
}

// Snapshot returns the current dataset with its generation, which changes on
// every swap.
func (g *Global) Snapshot() (*dataset.Dataset, uint64) {
	g.m.RLock()
	defer g.m.RUnlock()

	return g.dataset, g.generation
}

// SetDataset swaps in ds and forgets every chart drawn from the old one.
func (g *Global) SetDataset(ds *dataset.Dataset) {
	g.m.Lock()
	defer g.m.Unlock()

	g.dataset = ds
	g.generation++
	if g.charts == nil {
		g.charts = newChartCache(chartCacheSize)
	}
	g.charts.Reset()
}

func (g *Global) Charts() *chartCache {
	g.m.Lock()
	defer g.m.Unlock()

	if g.charts == nil {
		g.charts = newChartCache(chartCacheSize)
	}

	return g.charts
}

// Reload fetches the dataset again from its source.
func (g *Global) Reload(ctx context.Context) error {
	ds, err := dataset.Load(ctx, g.Source, g.storageClient)
	if err != nil {
		return err
	}

	g.SetDataset(ds)
	g.log.Printf("Loaded %d subjects from %s\n", len(ds.Names), g.Source)

	return nil
}

// StartReloader prepares the coalesced reload triggered by SIGHUP and by
// POST /reload. Runs stop once ctx is done.
func (g *Global) StartReloader(ctx context.Context) {
	g.reloader = relayout.New(ctx, g.Reload)
	g.reloader.OnError = func(err error) {
		g.log.Println("Reload failed, keeping the previous dataset:", err)
	}
}

// RequestReload schedules a reload; overlapping requests collapse into one.
func (g *Global) RequestReload() relayout.Outcome {
	return g.reloader.Trigger()
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
