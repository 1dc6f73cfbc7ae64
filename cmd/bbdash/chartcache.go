package main

import (
	"fmt"
	"sync"

	"github.com/carbocation/bellybutton/chartpng"
	"github.com/carbocation/bellybutton/dataset"
	"github.com/carbocation/bellybutton/panel"
)

const chartCacheSize = 512

type chartKey struct {
	Generation    uint64
	Subject       string
	Kind          chartpng.Kind
	Width, Height int
	Zoom          panel.Zoom
}

func newChartKey(generation uint64, subject dataset.ID, kind chartpng.Kind, width, height int, zoom panel.Zoom) chartKey {
	return chartKey{
		Generation: generation,
		// Quoting distinguishes the string "940" from the number 940
		Subject: fmt.Sprintf("%t:%s", subject.Quoted, subject.Text),
		Kind:    kind,
		Width:   width,
		Height:  height,
		Zoom:    zoom,
	}
}

// chartCache holds rendered PNGs. When full it is emptied rather than
// evicting one entry at a time.
type chartCache struct {
	mu    sync.RWMutex
	max   int
	items map[chartKey]chartpng.Image
}

func newChartCache(max int) *chartCache {
	return &chartCache{
		max:   max,
		items: make(map[chartKey]chartpng.Image),
	}
}

func (c *chartCache) Get(k chartKey) (chartpng.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	img, ok := c.items[k]
	return img, ok
}

func (c *chartCache) Put(k chartKey, img chartpng.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.max {
		c.items = make(map[chartKey]chartpng.Image)
	}
	c.items[k] = img
}

func (c *chartCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[chartKey]chartpng.Image)
}

func (c *chartCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
