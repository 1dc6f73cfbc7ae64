package chartpng

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	parsedOnce sync.Once
	parsedFont *truetype.Font
)

// fontFace returns the Go Regular face at the given size, falling back to
// the fixed 7x13 face if the embedded font cannot be parsed.
func fontFace(points float64) font.Face {
	parsedOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err == nil {
			parsedFont = f
		}
	})

	if parsedFont == nil {
		return basicfont.Face7x13
	}

	return truetype.NewFace(parsedFont, &truetype.Options{Size: points})
}
