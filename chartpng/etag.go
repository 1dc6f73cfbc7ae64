package chartpng

import (
	"fmt"

	"github.com/minio/blake2b-simd"
)

// Image is an encoded PNG and its entity tag.
type Image struct {
	PNG  []byte
	ETag string
}

func newImage(png []byte) Image {
	return Image{PNG: png, ETag: ETag(png)}
}

// ETag is a strong HTTP entity tag: the quoted blake2b-256 hash of b.
func ETag(b []byte) string {
	h, err := blake2b.New(&blake2b.Config{Size: 32})
	if err != nil {
		return ""
	}
	if _, err := h.Write(b); err != nil {
		return ""
	}

	return fmt.Sprintf(`"%X"`, h.Sum(nil))
}
