package mediaproc

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxThumbEdge = 480
	thumbQuality = 80
)

// Thumbnail decodes a jpeg/png photo and re-encodes a bounded webp preview.
// Approval pages embed these instead of multi-megabyte originals.
func Thumbnail(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxThumbEdge || h > maxThumbEdge {
		if w >= h {
			h = h * maxThumbEdge / w
			w = maxThumbEdge
		} else {
			w = w * maxThumbEdge / h
			h = maxThumbEdge
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: thumbQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
