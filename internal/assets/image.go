// Package assets prepares product photography for the CDN: large camera
// exports get scaled down and re-encoded before upload.
package assets

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	// maxEdge keeps gallery images at a sane resolution; the CDN serves
	// responsive variants from this master.
	maxEdge = 1600
	quality = 80
)

// Recompress decodes a JPEG or PNG, scales it down to at most maxEdge pixels
// on the long side and re-encodes it as JPEG.
func Recompress(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxEdge || h > maxEdge {
		scale := float64(maxEdge) / float64(w)
		if h > w {
			scale = float64(maxEdge) / float64(h)
		}
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
