// Package compose turns an AtlasResult into the final atlas image: it
// allocates the canvas, blits every trimmed sprite region at its placement,
// and encodes the result as PNG.
package compose

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/sprite"
)

// Render composites the atlas pixel buffer. The canvas starts fully
// transparent; each sprite's trimmed region is copied verbatim to its
// placement origin with draw.Src — no resampling, no blending.
func Render(res *sprite.AtlasResult) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, res.Plan.Width, res.Plan.Height))

	for _, it := range res.Items {
		dst := image.Rect(
			it.Placement.X,
			it.Placement.Y,
			it.Placement.X+it.Trim.Width,
			it.Placement.Y+it.Trim.Height,
		)
		src := it.Image.RGBA.Bounds().Min.Add(image.Pt(it.Trim.OffsetX, it.Trim.OffsetY))
		draw.Draw(canvas, dst, it.Image.RGBA, src, draw.Src)
	}
	return canvas
}

// EncodePNG encodes img with best compression. Sprite sheets ship to clients,
// so encode time is traded for size.
func EncodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode atlas png")
	}
	return buf.Bytes(), nil
}
