package share

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/chainsim/internal/motion"
)

// Background is the canvas color behind the chain.
var Background = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}

// Bake paints transforms, outermost first, into an image of the given size.
// Transform offsets are relative to the image center.
func Bake(transforms []motion.Transform, size motion.Size) *image.RGBA {
	w, h := int(math.Round(size.Width)), int(math.Round(size.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	cx, cy := float64(w)/2, float64(h)/2
	for _, t := range transforms {
		fill := Background
		if c, err := colorful.Hex(t.Color); err == nil {
			r, g, b := c.RGB255()
			fill = color.RGBA{R: r, G: g, B: b, A: 0xff}
		}
		paint(img, t, cx+t.X, cy+t.Y, fill)
	}
	return img
}

// paint fills one node centered at (px, py) in image coordinates.
func paint(img *image.RGBA, t motion.Transform, px, py float64, fill color.RGBA) {
	reach := t.Reach()
	b := img.Bounds()
	x0 := max(b.Min.X, int(math.Floor(px-reach)))
	x1 := min(b.Max.X, int(math.Ceil(px+reach)))
	y0 := max(b.Min.Y, int(math.Floor(py-reach)))
	y1 := min(b.Max.Y, int(math.Ceil(py+reach)))

	local := t
	local.X, local.Y = 0, 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if local.Contains(float64(x)+0.5-px, float64(y)+0.5-py) {
				img.SetRGBA(x, y, fill)
			}
		}
	}
}

// WritePNG bakes transforms and writes them to path.
func WritePNG(path string, transforms []motion.Transform, size motion.Size) Ack {
	f, err := os.Create(path)
	if err != nil {
		return fail("export failed: %v", err)
	}
	if err := encodePNG(f, Bake(transforms, size)); err != nil {
		return fail("export failed: %v", err)
	}
	return ok("still written to %s", path)
}

// encodePNG encodes img to wc and always closes it. A close error counts as a
// failed write.
func encodePNG(wc io.WriteCloser, img image.Image) error {
	if err := png.Encode(wc, img); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
