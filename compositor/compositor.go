// Package compositor paints one animation frame's image layers into a
// single transparency aware bitmap.
//
// The source assets carry no alpha channel; magenta (255,0,255) is the
// color key and marks a pixel fully transparent. Masking is binary, no
// partial alpha.
package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/glog"

	"github.com/oleite/go-msagent/character"
)

// keyColor is the fixed color key of the format.
var keyColor = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}

// ApplyColorKey returns a copy of src where every pixel matching the
// magenta key color is fully transparent and every other pixel fully
// opaque. src is never written to, so cached base images stay valid for
// reuse by later frames.
func ApplyColorKey(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			c := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 0xFF}
			if c == keyColor {
				// Leave the zero value: fully transparent.
				continue
			}
			dst.SetRGBA(x, y, c)
		}
	}
	return dst
}

// ComposeFrame composites the frame's layers into one bitmap. Layer 0
// is the topmost, so layers are drawn in reverse order and the topmost
// wins. The canvas takes the dimensions of the first layer that
// resolves; layers whose asset is not in the cache are dropped.
//
// A frame with no resolvable layers yields nil, and the caller is
// expected to skip emitting it.
func ComposeFrame(f *character.Frame, images *character.Images) image.Image {
	layers := f.Layers()

	var canvas *image.RGBA
	for i := len(layers) - 1; i >= 0; i-- {
		fn, ok := layers[i].Filename()
		if !ok {
			continue
		}
		src := images.Get(fn)
		if src == nil {
			glog.V(2).Infof("layer %q not in image cache; dropping", fn)
			continue
		}

		masked := ApplyColorKey(src)
		if canvas == nil {
			canvas = image.NewRGBA(masked.Bounds())
		}
		draw.Draw(canvas, canvas.Bounds(), masked, masked.Bounds().Min, draw.Over)
	}

	if canvas == nil {
		return nil
	}
	return canvas
}
