// Package gifanim exports character animations as animated GIFs.
//
// Frame durations in the definition are in 10 ms units, which happen to
// be the GIF delay unit (centiseconds), so a frame's delay is its
// duration divided by the playback speed.
package gifanim

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"

	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/compositor"
)

// Render composites every frame of the named animations, in order, into
// one animated GIF. Missing animations and frames with no resolvable
// layers are skipped, like in live playback. Rendering fails only when
// nothing at all could be composed.
func Render(ch *character.Character, images *character.Images, names []string, speed float64) (*gif.GIF, error) {
	if speed <= 0 {
		speed = 1.0
	}
	defaultDuration := ch.DefaultFrameDuration()

	g := &gif.GIF{}
	quantizer := quantize.MedianCutQuantizer{}
	for _, name := range names {
		anim := ch.Animation(name)
		if anim == nil {
			glog.Warningf("animation %q not in definition; skipping", name)
			continue
		}
		for _, frame := range anim.Frames() {
			img := compositor.ComposeFrame(frame, images)
			if img == nil {
				continue
			}

			// Leave palette slot 0 for transparency; the zero-valued
			// paletted image then defaults to transparent.
			pal := quantizer.Quantize(make(color.Palette, 0, 255), img)
			paletted := image.NewPaletted(img.Bounds(), append(color.Palette{color.Transparent}, pal...))
			draw.Draw(paletted, img.Bounds(), img, image.ZP, draw.Over)

			duration, ok := frame.Duration()
			if !ok {
				duration = defaultDuration
			}
			delay := int(float64(duration) / speed)
			if delay < 1 {
				delay = 1
			}

			g.Image = append(g.Image, paletted)
			g.Delay = append(g.Delay, delay)
			g.Disposal = append(g.Disposal, gif.DisposalBackground)
		}
	}
	g.BackgroundIndex = 0

	if len(g.Image) == 0 {
		return nil, fmt.Errorf("no frames composed for %v", names)
	}
	return g, nil
}
