// Package termsink plays composited frames into the terminal.
//
// It implements player.Sink. Frames are drawn in place (the cursor is
// saved before the first frame and restored before each following one),
// either as real terminal graphics via rasterm (kitty, iTerm2, sixel)
// or as colored character cells. Sound cues cannot be played by a
// terminal; they are pinned in the session's sound registry and logged,
// and audio output stays with the embedder.
package termsink

import (
	"fmt"
	"image"
	ic "image/color"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/golang/glog"
	"github.com/gookit/color"
	"github.com/nfnt/resize"

	"github.com/oleite/go-msagent/sound"
)

// Mode selects how frames are put on screen.
type Mode int

const (
	// ModeAuto uses terminal graphics where the terminal supports any
	// (kitty, iTerm2/WezTerm, sixel) and falls back to 24 bit cells.
	ModeAuto Mode = iota
	Mode24Bit
	Mode256Color
	ModeNoColor
)

// Options configures a Sink.
type Options struct {
	Mode Mode
	// Blanks draws colored blanks instead of ascii shading in the cell
	// modes.
	Blanks bool
	// Scale resizes frames by the passed factor before drawing; 0 and 1
	// keep the native size. Nearest neighbor, these are pixel sprites.
	Scale float64
	// Downsize fits frames to the terminal when they would not fit.
	Downsize bool
	// Sounds, when set, receives the playback's sound cues.
	Sounds *sound.Registry
}

// Sink draws playback events into the terminal. Create with New; use a
// single Sink per playback run.
type Sink struct {
	opts   Options
	frames int
}

func New(opts Options) *Sink {
	return &Sink{opts: opts}
}

// FrameReady draws the frame over the previous one.
func (s *Sink) FrameReady(img image.Image) {
	img = s.fit(img)

	if s.frames == 0 {
		fmt.Printf("\x1b7") // save cursor
	} else {
		fmt.Printf("\x1b8") // restore cursor, draw over the last frame
	}
	s.frames++

	switch s.opts.Mode {
	case Mode24Bit:
		s.cells(img, true, false)
	case Mode256Color:
		s.cells(img, false, false)
	case ModeNoColor:
		s.cells(img, false, true)
	default:
		s.auto(img)
	}
}

// PlaySound pins the cue in the registry and logs it. Never blocks on
// anything but disk the first time a cue is seen.
func (s *Sink) PlaySound(name string) {
	if s.opts.Sounds == nil {
		glog.V(1).Infof("sound cue %q ignored, no registry", name)
		return
	}
	b := s.opts.Sounds.Load(name)
	glog.Infof("sound cue %q (%d bytes)", name, len(b))
}

// Finished resets terminal attributes.
func (s *Sink) Finished() {
	fmt.Printf("\x1b[0m\n")
}

func (s *Sink) fit(img image.Image) image.Image {
	if s.opts.Scale > 0 && s.opts.Scale != 1.0 {
		w := uint(float64(img.Bounds().Dx()) * s.opts.Scale)
		img = resize.Resize(w, 0, img, resize.NearestNeighbor)
	}
	if s.opts.Downsize {
		if ts, err := terminalSize(); err == nil {
			if ts.XPixel != 0 && ts.YPixel != 0 && s.opts.Mode == ModeAuto {
				img = resize.Thumbnail(ts.XPixel/2, ts.YPixel/2, img, resize.Lanczos3)
			} else {
				// Cell renderers spend two columns per pixel.
				img = resize.Thumbnail(ts.Cols/2, ts.Rows, img, resize.Lanczos3)
			}
		} else {
			glog.V(1).Infof("could not size terminal: %v", err)
		}
	}
	return img
}

// auto draws with real terminal graphics where available.
func (s *Sink) auto(img image.Image) {
	if rasterm.IsTermKitty() {
		rasterm.Settings{}.KittyWriteImage(os.Stdout, img)
		fmt.Printf("\n")
		return
	}
	if rasterm.IsTermItermWez() {
		rasterm.Settings{}.ItermWriteImage(os.Stdout, img)
		fmt.Printf("\n")
		return
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		palettedImage := image.NewPaletted(img.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, img.Bounds(), img, image.ZP)
		rasterm.Settings{}.SixelWriteImage(os.Stdout, palettedImage)
		fmt.Printf("\n")
		return
	}
	s.cells(img, true, false)
}

// cells draws the frame as two-column character cells.
func (s *Sink) cells(img image.Image, trueColor, noColor bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			shade(img.At(x, y), trueColor, s.opts.Blanks, noColor)
		}
		fmt.Printf("\x1b[0m\n")
	}
}

type dumper interface {
	Printf(s string, arg ...interface{})
}

type fmtDumperT struct{}

func (fmtDumperT) Printf(s string, arg ...interface{}) {
	fmt.Printf(s, arg...)
}

var fmtDumper fmtDumperT

func shade(col ic.Color, trueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Printf("\x1b[0m  ")
		return
	}

	var d dumper
	if noColor {
		d = &fmtDumper
	} else if trueColor {
		fmt.Printf("\x1b[48;2;%d;%d;%dm", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8))
		d = &fmtDumper
	} else {
		d = color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true)
	}

	if blanks {
		d.Printf("  ")
	} else {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			d.Printf("..")
		case a < 64:
			d.Printf("--")
		case a < 128:
			d.Printf("==")
		default:
			d.Printf("##")
		}
	}

	if trueColor {
		fmt.Printf("\x1b[0m")
	}
}
