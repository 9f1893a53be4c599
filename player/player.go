// Package player drives timed playback of character animations: it
// walks the requested animations frame by frame, composites each frame,
// and pushes frame and sound-cue events to a sink.
//
// Playback runs on one dedicated goroutine and produces events strictly
// sequentially; there is no parallelism inside the scheduler. Stopping
// is cooperative: the flag is observed at frame boundaries, never by
// interrupting the in-flight frame wait, so worst case cancellation
// latency is one frame's effective duration.
package player

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/compositor"
)

// minFrameWait is the floor for the per-frame wait, so extreme speed
// values cannot turn playback into a busy loop.
const minFrameWait = 10 * time.Millisecond

// Sink receives playback events. FrameReady carries a composited frame;
// frames of one animation arrive in source order. PlaySound cues arrive
// in the same relative order as their owning frames. Finished is
// delivered exactly once per Run, whether playback exhausted its cycles
// or was stopped.
//
// All three are called from the playback goroutine, so implementations
// must not block for long; a blocking PlaySound would delay frame
// delivery, which the cue contract does not allow.
type Sink interface {
	FrameReady(img image.Image)
	PlaySound(filename string)
	Finished()
}

// Options configures one playback run.
type Options struct {
	// Speed is the playback speed multiplier. Zero means 1.0; values
	// below zero are a caller error.
	Speed float64
	// Cycles is how many full passes over the animation list to play.
	// -1 repeats without bound; zero means 1.
	Cycles int
}

// Player plays a list of animations of one character. Create with New,
// call Run exactly once, typically on its own goroutine.
type Player struct {
	ch     *character.Character
	images *character.Images
	names  []string
	sink   Sink
	opts   Options

	running atomic.Bool
	sleep   func(time.Duration)
}

// New prepares a playback run over the passed animation names, in
// order, possibly with repeats. The image cache must already be
// preloaded.
func New(ch *character.Character, images *character.Images, names []string, sink Sink, opts Options) *Player {
	if opts.Speed == 0 {
		opts.Speed = 1.0
	}
	if opts.Cycles == 0 {
		opts.Cycles = 1
	}
	p := &Player{
		ch:     ch,
		images: images,
		names:  names,
		sink:   sink,
		opts:   opts,
		sleep:  time.Sleep,
	}
	p.running.Store(true)
	return p
}

// Stop requests cooperative cancellation. Idempotent; safe to call from
// any goroutine. Playback ends once the in-flight frame wait completes.
func (p *Player) Stop() {
	p.running.Store(false)
}

// Run plays the configured animations to completion or until stopped,
// then emits Finished exactly once and returns.
func (p *Player) Run() {
	defer p.sink.Finished()

	defaultDuration := p.ch.DefaultFrameDuration()

	for cycle := 0; p.running.Load(); cycle++ {
		if p.opts.Cycles != -1 && cycle >= p.opts.Cycles {
			break
		}
		for _, name := range p.names {
			if !p.running.Load() {
				return
			}
			p.playAnimation(name, defaultDuration)
		}
	}
}

func (p *Player) playAnimation(name string, defaultDuration int) {
	anim := p.ch.Animation(name)
	if anim == nil {
		glog.V(1).Infof("animation %q not in definition; skipping", name)
		return
	}

	for _, frame := range anim.Frames() {
		if !p.running.Load() {
			return
		}

		if img := compositor.ComposeFrame(frame, p.images); img != nil {
			p.sink.FrameReady(img)
		}

		if cue, ok := frame.SoundEffect(); ok {
			p.sink.PlaySound(cue)
		}

		duration, ok := frame.Duration()
		if !ok {
			duration = defaultDuration
		}
		p.sleep(effectiveWait(duration, p.opts.Speed))
	}
}

// effectiveWait converts a frame duration (10 ms units) and a speed
// multiplier into the wall clock wait for the frame.
func effectiveWait(duration int, speed float64) time.Duration {
	d := time.Duration(float64(duration)*10/speed) * time.Millisecond
	if d < minFrameWait {
		return minFrameWait
	}
	return d
}
