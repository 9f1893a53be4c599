// Package character provides the typed, read-only view over a parsed
// character definition: the character's global defaults, its animations
// and their frames, and the preloaded image assets the frames reference.
package character

import (
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/oleite/go-msagent/acd"
)

// defaultFrameDuration is used when the Character block does not carry
// a DefaultFrameDuration property. Durations are in 10 ms units.
const defaultFrameDuration = 10

// Character wraps a parsed definition tree together with the directory
// all referenced assets resolve against. It is immutable after
// construction.
type Character struct {
	root    *acd.Node
	baseDir string
}

// FromPath loads and parses the definition file at the passed path. The
// containing directory becomes the character's asset base directory.
// A missing file is the only error.
func FromPath(acdPath string) (*Character, error) {
	root, err := acd.Load(acdPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading character definition")
	}
	return New(root, filepath.Dir(acdPath)), nil
}

// New wraps an already parsed definition tree.
func New(root *acd.Node, baseDir string) *Character {
	return &Character{root: root, baseDir: baseDir}
}

// BaseDir returns the directory asset filenames resolve against.
func (c *Character) BaseDir() string {
	return c.baseDir
}

// Name returns the character's display name, if the definition carries
// one.
func (c *Character) Name() string {
	ch := c.root.One("Character")
	if ch == nil {
		return ""
	}
	if name, ok := ch.Str("Name"); ok {
		return name
	}
	if info := ch.One("Info"); info != nil {
		if name, ok := info.Str("Name"); ok {
			return name
		}
	}
	return ""
}

// DefaultFrameDuration returns the Character block's default frame
// duration in 10 ms units, falling back to 10 when unset.
func (c *Character) DefaultFrameDuration() int {
	ch := c.root.One("Character")
	if ch == nil {
		return defaultFrameDuration
	}
	return ch.Int("DefaultFrameDuration", defaultFrameDuration)
}

// AnimationNames returns the sorted names of all animations in the
// definition. Animations without a string id are skipped.
func (c *Character) AnimationNames() []string {
	var names []string
	for _, a := range c.root.List("Animation") {
		if name, ok := a.StringID(); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Animation returns the named animation, or nil when the definition has
// no animation of that name. A nil Animation yields zero frames, so
// callers may treat absence as "nothing to play" rather than an error.
func (c *Character) Animation(name string) *Animation {
	for _, a := range c.root.List("Animation") {
		if got, ok := a.StringID(); ok && got == name {
			return &Animation{node: a}
		}
	}
	return nil
}

// Animation is one named animation: an ordered list of frames, playback
// order = source order.
type Animation struct {
	node *acd.Node
}

// Name returns the animation's name.
func (a *Animation) Name() string {
	name, _ := a.node.StringID()
	return name
}

// Frames returns the animation's frames in playback order. Safe to call
// on a nil Animation.
func (a *Animation) Frames() []*Frame {
	if a == nil {
		return nil
	}
	nodes := a.node.List("Frame")
	frames := make([]*Frame, len(nodes))
	for i, n := range nodes {
		frames[i] = &Frame{node: n}
	}
	return frames
}

// Frame is one unit of playback: a stack of image layers, an optional
// duration override and an optional sound cue.
type Frame struct {
	node *acd.Node
}

// Duration returns the frame's duration in 10 ms units, if it declares
// one.
func (f *Frame) Duration() (int, bool) {
	if !f.node.Has("Duration") {
		return 0, false
	}
	return f.node.Int("Duration", 0), true
}

// SoundEffect returns the frame's sound cue filename, if it declares
// one.
func (f *Frame) SoundEffect() (string, bool) {
	return f.node.Str("SoundEffect")
}

// Layers returns the frame's image layers. Index 0 is the topmost
// layer; compositing draws the list back to front.
func (f *Frame) Layers() []*ImageLayer {
	nodes := f.node.List("Image")
	layers := make([]*ImageLayer, len(nodes))
	for i, n := range nodes {
		layers[i] = &ImageLayer{node: n}
	}
	return layers
}

// ImageLayer references one raster asset by filename, relative to the
// character's base directory.
type ImageLayer struct {
	node *acd.Node
}

// Filename returns the layer's asset filename.
func (l *ImageLayer) Filename() (string, bool) {
	return l.node.Str("Filename")
}
