package character

import (
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	// Frame assets in the wild are BMPs, but characters converted with
	// newer tooling ship PNGs or GIFs.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/oleite/go-msagent/acd"
)

// Images is the set of decoded image assets a definition references,
// keyed by the filename as written in the definition. It is populated
// once and read-only afterwards, so concurrent readers need no locking.
// The decoded images themselves are never mutated; transparency masking
// happens on derived copies.
type Images struct {
	m map[string]image.Image
}

// NewImages wraps an already decoded set of images.
func NewImages(m map[string]image.Image) *Images {
	return &Images{m: m}
}

// Get returns the decoded image for the passed definition filename, or
// nil when the asset was missing at preload time.
func (im *Images) Get(filename string) image.Image {
	return im.m[filename]
}

// Len returns the number of decoded assets.
func (im *Images) Len() int {
	return len(im.m)
}

// PreloadImages walks the whole definition tree, collects every
// Filename property at any depth, and decodes each referenced file
// once. Image references are scattered across several block types in
// this format, so a generic scan beats special-casing frame images.
//
// Files missing on disk or failing to decode are skipped; a later
// lookup then reports no image and the layer is dropped from
// compositing.
func (c *Character) PreloadImages() *Images {
	seen := map[string]bool{}
	c.root.Walk(func(n *acd.Node) {
		if fn, ok := n.Str("Filename"); ok {
			seen[fn] = true
		}
	})

	im := &Images{m: make(map[string]image.Image, len(seen))}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for fn := range seen {
		fn := fn
		g.Go(func() error {
			img, err := decodeFile(filepath.Join(c.baseDir, fn))
			if err != nil {
				glog.V(1).Infof("skipping asset %q: %v", fn, err)
				return nil
			}
			mu.Lock()
			im.m[fn] = img
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	glog.V(1).Infof("preloaded %d of %d referenced images", len(im.m), len(seen))
	return im
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
