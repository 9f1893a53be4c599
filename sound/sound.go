// Package sound owns the sound-cue assets of a playback session.
//
// Actual audio output is a collaborator concern outside this module;
// this package gives the session an explicit owner for the decoded cue
// data (the original implementation kept cues alive in an ambient
// per-widget cache) and hands bytes or paths to whatever player the
// embedder wires up.
package sound

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/glog"
)

// Registry resolves cue filenames against a character's base directory
// and keeps each loaded cue's bytes alive for the session. Missing
// files are remembered as absent so repeated cues stat the disk once.
type Registry struct {
	baseDir string

	mu   sync.Mutex
	cues map[string][]byte
}

// NewRegistry creates a registry resolving against baseDir.
func NewRegistry(baseDir string) *Registry {
	return &Registry{
		baseDir: baseDir,
		cues:    map[string][]byte{},
	}
}

// Path returns the on-disk path for the passed cue filename, or ""
// when the file does not exist.
func (r *Registry) Path(name string) string {
	path := filepath.Join(r.baseDir, name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Load returns the cue's raw bytes, reading them on first use. A
// missing or unreadable cue yields nil; sound cues never fail playback.
func (r *Registry) Load(name string) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.cues[name]; ok {
		return b
	}

	b, err := os.ReadFile(filepath.Join(r.baseDir, name))
	if err != nil {
		glog.V(1).Infof("sound cue %q unavailable: %v", name, err)
		b = nil
	}
	r.cues[name] = b
	return b
}
