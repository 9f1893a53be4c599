package sound

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryLoad(t *testing.T) {
	dir := t.TempDir()
	want := []byte("RIFFxxxxWAVE")
	if err := os.WriteFile(filepath.Join(dir, "ding.wav"), want, 0644); err != nil {
		t.Fatalf("writing cue: %v", err)
	}

	r := NewRegistry(dir)

	got := r.Load("ding.wav")
	if !bytes.Equal(got, want) {
		t.Errorf("Load = %q; want %q", got, want)
	}

	// Remove the file; the registry must keep the cue alive.
	os.Remove(filepath.Join(dir, "ding.wav"))
	if got := r.Load("ding.wav"); !bytes.Equal(got, want) {
		t.Errorf("reload after delete = %q; want cached %q", got, want)
	}
}

func TestRegistryMissingCue(t *testing.T) {
	r := NewRegistry(t.TempDir())

	if b := r.Load("nope.wav"); b != nil {
		t.Errorf("Load of missing cue = %v; want nil", b)
	}
	if p := r.Path("nope.wav"); p != "" {
		t.Errorf("Path of missing cue = %q; want empty", p)
	}
}
