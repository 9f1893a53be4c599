package player

import (
	"image"
	"testing"
	"time"

	"github.com/bradfitz/iter"

	"github.com/oleite/go-msagent/acd"
	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/ttesting"
)

const testDef = `DefineCharacter
	DefaultFrameDuration = 10
EndCharacter
DefineAnimation "Wave"
	DefineFrame
		Duration = 5
		DefineImage
			Filename = "a.bmp"
		EndImage
	EndFrame
	DefineFrame
		SoundEffect = "ding.wav"
		DefineImage
			Filename = "b.bmp"
		EndImage
	EndFrame
EndAnimation
`

// recordingSink records playback events in arrival order.
type recordingSink struct {
	frames   int
	sounds   []string
	finished int
	events   []string
}

func (s *recordingSink) FrameReady(image.Image) {
	s.frames++
	s.events = append(s.events, "frame")
}

func (s *recordingSink) PlaySound(cue string) {
	s.sounds = append(s.sounds, cue)
	s.events = append(s.events, "sound")
}

func (s *recordingSink) Finished() {
	s.finished++
	s.events = append(s.events, "finished")
}

func testImages() *character.Images {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	return character.NewImages(map[string]image.Image{
		"a.bmp": img,
		"b.bmp": img,
	})
}

// newTestPlayer wires a player with a fake sleep that records waits.
func newTestPlayer(names []string, sink Sink, opts Options, waits *[]time.Duration) *Player {
	ch := character.New(acd.Parse(testDef), ".")
	p := New(ch, testImages(), names, sink, opts)
	p.sleep = func(d time.Duration) {
		if waits != nil {
			*waits = append(*waits, d)
		}
	}
	return p
}

func TestRunEmitsFramesWaitsAndFinished(t *testing.T) {
	sink := &recordingSink{}
	var waits []time.Duration
	p := newTestPlayer([]string{"Wave"}, sink, Options{Speed: 1.0, Cycles: 1}, &waits)

	p.Run()

	ttesting.AssertEqualInt(t, "two frames", sink.frames, 2)
	ttesting.AssertEqualInt(t, "one finished", sink.finished, 1)
	ttesting.AssertEqualString(t, "finished arrives last", sink.events[len(sink.events)-1], "finished")

	// Frame 1 declares duration 5, frame 2 inherits the character
	// default of 10: 50 ms then 100 ms at speed 1.0.
	if len(waits) != 2 || waits[0] != 50*time.Millisecond || waits[1] != 100*time.Millisecond {
		t.Errorf("waits = %v; want [50ms 100ms]", waits)
	}

	if len(sink.sounds) != 1 || sink.sounds[0] != "ding.wav" {
		t.Errorf("sounds = %v; want [ding.wav]", sink.sounds)
	}
}

func TestRunCycles(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPlayer([]string{"Wave", "Wave"}, sink, Options{Cycles: 3}, nil)

	p.Run()

	// 2 frames per animation, 2 animations per pass, 3 passes.
	want := 0
	for range iter.N(3) {
		want += 2 * 2
	}
	ttesting.AssertEqualInt(t, "frames over three cycles", sink.frames, want)
	ttesting.AssertEqualInt(t, "still exactly one finished", sink.finished, 1)
}

func TestRunMissingAnimation(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPlayer([]string{"NoSuch"}, sink, Options{}, nil)

	p.Run()

	ttesting.AssertEqualInt(t, "no frames", sink.frames, 0)
	ttesting.AssertEqualInt(t, "exactly one finished", sink.finished, 1)
}

func TestStopMidPlayback(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPlayer([]string{"Wave"}, sink, Options{Cycles: -1}, nil)
	p.sleep = func(time.Duration) {
		// Request stop during the first frame's wait; no frame may be
		// emitted after the in-flight wait completes.
		p.Stop()
	}

	p.Run()

	ttesting.AssertEqualInt(t, "only the in-flight frame", sink.frames, 1)
	ttesting.AssertEqualInt(t, "exactly one finished", sink.finished, 1)
}

func TestStopBeforeRun(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPlayer([]string{"Wave"}, sink, Options{}, nil)
	p.Stop()
	p.Stop() // idempotent

	p.Run()

	ttesting.AssertEqualInt(t, "no frames", sink.frames, 0)
	ttesting.AssertEqualInt(t, "exactly one finished", sink.finished, 1)
}

func TestEffectiveWait(t *testing.T) {
	for _, tc := range []struct {
		duration int
		speed    float64
		want     time.Duration
	}{
		{duration: 5, speed: 1.0, want: 50 * time.Millisecond},
		{duration: 10, speed: 1.0, want: 100 * time.Millisecond},
		{duration: 10, speed: 2.0, want: 50 * time.Millisecond},
		{duration: 10, speed: 0.5, want: 200 * time.Millisecond},
		{duration: 1, speed: 4.0, want: 10 * time.Millisecond},  // clamped floor
		{duration: 0, speed: 1.0, want: 10 * time.Millisecond},  // clamped floor
		{duration: 3, speed: 2.0, want: 15 * time.Millisecond},  // floor division
	} {
		if got := effectiveWait(tc.duration, tc.speed); got != tc.want {
			t.Errorf("effectiveWait(%d, %g) = %v; want %v", tc.duration, tc.speed, got, tc.want)
		}
	}
}
