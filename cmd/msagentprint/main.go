// msagentprint composites a single animation frame of a character
// definition and prints it to the terminal. Debugging aid for checking
// how a frame's layers stack up without playing the whole animation.
package main

import (
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/compositor"
	"github.com/oleite/go-msagent/paths"
	"github.com/oleite/go-msagent/termsink"
)

var (
	animName = flag.String("anim", "", "animation to print a frame of")
	frameIdx = flag.Int("frame", 0, "frame index within the animation")
	cells    = flag.Bool("cells", false, "force character cells even on graphics capable terminals")
	col256   = flag.Bool("col256", false, "use 256 colors instead of 24 bit in cell mode")
	blanks   = flag.Bool("blanks", true, "colored blanks instead of ascii art in cell modes")
	downsize = flag.Bool("downsize", false, "fit the frame to the terminal")

	acdPath string
)

func main() {
	paths.SetupFilePathFlag("agent.acd", "acd_path", &acdPath)
	flagutil.Parse()

	if flag.NArg() >= 1 {
		acdPath = flag.Arg(0)
	}
	if acdPath == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <character.acd> -anim=<name> [-frame=N]\n", os.Args[0])
		os.Exit(2)
	}

	ch, err := character.FromPath(acdPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *animName == "" {
		fmt.Fprintln(os.Stderr, "error: -anim is required; available:")
		for _, n := range ch.AnimationNames() {
			fmt.Fprintf(os.Stderr, " - %s\n", n)
		}
		os.Exit(2)
	}

	frames := ch.Animation(*animName).Frames()
	if *frameIdx < 0 || *frameIdx >= len(frames) {
		fmt.Fprintf(os.Stderr, "error: animation %q has %d frames\n", *animName, len(frames))
		os.Exit(1)
	}

	img := compositor.ComposeFrame(frames[*frameIdx], ch.PreloadImages())
	if img == nil {
		fmt.Fprintf(os.Stderr, "error: frame %d has no drawable layers\n", *frameIdx)
		os.Exit(1)
	}

	mode := termsink.ModeAuto
	switch {
	case *col256:
		mode = termsink.Mode256Color
	case *cells:
		mode = termsink.Mode24Bit
	}
	sink := termsink.New(termsink.Options{Mode: mode, Blanks: *blanks, Downsize: *downsize})
	sink.FrameReady(img)
	sink.Finished()
}
