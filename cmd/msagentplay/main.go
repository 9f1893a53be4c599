// msagentplay plays animations from a decompiled MS Agent character
// definition in the terminal.
//
// With only a definition path it lists the available animations:
//
//	msagentplay clippy.acd
//
// With a comma separated animation list it plays them in order:
//
//	msagentplay clippy.acd Greeting,Wave --cycles=2 --speed=1.5
package main

import (
	"flag"
	"fmt"
	"image/gif"
	"os"
	"os/signal"
	"strings"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/gifanim"
	"github.com/oleite/go-msagent/paths"
	"github.com/oleite/go-msagent/player"
	"github.com/oleite/go-msagent/sound"
	"github.com/oleite/go-msagent/termsink"
)

var (
	speed    = flag.Float64("speed", 1.0, "playback speed multiplier; must be greater than 0")
	cycles   = flag.Int("cycles", 1, "full passes over the animation list; -1 repeats forever")
	scale    = flag.Float64("scale", 1.0, "scale factor applied to frames before drawing")
	downsize = flag.Bool("downsize", false, "fit frames to the terminal")
	cells    = flag.Bool("cells", false, "force character cells even on graphics capable terminals")
	col256   = flag.Bool("col256", false, "use 256 colors instead of 24 bit in cell mode")
	noCol    = flag.Bool("nocol", false, "no color escape sequences at all")
	blanks   = flag.Bool("blanks", true, "colored blanks instead of ascii art in cell modes")
	gifOut   = flag.String("gif", "", "write the animations to this animated GIF file instead of playing")
)

func fatalf(format string, arg ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", arg...)
	os.Exit(1)
}

func listAnimations(ch *character.Character) {
	name := ch.Name()
	if name == "" {
		name = "MS Agent"
	}
	figure.NewFigure(name, "", true).Print()
	fmt.Println("Available animations:")
	for _, n := range ch.AnimationNames() {
		fmt.Printf(" - %s\n", n)
	}
}

func renderMode() termsink.Mode {
	switch {
	case *noCol:
		return termsink.ModeNoColor
	case *col256:
		return termsink.Mode256Color
	case *cells:
		return termsink.Mode24Bit
	}
	return termsink.ModeAuto
}

func writeGIF(ch *character.Character, images *character.Images, names []string) {
	g, err := gifanim.Render(ch, images, names, *speed)
	if err != nil {
		fatalf("rendering %s: %v", *gifOut, err)
	}
	f, err := os.Create(*gifOut)
	if err != nil {
		fatalf("creating %s: %v", *gifOut, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		fatalf("encoding %s: %v", *gifOut, err)
	}
	fmt.Printf("wrote %s\n", *gifOut)
}

func main() {
	flagutil.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <character.acd> [Animation1,Animation2,...]\n", os.Args[0])
		os.Exit(2)
	}

	acdPath := flag.Arg(0)
	if _, err := os.Stat(acdPath); err != nil {
		// A bare filename may still live in one of the character
		// directories.
		if found := paths.Find(acdPath); found != "" {
			acdPath = found
		}
	}

	ch, err := character.FromPath(acdPath)
	if err != nil {
		fatalf("%v", err)
	}

	if flag.NArg() < 2 {
		listAnimations(ch)
		return
	}
	if *speed <= 0 {
		fatalf("-speed must be greater than 0")
	}

	names := strings.Split(flag.Arg(1), ",")
	images := ch.PreloadImages()

	if *gifOut != "" {
		writeGIF(ch, images, names)
		return
	}

	sink := termsink.New(termsink.Options{
		Mode:     renderMode(),
		Blanks:   *blanks,
		Scale:    *scale,
		Downsize: *downsize,
		Sounds:   sound.NewRegistry(ch.BaseDir()),
	})
	p := player.New(ch, images, names, sink, player.Options{
		Speed:  *speed,
		Cycles: *cycles,
	})

	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	select {
	case <-sig:
		glog.Infof("interrupted; stopping playback")
		p.Stop()
		<-done
	case <-done:
	}
}
