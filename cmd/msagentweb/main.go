// msagentweb serves a character over HTTP: animation listings, frames
// as PNG and whole animations as animated GIF.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	_ "golang.org/x/net/trace"

	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/paths"
	"github.com/oleite/go-msagent/sound"
	"github.com/oleite/go-msagent/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for msagentweb")

	acdPath string
)

func main() {
	paths.SetupFilePathFlag("agent.acd", "acd_path", &acdPath)
	flagutil.Parse()

	if flag.NArg() >= 1 {
		acdPath = flag.Arg(0)
	}
	if acdPath == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <character.acd>\n", os.Args[0])
		os.Exit(2)
	}

	ch, err := character.FromPath(acdPath)
	if err != nil {
		glog.Fatalf("loading character: %v", err)
	}
	images := ch.PreloadImages()
	sounds := sound.NewRegistry(ch.BaseDir())

	r := mux.NewRouter()
	web.NewHandler(ch, images, sounds).RegisterRoutes(r)

	glog.Infof("msagentweb serving %q on %s", ch.Name(), *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.CombinedLoggingHandler(os.Stderr, r)))
}
