// Package web serves a loaded character over HTTP: animation listings,
// single composited frames as PNG, whole animations as animated GIF,
// and the raw sound cues.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"image/gif"
	"image/png"
	"net/http"
	"strconv"
	"sync"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/vincent-petithory/dataurl"

	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/compositor"
	"github.com/oleite/go-msagent/gifanim"
	"github.com/oleite/go-msagent/sound"
)

// Handler serves one character. The character, image cache and sound
// registry are read-only, so handlers run concurrently; only GIF
// rendering is serialized since it is comparatively expensive.
type Handler struct {
	gifLock sync.Mutex

	ch     *character.Character
	images *character.Images
	sounds *sound.Registry
}

// NewHandler constructs a web handler for the passed character and its
// preloaded assets.
func NewHandler(ch *character.Character, images *character.Images, sounds *sound.Registry) *Handler {
	return &Handler{ch: ch, images: images, sounds: sounds}
}

// RegisterRoutes attaches all handlers to the passed router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/animations", h.animationsHandler)
	r.HandleFunc("/animation/{name}.gif", h.animationGIFHandler)
	r.HandleFunc("/frame/{name}/{idx:[0-9]+}.png", h.frameHandler)
	r.HandleFunc("/sound/{file}", h.soundHandler)
}

func (h *Handler) animationsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, name := range h.ch.AnimationNames() {
		fmt.Fprintln(w, name)
	}
}

func (h *Handler) animationGIFHandler(w http.ResponseWriter, r *http.Request) {
	h.gifLock.Lock()
	defer h.gifLock.Unlock()

	name := mux.Vars(r)["name"]

	speed := 1.0
	if s := r.URL.Query().Get("speed"); s != "" {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && parsed > 0 {
			speed = parsed
		}
		// ignore invalid speed
	}

	generation := 1 // bump if the way we render changes
	mime := "image/gif"
	etag := fmt.Sprintf(`W/"anim:%d:%s:%s:%g"`, generation, h.ch.Name(), name, speed)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=3600")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	g, err := gifanim.Render(h.ch, h.images, []string{name}, speed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	gif.EncodeAll(w, g)
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := strconv.Atoi(vars["idx"])
	if err != nil {
		http.Error(w, "idx not a number", http.StatusBadRequest)
		return
	}

	frames := h.ch.Animation(vars["name"]).Frames()
	if idx >= len(frames) {
		http.Error(w, "no such frame", http.StatusNotFound)
		return
	}

	img := compositor.ComposeFrame(frames[idx], h.images)
	if img == nil {
		http.Error(w, "frame has no drawable layers", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

func (h *Handler) soundHandler(w http.ResponseWriter, r *http.Request) {
	b := h.sounds.Load(mux.Vars(r)["file"])
	if b == nil {
		http.Error(w, "no such sound cue", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<title>{{.Name}}</title>
<h1>{{.Name}}</h1>
<ul>
{{range .Animations}}<li>
  <a href="/animation/{{.Name}}.gif">{{.Name}}</a>
  {{if .Preview}}<img src="{{.Preview}}" alt="{{.Name}}">{{end}}
</li>
{{end}}</ul>
`))

type indexAnimation struct {
	Name    string
	Preview template.URL
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	var anims []indexAnimation
	for _, name := range h.ch.AnimationNames() {
		a := indexAnimation{Name: name}
		// First composable frame as an inline preview.
		for _, frame := range h.ch.Animation(name).Frames() {
			img := compositor.ComposeFrame(frame, h.images)
			if img == nil {
				continue
			}
			buf := &bytes.Buffer{}
			if err := png.Encode(buf, img); err == nil {
				a.Preview = template.URL(dataurl.New(buf.Bytes(), "image/png").String())
			}
			break
		}
		anims = append(anims, a)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Name       string
		Animations []indexAnimation
	}{Name: h.ch.Name(), Animations: anims})
	if err != nil {
		glog.Errorf("rendering index: %v", err)
	}
}
