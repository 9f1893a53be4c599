package web

import (
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/oleite/go-msagent/acd"
	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/sound"
	"github.com/oleite/go-msagent/ttesting"
)

const testDef = `DefineCharacter
	Name = "Testy"
EndCharacter
DefineAnimation "Wave"
	DefineFrame
		DefineImage
			Filename = "a.bmp"
		EndImage
	EndFrame
EndAnimation
DefineAnimation "Idle"
	DefineFrame
		DefineImage
			Filename = "a.bmp"
		EndImage
	EndFrame
EndAnimation
`

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})

	ch := character.New(acd.Parse(testDef), t.TempDir())
	images := character.NewImages(map[string]image.Image{"a.bmp": img})
	h := NewHandler(ch, images, sound.NewRegistry(ch.BaseDir()))

	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(t *testing.T, r *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAnimationsListing(t *testing.T) {
	rec := get(t, testRouter(t), "/animations")

	ttesting.AssertEqualInt(t, "status ok", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "sorted names", rec.Body.String(), "Idle\nWave\n")
}

func TestFrameHandler(t *testing.T) {
	r := testRouter(t)

	rec := get(t, r, "/frame/Wave/0.png")
	ttesting.AssertEqualInt(t, "status ok", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "png served", rec.Header().Get("Content-Type"), "image/png")

	rec = get(t, r, "/frame/Wave/7.png")
	ttesting.AssertEqualInt(t, "frame out of range", rec.Code, http.StatusNotFound)

	rec = get(t, r, "/frame/NoSuch/0.png")
	ttesting.AssertEqualInt(t, "missing animation", rec.Code, http.StatusNotFound)
}

func TestAnimationGIFHandler(t *testing.T) {
	r := testRouter(t)

	rec := get(t, r, "/animation/Wave.gif")
	ttesting.AssertEqualInt(t, "status ok", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "gif served", rec.Header().Get("Content-Type"), "image/gif")

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("no ETag on GIF response")
	}
	req := httptest.NewRequest(http.MethodGet, "/animation/Wave.gif", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	ttesting.AssertEqualInt(t, "etag revalidation", rec.Code, http.StatusNotModified)

	rec = get(t, r, "/animation/NoSuch.gif")
	ttesting.AssertEqualInt(t, "missing animation", rec.Code, http.StatusNotFound)
}

func TestSoundHandlerMissingCue(t *testing.T) {
	rec := get(t, testRouter(t), "/sound/nope.wav")
	ttesting.AssertEqualInt(t, "missing cue", rec.Code, http.StatusNotFound)
}
