package gifanim

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/oleite/go-msagent/acd"
	"github.com/oleite/go-msagent/character"
	"github.com/oleite/go-msagent/ttesting"
)

const testDef = `DefineCharacter
	DefaultFrameDuration = 10
EndCharacter
DefineAnimation "Blink"
	DefineFrame
		Duration = 5
		DefineImage
			Filename = "open.bmp"
		EndImage
	EndFrame
	DefineFrame
		DefineImage
			Filename = "shut.bmp"
		EndImage
	EndFrame
	DefineFrame
		DefineImage
			Filename = "missing.bmp"
		EndImage
	EndFrame
EndAnimation
`

func testSetup() (*character.Character, *character.Images) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 128, 0, 255})
		}
	}
	ch := character.New(acd.Parse(testDef), ".")
	images := character.NewImages(map[string]image.Image{
		"open.bmp": img,
		"shut.bmp": img,
	})
	return ch, images
}

func TestRender(t *testing.T) {
	ch, images := testSetup()

	g, err := Render(ch, images, []string{"Blink"}, 1.0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// The frame with only an unresolvable layer is skipped.
	ttesting.AssertEqualInt(t, "two frames render", len(g.Image), 2)
	ttesting.AssertEqualInt(t, "declared duration becomes delay", g.Delay[0], 5)
	ttesting.AssertEqualInt(t, "default duration becomes delay", g.Delay[1], 10)

	// The result must round trip through the stdlib encoder.
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
}

func TestRenderSpeedScalesDelays(t *testing.T) {
	ch, images := testSetup()

	g, err := Render(ch, images, []string{"Blink"}, 2.0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	ttesting.AssertEqualInt(t, "halved delay", g.Delay[0], 2)
	ttesting.AssertEqualInt(t, "halved default delay", g.Delay[1], 5)
}

func TestRenderNothingComposable(t *testing.T) {
	ch, _ := testSetup()

	if _, err := Render(ch, character.NewImages(nil), []string{"NoSuch"}, 1.0); err == nil {
		t.Errorf("Render with nothing to compose did not fail")
	}
}
