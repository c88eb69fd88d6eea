package loader

import (
	"bytes"
	"image"
	stdcolor "image/color"
	"image/png"
	"testing"

	"github.com/rcornwell/esomachine/internal/piet/color"
)

func solidImage(width, height int, c stdcolor.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImageAutoCodelSize(t *testing.T) {
	// Two 2x2 codels side by side: red then blue.
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, stdcolor.RGBA{255, 0, 0, 255})
			img.Set(x+2, y, stdcolor.RGBA{0, 0, 255, 255})
		}
	}
	g, err := FromImage(img, Options{CodelSize: AutoCodelSize, Policy: color.Strict})
	if err != nil {
		t.Fatalf("FromImage returned error: %v", err)
	}
	if g.Width() != 2 || g.Height() != 1 {
		t.Fatalf("FromImage dims got: %dx%d expected: 2x1", g.Width(), g.Height())
	}
}

func TestLoadRoundTripsThroughPNG(t *testing.T) {
	img := solidImage(2, 2, stdcolor.RGBA{0xFF, 0xFF, 0xFF, 0xFF})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	g, err := Load(&buf, Options{CodelSize: 1, Policy: color.Strict})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if g.At(0, 0) != color.White {
		t.Errorf("Load got: %v expected: White", g.At(0, 0))
	}
}

func TestFromImageInvalidCodelSize(t *testing.T) {
	img := solidImage(3, 2, stdcolor.RGBA{255, 0, 0, 255})
	_, err := FromImage(img, Options{CodelSize: 2, Policy: color.Strict})
	if err == nil {
		t.Errorf("FromImage accepted a non-divisor codel size")
	}
}
