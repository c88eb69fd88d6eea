package grid

import (
	"errors"
	"testing"

	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/piet/color"
)

func TestAtOutOfBoundsIsBlack(t *testing.T) {
	g := New(2, 2, []color.Color{
		color.White, color.White,
		color.White, color.White,
	})
	if g.At(-1, 0) != color.Black {
		t.Errorf("At(-1,0) got: %v expected: Black", g.At(-1, 0))
	}
	if g.At(5, 5) != color.Black {
		t.Errorf("At(5,5) got: %v expected: Black", g.At(5, 5))
	}
	if g.At(1, 1) != color.White {
		t.Errorf("At(1,1) got: %v expected: White", g.At(1, 1))
	}
}

func TestInferCodelSize(t *testing.T) {
	// 4x4 raster made of 2x2 blocks of two alternating colors.
	red := Pixel{255, 0, 0}
	blue := Pixel{0, 0, 255}
	raster := [][]Pixel{
		{red, red, blue, blue},
		{red, red, blue, blue},
		{blue, blue, red, red},
		{blue, blue, red, red},
	}
	at := func(x, y int) Pixel { return raster[y][x] }
	if got := InferCodelSize(4, 4, at); got != 2 {
		t.Errorf("InferCodelSize got: %d expected: %d", got, 2)
	}
}

func TestInferCodelSizeSingleCodel(t *testing.T) {
	raster := make([][]Pixel, 3)
	for y := range raster {
		raster[y] = make([]Pixel, 3)
		for x := range raster[y] {
			raster[y][x] = Pixel{uint8(x), uint8(y), 0}
		}
	}
	at := func(x, y int) Pixel { return raster[y][x] }
	if got := InferCodelSize(3, 3, at); got != 1 {
		t.Errorf("InferCodelSize got: %d expected: %d", got, 1)
	}
}

func TestReduceEvenlyDivides(t *testing.T) {
	red := Pixel{255, 0, 0}
	white := Pixel{255, 255, 255}
	raster := [][]Pixel{
		{red, red, white, white},
		{red, red, white, white},
	}
	at := func(x, y int) Pixel { return raster[y][x] }
	g, err := Reduce(4, 2, 2, at, color.Strict)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}
	if g.Width() != 2 || g.Height() != 1 {
		t.Fatalf("Reduce dims got: %dx%d expected: 2x1", g.Width(), g.Height())
	}
	if g.At(0, 0).IsChromatic() == false || g.At(1, 0) != color.White {
		t.Errorf("Reduce classified cells wrong: %v %v", g.At(0, 0), g.At(1, 0))
	}
}

func TestReduceBadCodelSize(t *testing.T) {
	red := Pixel{255, 0, 0}
	at := func(x, y int) Pixel { return red }
	_, err := Reduce(4, 3, 2, at, color.Strict)
	if !errors.Is(err, machineerr.InvalidCodelSize) {
		t.Errorf("Reduce got: %v expected: %v", err, machineerr.InvalidCodelSize)
	}
}

func TestReduceStrictUnknownColor(t *testing.T) {
	weird := Pixel{12, 34, 56}
	at := func(x, y int) Pixel { return weird }
	_, err := Reduce(2, 2, 2, at, color.Strict)
	if !errors.Is(err, machineerr.UnknownColor) {
		t.Errorf("Reduce got: %v expected: %v", err, machineerr.UnknownColor)
	}
}

func TestReduceTreatAsWhitePolicy(t *testing.T) {
	weird := Pixel{12, 34, 56}
	at := func(x, y int) Pixel { return weird }
	g, err := Reduce(2, 2, 2, at, color.TreatAsWhite)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}
	if g.At(0, 0) != color.White {
		t.Errorf("Reduce got: %v expected: White", g.At(0, 0))
	}
}
