/*
 * esomachine - Piet image loader.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package loader is the Piet image loader: it turns a PNG file into a
// Grid, applying the configured codel size (or inferring it) and
// unknown-color policy. The interpreter core never sees a raw pixel,
// only the clean Grid this package hands back.
package loader

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/piet/color"
	"github.com/rcornwell/esomachine/internal/piet/grid"
)

// AutoCodelSize requests codel-size inference instead of a fixed size.
const AutoCodelSize = 0

// Options controls how a raster is turned into a Grid.
type Options struct {
	CodelSize int // AutoCodelSize to infer.
	Policy    color.Policy
}

// LoadFile reads and decodes a PNG file at path and reduces it to a
// Grid under opts.
func LoadFile(path string, opts Options) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, opts)
}

// Load decodes a PNG stream and reduces it to a Grid under opts. 16-bit
// samples are downsampled to 8 bits and alpha is discarded.
func Load(r io.Reader, opts Options) (*grid.Grid, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img, opts)
}

// FromImage reduces an already-decoded image to a Grid under opts. It
// is split out from Load so callers that already have an image.Image
// (e.g. tests, or a future non-PNG loader) can skip the PNG codec.
func FromImage(img image.Image, opts Options) (*grid.Grid, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, machineerr.InvalidImage
	}

	at := func(x, y int) grid.Pixel {
		r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
		// RGBA returns 16-bit-per-channel alpha-premultiplied samples,
		// which equal the plain color for opaque pixels; downsample to
		// 8 bits.
		return grid.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	}

	codelSize := opts.CodelSize
	if codelSize == AutoCodelSize {
		codelSize = grid.InferCodelSize(width, height, at)
	}

	return grid.Reduce(width, height, codelSize, at, opts.Policy)
}
