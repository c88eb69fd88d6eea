/*
 * esomachine - Piet codel grid and codel-size reduction.
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

// Package grid implements the Piet codel store: a rectangular raster of
// colors addressed at codel (not raw pixel) granularity, plus the
// codel-size inference and reduction.
// Bounds-checked lookup is total: any out-of-range coordinate reads as
// Black, so the navigator never special-cases the edge of the program.
package grid

import (
	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/piet/color"
)

// Grid is a width x height raster of codel colors, origin (0,0) top
// left, X increasing right, Y increasing down.
type Grid struct {
	width, height int
	cells         []color.Color
}

// New builds a Grid from a row-major slice of already-classified
// colors. len(cells) must equal width*height; callers that build a
// Grid from raw pixels should go through Reduce instead.
func New(width, height int, cells []color.Color) *Grid {
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the grid width in codels.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in codels.
func (g *Grid) Height() int { return g.height }

// At returns the color at (x, y). Any coordinate outside the grid
// reads as Black, the same as a wall codel.
func (g *Grid) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return color.Black
	}
	return g.cells[y*g.width+x]
}

// InBounds reports whether (x, y) addresses a real codel.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Pixel is one raw RGB sample, 8 bits per channel, alpha already
// discarded by the loader.
type Pixel struct {
	R, G, B uint8
}

// InferCodelSize scans every row and column of a raw pixel raster as
// interleaved runs of identical color and returns the minimum run
// length, which is the codel size under Piet's standard convention
// that codels are square blocks of uniform-colored pixels.
func InferCodelSize(width, height int, at func(x, y int) Pixel) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	minRun := width
	if height < minRun {
		minRun = height
	}
	if minRun == 0 {
		return 0
	}

	// Rows: runs of identical color along X.
	for y := 0; y < height; y++ {
		run := 1
		prev := at(0, y)
		for x := 1; x < width; x++ {
			p := at(x, y)
			if p == prev {
				run++
				continue
			}
			if run < minRun {
				minRun = run
			}
			run = 1
			prev = p
		}
		if run < minRun {
			minRun = run
		}
	}

	// Columns: runs of identical color along Y.
	for x := 0; x < width; x++ {
		run := 1
		prev := at(x, 0)
		for y := 1; y < height; y++ {
			p := at(x, y)
			if p == prev {
				run++
				continue
			}
			if run < minRun {
				minRun = run
			}
			run = 1
			prev = p
		}
		if run < minRun {
			minRun = run
		}
	}

	if minRun <= 0 {
		return 1
	}
	return minRun
}

// Reduce samples the top-left pixel of every codelSize x codelSize
// block of a raw raster, classifies it under policy, and returns the
// resulting Grid. codelSize must evenly divide both dimensions or
// Reduce fails with machineerr.InvalidCodelSize.
func Reduce(width, height, codelSize int, at func(x, y int) Pixel, policy color.Policy) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, machineerr.InvalidImage
	}
	if codelSize <= 0 || width%codelSize != 0 || height%codelSize != 0 {
		return nil, machineerr.InvalidCodelSize
	}

	gw := width / codelSize
	gh := height / codelSize
	cells := make([]color.Color, gw*gh)
	for gy := 0; gy < gh; gy++ {
		for gx := 0; gx < gw; gx++ {
			p := at(gx*codelSize, gy*codelSize)
			c, err := color.Classify(p.R, p.G, p.B, policy)
			if err != nil {
				return nil, err
			}
			cells[gy*gw+gx] = c
		}
	}
	return &Grid{width: gw, height: gh, cells: cells}, nil
}
