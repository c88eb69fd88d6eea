/*
 * esomachine - Piet color table.
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

// Package color implements the Piet color table: the 20 canonical
// colors, RGB classification under a configurable unknown
// pixel policy, and the hue/lightness transition table that yields a
// Piet command.
package color

import "github.com/rcornwell/esomachine/internal/machineerr"

// Color is a tagged Piet color. Chromatic colors are identified by a
// packed index 0..17; White, Black and Marker are sentinels outside
// that range. Marker is never stored in a grid: the block finder tracks
// visited codels in its own set instead.
type Color int

const (
	numHue       = 6
	numLight     = 3
	numChromatic = numHue * numLight

	White  Color = numChromatic
	Black  Color = numChromatic + 1
	Marker Color = numChromatic + 2
)

// IsChromatic reports whether c is one of the 18 hue/lightness colors.
func (c Color) IsChromatic() bool {
	return c >= 0 && c < numChromatic
}

func (c Color) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "invalid"
}

// Policy controls how classify resolves an RGB triple outside the
// canonical 20-color palette.
type Policy int

const (
	Strict Policy = iota
	TreatAsWhite
	TreatAsBlack
)

// entry is one row of the canonical palette: packed RGB and the Color
// index it maps to.
type entry struct {
	rgb uint32
	c   Color
}

// table holds the 20 canonical Piet colors, light row first, then
// normal, then dark, then white and black -- matching the order the
// language reference and every Piet tool present it in.
var table = []entry{
	{0xFFC0C0, chroma(0, 0)}, // light red
	{0xFFFFC0, chroma(1, 0)}, // light yellow
	{0xC0FFC0, chroma(2, 0)}, // light green
	{0xC0FFFF, chroma(3, 0)}, // light cyan
	{0xC0C0FF, chroma(4, 0)}, // light blue
	{0xFFC0FF, chroma(5, 0)}, // light magenta

	{0xFF0000, chroma(0, 1)}, // red
	{0xFFFF00, chroma(1, 1)}, // yellow
	{0x00FF00, chroma(2, 1)}, // green
	{0x00FFFF, chroma(3, 1)}, // cyan
	{0x0000FF, chroma(4, 1)}, // blue
	{0xFF00FF, chroma(5, 1)}, // magenta

	{0xC00000, chroma(0, 2)}, // dark red
	{0xC0C000, chroma(1, 2)}, // dark yellow
	{0x00C000, chroma(2, 2)}, // dark green
	{0x00C0C0, chroma(3, 2)}, // dark cyan
	{0x0000C0, chroma(4, 2)}, // dark blue
	{0xC000C0, chroma(5, 2)}, // dark magenta

	{0xFFFFFF, White},
	{0x000000, Black},
}

var byRGB map[uint32]Color

var names map[Color]string

func chroma(hue, lightness int) Color {
	return Color(lightness*numHue + hue)
}

func init() {
	byRGB = make(map[uint32]Color, len(table))
	names = make(map[Color]string, len(table)+1)
	lightName := []string{"light", "", "dark"}
	hueName := []string{"red", "yellow", "green", "cyan", "blue", "magenta"}
	for _, e := range table {
		byRGB[e.rgb] = e.c
		if e.c.IsChromatic() {
			h, l := Decompose(e.c)
			label := hueName[h]
			if lightName[l] != "" {
				label = lightName[l] + " " + label
			}
			names[e.c] = label
		}
	}
	names[White] = "white"
	names[Black] = "black"
}

// Classify maps an 8-bit RGB triple to a Color. A triple outside the
// canonical 20 colors is resolved by policy: Strict reports
// machineerr.UnknownColor, TreatAsWhite/TreatAsBlack substitute the
// corresponding sentinel. The caller (the image loader) applies the
// policy; the rest of the interpreter only ever sees clean Color
// values.
func Classify(r, g, b uint8, policy Policy) (Color, error) {
	packed := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if c, ok := byRGB[packed]; ok {
		return c, nil
	}
	switch policy {
	case TreatAsWhite:
		return White, nil
	case TreatAsBlack:
		return Black, nil
	default:
		return 0, machineerr.UnknownColor
	}
}

// Decompose splits a chromatic color into its hue (0..5) and lightness
// (0 = light, 1 = normal, 2 = dark) components. Decompose is only
// defined for chromatic colors; calling it with White, Black or Marker
// returns 0, 0.
func Decompose(c Color) (hue, lightness int) {
	if !c.IsChromatic() {
		return 0, 0
	}
	return int(c) % numHue, int(c) / numHue
}

// Compose is the inverse of Decompose: build the chromatic color for a
// given hue (mod 6) and lightness (mod 3).
func Compose(hue, lightness int) Color {
	hue = ((hue % numHue) + numHue) % numHue
	lightness = ((lightness % numLight) + numLight) % numLight
	return chroma(hue, lightness)
}
