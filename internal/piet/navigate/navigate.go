/*
 * esomachine - Piet navigator: one program step.
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

// Package navigate implements the Piet navigator: the one-step state
// transition over a Grid, including the white-slide
// and black-wall 8-retry protocols. A Nav owns only the DP/CC/position
// registers and the retry counters; it never touches the value stack --
// that is the executor's job, invoked by the caller with the Command
// and BlockSize a step reports.
package navigate

import (
	"github.com/rcornwell/esomachine/internal/piet/block"
	"github.com/rcornwell/esomachine/internal/piet/color"
	"github.com/rcornwell/esomachine/internal/piet/command"
	"github.com/rcornwell/esomachine/internal/piet/grid"
	"github.com/rcornwell/esomachine/internal/util/debug"
)

// Nav holds the direction pointer, codel chooser and current position,
// plus the bookkeeping the two retry protocols need across steps.
type Nav struct {
	x, y int
	dp   block.Direction
	cc   block.Chooser

	whiteAttempts     int
	chromaticAttempts int

	// A white slide that began by leaving a chromatic block remembers
	// that block's color and size until the slide resolves, possibly
	// several Step calls later if it is repeatedly blocked. The
	// eventual transition command is computed between that remembered
	// color and whatever chromatic block the slide finally reaches.
	pending      bool
	pendingColor color.Color
	pendingSize  int

	step int
}

// New returns a Nav positioned at (x, y) with the initial DP=Right,
// CC=Left configuration a Piet program always starts in.
func New(x, y int) *Nav {
	return &Nav{x: x, y: y, dp: block.Right, cc: block.CCLeft}
}

// Position returns the current codel coordinates.
func (n *Nav) Position() (x, y int) { return n.x, n.y }

// DP returns the current direction pointer.
func (n *Nav) DP() block.Direction { return n.dp }

// CC returns the current codel chooser.
func (n *Nav) CC() block.Chooser { return n.cc }

// RotateDP rotates the direction pointer clockwise by steps (negative
// for counter-clockwise); used by the executor to apply a popped
// `pointer` operand.
func (n *Nav) RotateDP(steps int) { n.dp = n.dp.Clockwise(steps) }

// ToggleCC toggles the codel chooser an odd or even number of times;
// used by the executor to apply a popped `switch` operand.
func (n *Nav) ToggleCC(times int) {
	if times%2 != 0 {
		n.cc = n.cc.Toggle()
	}
}

// Outcome reports what a single Step did.
type Outcome struct {
	Terminated bool
	Command    command.Command // command.None if no command fired.
	BlockSize  int
}

// Step advances the machine by exactly one unit of Piet progress:
// either one command-issuing move out of a chromatic block, one
// contiguous forward white slide (possibly ending in a fired command
// if it started by leaving a chromatic block and now reaches another),
// or one failed exit/slide attempt that only rotates DP/toggles CC.
func (n *Nav) Step(g *grid.Grid) Outcome {
	n.step++
	c := g.At(n.x, n.y)
	debug.Tracef(n.step, debug.Nav, "pos=(%d,%d) dp=%s cc=%s color=%s", n.x, n.y, n.dp, n.cc, c)
	switch {
	case c == color.Black:
		return Outcome{Terminated: true}
	case c == color.White:
		return n.continueSlide(g)
	default:
		return n.fromChromatic(g, c)
	}
}

// fromChromatic finds the exit of the current color block, tries to
// move past it, and on failure
// apply the exit-attempt retry protocol (alternating CC toggle and DP
// rotation, terminating after eight consecutive failures).
func (n *Nav) fromChromatic(g *grid.Grid, c color.Color) Outcome {
	ex, ey, size := block.Find(g, n.x, n.y, c, n.dp, n.cc)
	dx, dy := n.dp.Step()
	tx, ty := ex+dx, ey+dy

	if g.InBounds(tx, ty) {
		if tc := g.At(tx, ty); tc != color.Black {
			if tc.IsChromatic() {
				cmd, _ := command.Transition(c, tc)
				n.x, n.y = tx, ty
				n.resetAttempts()
				return Outcome{Command: cmd, BlockSize: size}
			}
			// White entry is non-commanding; remember what we are
			// leaving in case the slide resolves into a new block.
			n.x, n.y = tx, ty
			n.resetAttempts()
			n.pending, n.pendingColor, n.pendingSize = true, c, size
			return n.continueSlide(g)
		}
	}

	n.chromaticAttempts++
	if n.chromaticAttempts >= 8 {
		return Outcome{Terminated: true}
	}
	if n.chromaticAttempts%2 == 0 {
		n.cc = n.cc.Toggle()
	} else {
		n.dp = n.dp.Clockwise(1)
	}
	return Outcome{}
}

// continueSlide implements the white-slide protocol. It is also how an
// interrupted slide resumes on a later Step call, since
// n.pending (and the DP/CC it was blocked with) persists on the Nav.
func (n *Nav) continueSlide(g *grid.Grid) Outcome {
	for {
		dx, dy := n.dp.Step()
		nx, ny := n.x+dx, n.y+dy
		if !g.InBounds(nx, ny) || g.At(nx, ny) == color.Black {
			n.whiteAttempts++
			if n.whiteAttempts >= 8 {
				return Outcome{Terminated: true}
			}
			n.cc = n.cc.Toggle()
			n.dp = n.dp.Clockwise(1)
			return Outcome{}
		}

		n.x, n.y = nx, ny
		tc := g.At(nx, ny)
		if tc == color.White {
			continue
		}

		n.resetAttempts()
		if n.pending {
			cmd, _ := command.Transition(n.pendingColor, tc)
			size := n.pendingSize
			n.pending = false
			return Outcome{Command: cmd, BlockSize: size}
		}
		return Outcome{}
	}
}

func (n *Nav) resetAttempts() {
	n.whiteAttempts = 0
	n.chromaticAttempts = 0
}
