/*
 * esomachine - Piet color block finder.
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

// Package block implements the Piet color block finder: given an entry
// codel, compute the maximal 4-connected region of
// identically-colored codels reachable from it, and pick the exit codel
// for a given direction pointer / codel chooser. Traversal uses an
// explicit worklist and a visited set (a map keyed by codel) rather than
// recursion, so a large uniform block cannot blow the call stack.
package block

import (
	"github.com/rcornwell/esomachine/internal/piet/color"
	"github.com/rcornwell/esomachine/internal/piet/grid"
)

// Direction is the direction pointer.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	default:
		return "invalid"
	}
}

// Clockwise rotates the direction pointer clockwise by n steps; n may
// be negative for counter-clockwise rotation.
func (d Direction) Clockwise(n int) Direction {
	return Direction(((int(d)+n)%4 + 4) % 4)
}

// Step returns the (dx, dy) unit offset for this direction.
func (d Direction) Step() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	return 0, 0
}

// Chooser is the codel chooser.
type Chooser int

const (
	CCLeft Chooser = iota
	CCRight
)

// Toggle flips the codel chooser.
func (c Chooser) Toggle() Chooser {
	if c == CCLeft {
		return CCRight
	}
	return CCLeft
}

func (c Chooser) String() string {
	if c == CCLeft {
		return "left"
	}
	return "right"
}

type point struct{ x, y int }

// Find computes the maximal 4-connected region of color c reachable
// from (x, y) and returns the exit codel selected by dp/cc plus the
// region's size. The caller guarantees grid.At(x, y) == c.
func Find(g *grid.Grid, x, y int, c color.Color, dp Direction, cc Chooser) (exitX, exitY, size int) {
	visited := make(map[point]bool)
	queue := []point{{x, y}}
	visited[point{x, y}] = true

	var region []point
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region = append(region, p)

		neighbors := [4]point{
			{p.x + 1, p.y}, {p.x - 1, p.y},
			{p.x, p.y + 1}, {p.x, p.y - 1},
		}
		for _, n := range neighbors {
			if visited[n] {
				continue
			}
			if !g.InBounds(n.x, n.y) {
				continue
			}
			if g.At(n.x, n.y) != c {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	ex, ey := selectExit(region, dp, cc)
	return ex, ey, len(region)
}

// selectExit picks the extreme cell of region along dp, breaking ties
// along the perpendicular axis per cc.
func selectExit(region []point, dp Direction, cc Chooser) (x, y int) {
	best := region[0]
	for _, p := range region[1:] {
		if better(p, best, dp, cc) {
			best = p
		}
	}
	return best.x, best.y
}

// better reports whether candidate should replace current as the
// extreme cell under dp/cc.
func better(cand, cur point, dp Direction, cc Chooser) bool {
	switch dp {
	case Right:
		if cand.x != cur.x {
			return cand.x > cur.x
		}
		if cc == CCLeft {
			return cand.y < cur.y
		}
		return cand.y > cur.y
	case Left:
		if cand.x != cur.x {
			return cand.x < cur.x
		}
		if cc == CCLeft {
			return cand.y > cur.y
		}
		return cand.y < cur.y
	case Down:
		if cand.y != cur.y {
			return cand.y > cur.y
		}
		if cc == CCLeft {
			return cand.x > cur.x
		}
		return cand.x < cur.x
	case Up:
		if cand.y != cur.y {
			return cand.y < cur.y
		}
		if cc == CCLeft {
			return cand.x < cur.x
		}
		return cand.x > cur.x
	}
	return false
}
