/*
 * esomachine - Piet machine state and run loop.
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

// Package machine ties the Piet navigator, executor and value stack
// together into one program state, plus the run loop, step cap and
// trace hook. The loop itself is a plain synchronous for-loop: Piet
// programs are single-threaded and non-suspending, so there is no event
// channel or goroutine here.
package machine

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/piet/color"
	"github.com/rcornwell/esomachine/internal/piet/exec"
	"github.com/rcornwell/esomachine/internal/piet/grid"
	"github.com/rcornwell/esomachine/internal/piet/navigate"
	"github.com/rcornwell/esomachine/internal/stack"
)

// Trace receives one record per executed step, for the interactive
// debugger and --trace logging.
type Trace struct {
	Step  int
	X, Y  int
	DP    string
	CC    string
	Cmd   string
	Stack []int64
}

// Machine is a complete Piet program: its codel grid, navigator, value
// stack and step counter.
type Machine struct {
	grid  *grid.Grid
	nav   *navigate.Nav
	stack *stack.Stack
	io    exec.IO

	step    int
	stepCap int // 0 means unbounded.

	OnTrace func(Trace)
}

// Options configures a new Machine.
type Options struct {
	StepCap  int // 0 for unbounded.
	StackCap int // 0 for unbounded.
	IO       exec.IO
}

// New builds a Machine starting at (0, 0) with DP=Right, CC=Left.
func New(g *grid.Grid, opts Options) *Machine {
	st := stack.New()
	if opts.StackCap > 0 {
		st = stack.NewBounded(opts.StackCap)
	}
	return &Machine{
		grid:    g,
		nav:     navigate.New(0, 0),
		stack:   st,
		io:      opts.IO,
		stepCap: opts.StepCap,
	}
}

// Stack exposes the value stack for inspection by the step debugger.
func (m *Machine) Stack() *stack.Stack { return m.stack }

// Position returns the navigator's current codel coordinates.
func (m *Machine) Position() (x, y int) { return m.nav.Position() }

// StepCount returns the number of steps executed so far.
func (m *Machine) StepCount() int { return m.step }

// Registers reports the navigator's position, direction pointer and
// codel chooser, for the interactive debugger's "show regs".
func (m *Machine) Registers() string {
	x, y := m.nav.Position()
	return fmt.Sprintf("pos=(%d,%d) dp=%s cc=%s", x, y, m.nav.DP(), m.nav.CC())
}

// hueGlyph renders a chromatic hue as a single lowercase letter; the
// lightness tier follows as a digit (0=light, 1=normal, 2=dark).
var hueGlyph = [6]byte{'r', 'y', 'g', 'c', 'b', 'm'}

func glyph(c color.Color) string {
	switch {
	case c == color.White:
		return ".."
	case c == color.Black:
		return "##"
	case c.IsChromatic():
		hue, lightness := color.Decompose(c)
		return string(hueGlyph[hue]) + strconv.Itoa(lightness)
	default:
		return "??"
	}
}

// GridString renders the codel grid as text, one two-character cell per
// codel, with the navigator's current position marked "@@", for the
// interactive debugger's "show grid".
func (m *Machine) GridString() string {
	cx, cy := m.nav.Position()
	var b strings.Builder
	fmt.Fprintf(&b, "grid %dx%d cursor=(%d,%d)\n", m.grid.Width(), m.grid.Height(), cx, cy)
	for y := 0; y < m.grid.Height(); y++ {
		for x := 0; x < m.grid.Width(); x++ {
			if x != 0 {
				b.WriteByte(' ')
			}
			if x == cx && y == cy {
				b.WriteString("@@")
				continue
			}
			b.WriteString(glyph(m.grid.At(x, y)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Step executes exactly one navigator step and applies whatever command
// it reports. It returns true once the program has halted, either
// because the current codel is black, by exhausting the eight-retry
// protocol, by hitting the configured step cap, or on an executor error.
func (m *Machine) Step() (halted bool, err error) {
	if m.stepCap > 0 && m.step >= m.stepCap {
		return true, machineerr.StepCapExceeded
	}

	outcome := m.nav.Step(m.grid)
	m.step++

	if outcome.Terminated {
		return true, nil
	}

	if err := exec.Apply(m.step, outcome.Command, outcome.BlockSize, m.stack, m.nav, m.io); err != nil {
		return true, err
	}

	if m.OnTrace != nil {
		x, y := m.nav.Position()
		m.OnTrace(Trace{
			Step:  m.step,
			X:     x,
			Y:     y,
			DP:    m.nav.DP().String(),
			CC:    m.nav.CC().String(),
			Cmd:   outcome.Command.String(),
			Stack: m.stack.Snapshot(),
		})
	}
	return false, nil
}

// Run steps the machine until it halts. A clean halt (eight-retry
// exhaustion, or a black starting codel) returns machineerr.Terminated;
// hitting the step cap returns machineerr.StepCapExceeded. Both are
// sentinel successes, not failures -- callers distinguish them from a
// real executor error with machineerr.Is. Any other error comes from
// the executor: an I/O failure or machineerr.StackOverflowCap.
func (m *Machine) Run() error {
	for {
		halted, err := m.Step()
		if err != nil && !machineerr.Is(err, machineerr.StepCapExceeded) {
			return err
		}
		if halted {
			if err == nil {
				err = machineerr.Terminated
			}
			slog.Debug("piet machine halted", "reason", err)
			return err
		}
	}
}

