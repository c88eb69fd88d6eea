/*
 * esomachine - Interactive step debugger.
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

// Package console is the interactive step debugger both interpreter
// CLIs install with --interactive: a liner-backed REPL of short
// commands (step, run, trace, show, break, quit) driving anything that
// satisfies Steppable.
package console

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/stack"
	"github.com/rcornwell/esomachine/internal/util/hexfmt"
)

// Steppable is anything that can be single-stepped and inspected. Both
// the Piet machine and the Whitespace VM satisfy it already.
type Steppable interface {
	Step() (halted bool, err error)
	StepCount() int
	Stack() *stack.Stack
}

// Positioner is satisfied by Steppables that also track 2-D position,
// currently only the Piet machine.
type Positioner interface {
	Position() (x, y int)
}

// Registerer is satisfied by Steppables that can render their registers
// (navigator DP/CC, VM program counter and call depth) as a line of
// text, for "show regs".
type Registerer interface {
	Registers() string
}

// Heaper is satisfied by Steppables with address-indexed memory,
// currently only the Whitespace VM, for "show heap".
type Heaper interface {
	HeapSnapshot() map[int64]int64
}

// Grider is satisfied by Steppables with a 2-D program store, currently
// only the Piet machine, for "show grid".
type Grider interface {
	GridString() string
}

type cmd struct {
	name    string
	min     int
	process func(*console, []string) (bool, error)
}

var cmdList = []cmd{
	{name: "step", min: 1, process: (*console).step},
	{name: "run", min: 1, process: (*console).run},
	{name: "trace", min: 2, process: (*console).trace},
	{name: "show", min: 2, process: (*console).show},
	{name: "break", min: 2, process: (*console).setBreak},
	{name: "quit", min: 1, process: (*console).quit},
}

type console struct {
	target Steppable
	prompt string

	traceOn    bool
	breakAt    int // 0 means no breakpoint.
	hasBreakAt bool
}

// Run drives target from an interactive prompt until the user quits or
// the program halts on its own. prompt is the line prefix, e.g.
// "piet> " or "whitespace> ".
func Run(target Steppable, prompt string) error {
	c := &console{target: target, prompt: prompt}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer)

	for {
		input, err := line.Prompt(c.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		line.AppendHistory(input)

		quit, err := c.dispatch(input)
		if err != nil {
			fmt.Println("error: " + err.Error())
		}
		if quit {
			return nil
		}
	}
}

func completer(line string) []string {
	word := strings.ToLower(strings.TrimSpace(line))
	var matches []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, word) {
			matches = append(matches, c.name)
		}
	}
	return matches
}

func (c *console) dispatch(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	var match *cmd
	for i := range cmdList {
		if matchName(cmdList[i], name) {
			if match != nil {
				return false, errors.New("ambiguous command: " + name)
			}
			match = &cmdList[i]
		}
	}
	if match == nil {
		return false, errors.New("unknown command: " + name)
	}
	return match.process(c, args)
}

func matchName(c cmd, name string) bool {
	if len(name) > len(c.name) || len(name) < c.min {
		return false
	}
	return c.name[:len(name)] == name
}

func (c *console) step(args []string) (bool, error) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return false, errors.New("step count must be a number: " + args[0])
		}
		n = v
	}
	for i := 0; i < n; i++ {
		halted, err := c.target.Step()
		c.report()
		if err != nil && !machineerr.Is(err, machineerr.StepCapExceeded) {
			return false, err
		}
		if halted {
			fmt.Println("halted")
			return false, nil
		}
	}
	return false, nil
}

func (c *console) run(_ []string) (bool, error) {
	for {
		halted, err := c.target.Step()
		if c.traceOn {
			c.report()
		}
		if err != nil && !machineerr.Is(err, machineerr.StepCapExceeded) {
			return false, err
		}
		if halted {
			fmt.Println("halted")
			return false, nil
		}
		if c.hasBreakAt && c.target.StepCount() >= c.breakAt {
			fmt.Printf("breakpoint at step %d\n", c.target.StepCount())
			return false, nil
		}
	}
}

func (c *console) trace(args []string) (bool, error) {
	if len(args) == 0 {
		c.traceOn = !c.traceOn
	} else {
		switch strings.ToLower(args[0]) {
		case "on":
			c.traceOn = true
		case "off":
			c.traceOn = false
		default:
			return false, errors.New("trace argument must be on or off: " + args[0])
		}
	}
	fmt.Printf("trace %v\n", c.traceOn)
	return false, nil
}

// show prints a machine-state view. With no argument it prints the
// same one-line summary as "step"/"run"; "stack", "heap", "grid" and
// "regs" print just that piece, and fail if the target doesn't expose
// it (e.g. "show heap" against a Piet machine).
func (c *console) show(args []string) (bool, error) {
	if len(args) == 0 {
		c.report()
		return false, nil
	}
	switch strings.ToLower(args[0]) {
	case "stack":
		var b strings.Builder
		b.WriteString("stack [")
		hexfmt.FormatStack(&b, c.target.Stack().Snapshot())
		b.WriteString("]")
		fmt.Println(b.String())
	case "heap":
		h, ok := c.target.(Heaper)
		if !ok {
			return false, errors.New("show heap: not supported by this machine")
		}
		fmt.Println(formatHeap(h.HeapSnapshot()))
	case "grid":
		g, ok := c.target.(Grider)
		if !ok {
			return false, errors.New("show grid: not supported by this machine")
		}
		fmt.Print(g.GridString())
	case "regs":
		r, ok := c.target.(Registerer)
		if !ok {
			return false, errors.New("show regs: not supported by this machine")
		}
		fmt.Printf("step %d %s\n", c.target.StepCount(), r.Registers())
	default:
		return false, errors.New("show argument must be stack, heap, grid or regs: " + args[0])
	}
	return false, nil
}

// formatHeap renders a sparse heap sorted by address, since map
// iteration order is undefined and the debugger output must be stable.
func formatHeap(heap map[int64]int64) string {
	addrs := make([]int64, 0, len(heap))
	for addr := range heap {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	var b strings.Builder
	b.WriteString("heap {")
	for i, addr := range addrs {
		if i != 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%d", addr, heap[addr])
	}
	b.WriteString("}")
	return b.String()
}

func (c *console) setBreak(args []string) (bool, error) {
	if len(args) == 0 {
		c.hasBreakAt = false
		fmt.Println("breakpoint cleared")
		return false, nil
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return false, errors.New("break step must be a number: " + args[0])
	}
	c.breakAt, c.hasBreakAt = v, true
	fmt.Printf("breakpoint set at step %d\n", v)
	return false, nil
}

func (c *console) quit(_ []string) (bool, error) {
	return true, nil
}

func (c *console) report() {
	var b strings.Builder
	fmt.Fprintf(&b, "step %d", c.target.StepCount())
	if p, ok := c.target.(Positioner); ok {
		x, y := p.Position()
		fmt.Fprintf(&b, " pos (%d,%d)", x, y)
	}
	b.WriteString(" stack [")
	hexfmt.FormatStack(&b, c.target.Stack().Snapshot())
	b.WriteString("]")
	fmt.Println(b.String())
}
