/*
 * esomachine - Masked trace output.
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

// Package debug provides a masked-category trace facility, gated by both
// a category bitmask and an optional step range, so a long-running
// program can be traced for only the region of execution the user cares
// about rather than flooding the log from step zero.
package debug

import (
	"fmt"
	"io"
	"os"
)

// Category identifies a subsystem whose trace output can be toggled
// independently of the others.
type Category int

const (
	Nav Category = 1 << iota
	Exec
	Stack
	Heap
	VM
	Lexer
	IO
)

var (
	mask              Category
	out     io.Writer = os.Stderr
	from    int
	to      int = -1 // negative means unbounded.
)

// SetMask replaces the set of categories that produce output. Categories
// are ORed together, e.g. SetMask(Nav | Exec).
func SetMask(m Category) { mask = m }

// SetOutput redirects trace lines; nil restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// SetStepRange restricts trace output to steps in [first, last]. A
// negative last means unbounded.
func SetStepRange(first, last int) {
	from, to = first, last
}

func inRange(step int) bool {
	if step < from {
		return false
	}
	return to < 0 || step <= to
}

// Tracef writes a trace line for step under category cat, if cat is
// enabled in the current mask and step falls within the configured
// range. It is a no-op otherwise, so callers need not guard the call
// themselves.
func Tracef(step int, cat Category, format string, a ...interface{}) {
	if mask&cat == 0 || !inRange(step) {
		return
	}
	fmt.Fprintf(out, "%6d: "+format+"\n", append([]interface{}{step}, a...)...)
}

// Enabled reports whether cat would currently produce output.
func Enabled(cat Category) bool { return mask&cat != 0 }
