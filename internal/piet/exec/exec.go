/*
 * esomachine - Piet command executor.
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

// Package exec applies a decoded Piet command to the value stack and,
// for pointer/switch, the navigator's DP/CC registers.
// Every operation is total: an operation short of operands is a no-op on
// both the stack and the registers, never an error, matching the Piet
// language reference.
package exec

import (
	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/piet/command"
	"github.com/rcornwell/esomachine/internal/piet/navigate"
	"github.com/rcornwell/esomachine/internal/stack"
	"github.com/rcornwell/esomachine/internal/util/debug"
)

// IO is the console collaborator a Piet program's in_num/in_char/out_num/
// out_char commands drive. ok is false on EOF or a malformed in_num line,
// in which case Apply leaves the stack untouched.
type IO interface {
	OutChar(v int64) error
	OutNum(v int64) error
	InChar() (v int64, ok bool)
	InNum() (v int64, ok bool)
}

// Apply executes cmd against st and nav. blockSize is the push argument
// for command.Push, the size of the color block the step just left.
// step identifies this command for --trace / internal/util/debug
// output; it is otherwise unused.
func Apply(step int, cmd command.Command, blockSize int, st *stack.Stack, nav *navigate.Nav, io IO) error {
	switch cmd {
	case command.None:
		return nil
	}

	debug.Tracef(step, debug.Exec, "cmd=%s block=%d", cmd, blockSize)
	if debug.Enabled(debug.Stack) {
		debug.Tracef(step, debug.Stack, "stack=%v", st.Snapshot())
	}

	switch cmd {
	case command.Push:
		if !st.Push(int64(blockSize)) {
			return machineerr.StackOverflowCap
		}
	case command.Pop:
		st.Pop()
	case command.Add:
		binary(st, func(a, b int64) (int64, bool) { return a + b, true })
	case command.Sub:
		binary(st, func(a, b int64) (int64, bool) { return a - b, true })
	case command.Mul:
		binary(st, func(a, b int64) (int64, bool) { return a * b, true })
	case command.Div:
		binary(st, func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		})
	case command.Mod:
		binary(st, func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return floorMod(a, b), true
		})
	case command.Not:
		unary(st, func(a int64) int64 {
			if a == 0 {
				return 1
			}
			return 0
		})
	case command.Greater:
		binary(st, func(a, b int64) (int64, bool) {
			if a > b {
				return 1, true
			}
			return 0, true
		})
	case command.Pointer:
		if v, ok := st.Pop(); ok {
			nav.RotateDP(int(v))
		}
	case command.Switch:
		if v, ok := st.Pop(); ok {
			nav.ToggleCC(int(v))
		}
	case command.Dup:
		st.Dup()
	case command.Roll:
		roll(st)
	case command.InNum:
		if v, ok := io.InNum(); ok {
			if !st.Push(v) {
				return machineerr.StackOverflowCap
			}
		}
	case command.InChar:
		if v, ok := io.InChar(); ok {
			if !st.Push(v) {
				return machineerr.StackOverflowCap
			}
		}
	case command.OutNum:
		if v, ok := st.Pop(); ok {
			return io.OutNum(v)
		}
	case command.OutChar:
		if v, ok := st.Pop(); ok {
			return io.OutChar(v)
		}
	}
	return nil
}

// binary pops b then a, applies f, and pushes the result. If fewer than
// two operands are present, or f reports failure (a zero divisor), the
// stack is left exactly as it was.
func binary(st *stack.Stack, f func(a, b int64) (int64, bool)) {
	if st.Len() < 2 {
		return
	}
	b, _ := st.Pop()
	a, _ := st.Pop()
	if res, ok := f(a, b); ok {
		st.Push(res)
		return
	}
	st.Push(a)
	st.Push(b)
}

// unary pops the top, applies f, and pushes the result. No-op if empty.
func unary(st *stack.Stack, f func(a int64) int64) {
	a, ok := st.Pop()
	if !ok {
		return
	}
	st.Push(f(a))
}

// roll pops count then depth and rotates the remaining stack. Fewer than
// two operands, or a depth that is negative or exceeds the items left
// beneath the operands, leaves the stack untouched.
func roll(st *stack.Stack) {
	if st.Len() < 2 {
		return
	}
	if d, _ := st.Peek(1); d < 0 || d > int64(st.Len()-2) {
		return
	}
	count, _ := st.Pop()
	depth, _ := st.Pop()
	st.Roll(int(depth), int(count))
}

// floorMod returns a mod b with the sign of b, the convention the Piet
// language reference uses (as opposed to Go's truncating %).
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
