/*
 * esomachine - Shared signed-integer value stack.
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

// Package stack implements the growable signed-integer value stack used
// by both the Piet executor and the Whitespace VM. Every operation is
// total: underflow is a no-op, never a panic.
package stack

// Stack is a LIFO sequence of 64-bit signed integers. The zero value is
// an empty, usable stack. A Stack is not safe for concurrent use.
type Stack struct {
	data []int64
	cap  int // optional ceiling; 0 means unbounded.
}

// New returns an empty stack with no configured ceiling.
func New() *Stack {
	return &Stack{}
}

// NewBounded returns an empty stack that refuses to grow past ceiling
// items. A ceiling of 0 means unbounded, matching New.
func NewBounded(ceiling int) *Stack {
	return &Stack{cap: ceiling}
}

// Len returns the number of items currently on the stack.
func (s *Stack) Len() int {
	return len(s.data)
}

// atCeiling reports whether the stack is at its configured ceiling and
// cannot grow further.
func (s *Stack) atCeiling() bool {
	return s.cap > 0 && len(s.data) >= s.cap
}

// Push appends v to the top of the stack. Push is a no-op if the stack
// is bounded and already at its ceiling.
func (s *Stack) Push(v int64) bool {
	if s.atCeiling() {
		return false
	}
	s.data = append(s.data, v)
	return true
}

// Pop removes and returns the top of the stack. ok is false, and the
// stack is left unchanged, when the stack is empty.
func (s *Stack) Pop() (v int64, ok bool) {
	n := len(s.data)
	if n == 0 {
		return 0, false
	}
	v = s.data[n-1]
	s.data = s.data[:n-1]
	return v, true
}

// Peek returns the n-th item from the top (0-based, 0 is the top).
// ok is false if the stack does not hold that many items.
func (s *Stack) Peek(n int) (v int64, ok bool) {
	idx := len(s.data) - 1 - n
	if n < 0 || idx < 0 {
		return 0, false
	}
	return s.data[idx], true
}

// Dup pushes a copy of the top item. No-op on an empty stack.
func (s *Stack) Dup() {
	n := len(s.data)
	if n == 0 {
		return
	}
	s.Push(s.data[n-1])
}

// Swap exchanges the top two items. No-op if fewer than two are
// present.
func (s *Stack) Swap() {
	n := len(s.data)
	if n < 2 {
		return
	}
	s.data[n-1], s.data[n-2] = s.data[n-2], s.data[n-1]
}

// Roll rotates the top depth items by count positions; a positive count
// lifts the bottom of the rotated range toward the top. count is taken
// modulo depth with a positive remainder first. Roll is a no-op if
// depth is negative or exceeds the stack size.
func (s *Stack) Roll(depth, count int) {
	n := len(s.data)
	if depth < 0 || depth > n {
		return
	}
	if depth == 0 {
		return
	}
	count %= depth
	if count < 0 {
		count += depth
	}
	if count == 0 {
		return
	}

	base := n - depth
	window := s.data[base:n]
	rotated := make([]int64, depth)
	for i, v := range window {
		rotated[(i+count)%depth] = v
	}
	copy(window, rotated)
}

// Snapshot returns a copy of the stack contents, bottom first, for
// inspection (trace output, the step-debugger "show stack" command).
// Mutating the returned slice does not affect the stack.
func (s *Stack) Snapshot() []int64 {
	out := make([]int64, len(s.data))
	copy(out, s.data)
	return out
}

// Clear empties the stack.
func (s *Stack) Clear() {
	s.data = s.data[:0]
}
