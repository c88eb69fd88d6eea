/*
 * esomachine - Whitespace virtual machine (pass 2).
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

// Package vm is the Whitespace execution engine: decode one instruction
// at a time from the position a Program's label table was built
// against, and dispatch it against the value stack, heap and call
// stack. Division/modulo by zero and heap address bounds are fatal,
// matching the reference Whitespace interpreters' behavior.
package vm

import (
	"fmt"

	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/stack"
	"github.com/rcornwell/esomachine/internal/util/debug"
	"github.com/rcornwell/esomachine/internal/whitespace/instr"
	"github.com/rcornwell/esomachine/internal/whitespace/lexer"
	"github.com/rcornwell/esomachine/internal/whitespace/program"
)

// HeapSize bounds valid heap addresses to [0, HeapSize), matching the
// fixed-size HEAP_SIZE array the reference interpreters use.
const HeapSize = 1 << 16

// IO is the console collaborator in_char/in_num/out_char/out_num drive.
// InChar and InNum already resolve EOF and parse-failure to fixed
// sentinels (-1 on EOF; 0 on a malformed in_num line), so the VM itself
// never special-cases them.
type IO interface {
	OutChar(v int64) error
	OutNum(v int64) error
	InChar() int64
	InNum() int64
}

// Trace receives one record per executed instruction, for --trace
// logging and the interactive step debugger.
type Trace struct {
	Step int
	PC   int
	Op   string
}

// VM is a running Whitespace program.
type VM struct {
	lex    *lexer.Lexer
	labels map[lexer.Label]int
	stack  *stack.Stack
	heap   map[int64]int64
	calls  []int
	io     IO

	step    int
	stepCap int // 0 means unbounded.

	OnTrace func(Trace)
}

// Options configures a new VM.
type Options struct {
	StepCap  int // 0 for unbounded.
	StackCap int // 0 for unbounded.
	IO       IO
}

// New returns a VM ready to execute prog from its start.
func New(prog *program.Program, opts Options) *VM {
	st := stack.New()
	if opts.StackCap > 0 {
		st = stack.NewBounded(opts.StackCap)
	}
	return &VM{
		lex:     lexer.New(prog.Source),
		labels:  prog.Labels,
		stack:   st,
		heap:    make(map[int64]int64),
		io:      opts.IO,
		stepCap: opts.StepCap,
	}
}

// Stack exposes the value stack for inspection by the step debugger.
func (vm *VM) Stack() *stack.Stack { return vm.stack }

// StepCount returns the number of instructions executed so far.
func (vm *VM) StepCount() int { return vm.step }

// Registers reports the VM's program counter and call-stack depth, for
// the interactive debugger's "show regs".
func (vm *VM) Registers() string {
	return fmt.Sprintf("pc=%d calls=%d", vm.lex.Pos(), len(vm.calls))
}

// HeapSnapshot exposes the sparse heap for inspection by the step
// debugger's "show heap".
func (vm *VM) HeapSnapshot() map[int64]int64 { return vm.heap }

// Step decodes and executes exactly one instruction. halted is true
// once an end instruction has run, or err is non-nil.
func (vm *VM) Step() (halted bool, err error) {
	if vm.stepCap > 0 && vm.step >= vm.stepCap {
		return true, machineerr.StepCapExceeded
	}

	in, err := instr.Decode(vm.lex)
	if err != nil {
		return true, err
	}
	vm.step++

	halted, err = vm.execute(in)
	if err != nil {
		return true, err
	}

	if vm.OnTrace != nil {
		vm.OnTrace(Trace{Step: vm.step, PC: in.Pos, Op: in.Op.String()})
	}
	return halted, nil
}

// Run steps the VM until it halts. A clean halt (an end instruction)
// returns machineerr.Terminated; hitting the step cap returns
// machineerr.StepCapExceeded. Both are sentinel successes, not
// failures -- callers distinguish them from a real fatal error with
// machineerr.Is.
func (vm *VM) Run() error {
	for {
		halted, err := vm.Step()
		if err != nil && !machineerr.Is(err, machineerr.StepCapExceeded) {
			return err
		}
		if halted {
			if err == nil {
				err = machineerr.Terminated
			}
			return err
		}
	}
}

func (vm *VM) execute(in instr.Instr) (halted bool, err error) {
	debug.Tracef(vm.step, debug.VM, "pc=%d op=%s", in.Pos, in.Op)

	switch in.Op {
	case instr.Push:
		if !vm.stack.Push(in.Num) {
			return false, machineerr.StackOverflowCap
		}
	case instr.Dup:
		vm.stack.Dup()
	case instr.Swap:
		vm.stack.Swap()
	case instr.Discard:
		vm.stack.Pop()
	case instr.Copy:
		if v, ok := vm.stack.Peek(int(in.Num)); ok {
			if !vm.stack.Push(v) {
				return false, machineerr.StackOverflowCap
			}
		}
	case instr.Slide:
		vm.slide(in.Num)

	case instr.Add:
		return false, vm.binary(func(a, b int64) (int64, error) { return a + b, nil })
	case instr.Sub:
		return false, vm.binary(func(a, b int64) (int64, error) { return a - b, nil })
	case instr.Mul:
		return false, vm.binary(func(a, b int64) (int64, error) { return a * b, nil })
	case instr.Div:
		return false, vm.binary(func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, machineerr.DivisionByZero
			}
			return a / b, nil
		})
	case instr.Mod:
		return false, vm.binary(func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, machineerr.DivisionByZero
			}
			return a % b, nil
		})

	case instr.Store:
		value, _ := vm.stack.Pop()
		addr, _ := vm.stack.Pop()
		if addr < 0 || addr >= HeapSize {
			return false, machineerr.HeapOutOfBounds
		}
		vm.heap[addr] = value
		if debug.Enabled(debug.Heap) {
			debug.Tracef(vm.step, debug.Heap, "store addr=%d value=%d", addr, value)
		}
	case instr.Load:
		addr, _ := vm.stack.Pop()
		if addr < 0 || addr >= HeapSize {
			return false, machineerr.HeapOutOfBounds
		}
		v := vm.heap[addr]
		if !vm.stack.Push(v) {
			return false, machineerr.StackOverflowCap
		}
		if debug.Enabled(debug.Heap) {
			debug.Tracef(vm.step, debug.Heap, "load addr=%d value=%d", addr, v)
		}

	case instr.Mark:
		// Already recorded by the label-collection pass; nothing to do.
	case instr.Call:
		target, ok := vm.labels[in.Label]
		if !ok {
			return false, machineerr.UndefinedLabel
		}
		vm.calls = append(vm.calls, in.After)
		vm.lex.Seek(target)
	case instr.Jump:
		target, ok := vm.labels[in.Label]
		if !ok {
			return false, machineerr.UndefinedLabel
		}
		vm.lex.Seek(target)
	case instr.Jz:
		target, ok := vm.labels[in.Label]
		if !ok {
			return false, machineerr.UndefinedLabel
		}
		if v, ok := vm.stack.Pop(); ok && v == 0 {
			vm.lex.Seek(target)
		}
	case instr.Jn:
		target, ok := vm.labels[in.Label]
		if !ok {
			return false, machineerr.UndefinedLabel
		}
		if v, ok := vm.stack.Pop(); ok && v < 0 {
			vm.lex.Seek(target)
		}
	case instr.Return:
		n := len(vm.calls)
		if n == 0 {
			return false, machineerr.UndefinedLabel
		}
		target := vm.calls[n-1]
		vm.calls = vm.calls[:n-1]
		vm.lex.Seek(target)
	case instr.End:
		return true, nil

	case instr.OutChar:
		if v, ok := vm.stack.Pop(); ok {
			return false, vm.io.OutChar(v)
		}
	case instr.OutNum:
		if v, ok := vm.stack.Pop(); ok {
			return false, vm.io.OutNum(v)
		}
	case instr.InChar:
		if addr, ok := vm.stack.Pop(); ok {
			if addr < 0 || addr >= HeapSize {
				return false, machineerr.HeapOutOfBounds
			}
			vm.heap[addr] = vm.io.InChar()
		}
	case instr.InNum:
		if addr, ok := vm.stack.Pop(); ok {
			if addr < 0 || addr >= HeapSize {
				return false, machineerr.HeapOutOfBounds
			}
			vm.heap[addr] = vm.io.InNum()
		}
	}
	return false, nil
}

// binary pops b then a, applies f, and pushes the result: the operand
// deeper on the stack is the left-hand side.
func (vm *VM) binary(f func(a, b int64) (int64, error)) error {
	b, _ := vm.stack.Pop()
	a, _ := vm.stack.Pop()
	v, err := f(a, b)
	if err != nil {
		return err
	}
	vm.stack.Push(v)
	return nil
}

// slide preserves the top element, discards up to n elements beneath
// it (fewer if the stack runs out), then re-pushes the preserved top.
// A negative n (only reachable via the sign-encoded number parameter)
// discards nothing.
func (vm *VM) slide(n int64) {
	top, ok := vm.stack.Pop()
	if !ok {
		return
	}
	for i := int64(0); i < n; i++ {
		if _, ok := vm.stack.Pop(); !ok {
			break
		}
	}
	vm.stack.Push(top)
}
