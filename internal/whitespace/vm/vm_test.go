package vm

import (
	"testing"

	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/whitespace/program"
)

func num(n int64) []byte {
	sign := byte(' ')
	v := n
	if n < 0 {
		sign = '\t'
		v = -v
	}
	var digits []byte
	started := false
	for i := 63; i >= 0; i-- {
		bit := (v >> uint(i)) & 1
		if bit == 1 {
			started = true
		}
		if started {
			if bit == 1 {
				digits = append(digits, '\t')
			} else {
				digits = append(digits, ' ')
			}
		}
	}
	out := []byte{sign}
	out = append(out, digits...)
	return append(out, '\n')
}

func label(bits string) []byte {
	out := make([]byte, 0, len(bits)+1)
	for _, c := range bits {
		if c == '0' {
			out = append(out, ' ')
		} else {
			out = append(out, '\t')
		}
	}
	return append(out, '\n')
}

func push(n int64) []byte     { return append([]byte{' ', ' '}, num(n)...) }
func dup() []byte             { return []byte{' ', '\n', ' '} }
func add() []byte             { return []byte{'\t', ' ', ' ', ' '} }
func mark(bits string) []byte { return append([]byte{'\n', ' ', ' '}, label(bits)...) }
func jump(bits string) []byte { return append([]byte{'\n', ' ', '\n'}, label(bits)...) }
func jz(bits string) []byte   { return append([]byte{'\n', '\t', ' '}, label(bits)...) }
func store() []byte           { return []byte{'\t', '\t', ' '} }
func load() []byte            { return []byte{'\t', '\t', '\t'} }
func outChar() []byte         { return []byte{'\t', '\n', ' ', ' '} }
func outNum() []byte          { return []byte{'\t', '\n', ' ', '\t'} }
func div() []byte             { return []byte{'\t', ' ', '\t', ' '} }
func end() []byte             { return []byte{'\n', '\n', '\n'} }

func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

type recordIO struct {
	chars []int64
	nums  []int64
}

func (r *recordIO) OutChar(v int64) error { r.chars = append(r.chars, v); return nil }
func (r *recordIO) OutNum(v int64) error  { r.nums = append(r.nums, v); return nil }
func (r *recordIO) InChar() int64         { return -1 }
func (r *recordIO) InNum() int64          { return 0 }

func run(t *testing.T, src []byte, io IO) *VM {
	t.Helper()
	prog, err := program.Load(src)
	if err != nil {
		t.Fatalf("program.Load returned error: %v", err)
	}
	v := New(prog, Options{IO: io})
	if err := v.Run(); !machineerr.Is(err, machineerr.Terminated) {
		t.Fatalf("Run returned: %v expected: Terminated", err)
	}
	return v
}

func TestHelloWorldPrintsHi(t *testing.T) {
	src := join(push(72), outChar(), push(105), outChar(), end())
	io := &recordIO{}
	run(t, src, io)
	if len(io.chars) != 2 || io.chars[0] != 72 || io.chars[1] != 105 {
		t.Fatalf("chars got: %v expected: [72 105]", io.chars)
	}
}

func TestHeapRoundTrip(t *testing.T) {
	src := join(push(42), push(7), store(), push(42), load(), outNum(), end())
	io := &recordIO{}
	run(t, src, io)
	if len(io.nums) != 1 || io.nums[0] != 7 {
		t.Fatalf("nums got: %v expected: [7]", io.nums)
	}
}

func TestLabelsAndJumps(t *testing.T) {
	// mark(A); push 0; jz(B); jump(A); mark(B); push 120; out_char; end
	src := join(
		mark("0"), push(0), jz("1"), jump("0"),
		mark("1"), push(120), outChar(), end(),
	)
	io := &recordIO{}
	run(t, src, io)
	if len(io.chars) != 1 || io.chars[0] != 120 {
		t.Fatalf("chars got: %v expected: [120]", io.chars)
	}
}

func TestPushDupAddDoublesValue(t *testing.T) {
	src := join(push(21), dup(), add(), outNum(), end())
	io := &recordIO{}
	run(t, src, io)
	if len(io.nums) != 1 || io.nums[0] != 42 {
		t.Fatalf("nums got: %v expected: [42]", io.nums)
	}
}

func TestDivisionByZeroIsFatal(t *testing.T) {
	src := join(push(1), push(0), div(), end())
	prog, err := program.Load(src)
	if err != nil {
		t.Fatalf("program.Load returned error: %v", err)
	}
	v := New(prog, Options{IO: &recordIO{}})
	if err := v.Run(); !machineerr.Is(err, machineerr.DivisionByZero) {
		t.Errorf("Run returned: %v expected: DivisionByZero", err)
	}
}

func TestUndefinedLabelIsFatal(t *testing.T) {
	src := join(jump("1"), end())
	prog, err := program.Load(src)
	if err != nil {
		t.Fatalf("program.Load returned error: %v", err)
	}
	v := New(prog, Options{IO: &recordIO{}})
	if err := v.Run(); !machineerr.Is(err, machineerr.UndefinedLabel) {
		t.Errorf("Run returned: %v expected: UndefinedLabel", err)
	}
}

func TestStepCapHaltsCleanly(t *testing.T) {
	// An infinite loop: mark(A); jump(A). Without a step cap this never
	// halts.
	src := join(mark("0"), jump("0"))
	prog, err := program.Load(src)
	if err != nil {
		t.Fatalf("program.Load returned error: %v", err)
	}
	v := New(prog, Options{StepCap: 5, IO: &recordIO{}})
	if err := v.Run(); !machineerr.Is(err, machineerr.StepCapExceeded) {
		t.Fatalf("Run returned: %v expected: StepCapExceeded", err)
	}
	if v.StepCount() != 5 {
		t.Errorf("StepCount got: %d expected: 5", v.StepCount())
	}
}

func TestStackCapIsFatal(t *testing.T) {
	src := join(push(1), push(2), push(3), end())
	prog, err := program.Load(src)
	if err != nil {
		t.Fatalf("program.Load returned error: %v", err)
	}
	v := New(prog, Options{StackCap: 2, IO: &recordIO{}})
	if err := v.Run(); !machineerr.Is(err, machineerr.StackOverflowCap) {
		t.Errorf("Run returned: %v expected: StackOverflowCap", err)
	}
}
